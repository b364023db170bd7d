// Package kafka publishes executed trades to a trade feed topic.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"tickmatch/service"
)

// tradeMessage is the JSON shape on the trade topic.
type tradeMessage struct {
	V         int    `json:"v"`
	Symbol    string `json:"symbol"`
	TakerID   uint64 `json:"taker_id"`
	MakerID   uint64 `json:"maker_id"`
	TakerSide string `json:"taker_side"`
	Price     string `json:"price"`
	Qty       string `json:"qty"`
	Timestamp uint64 `json:"ts"`
}

// Producer writes trades keyed by symbol so one symbol's feed stays
// ordered within a partition.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// PublishTrades implements service.TradePublisher.
func (p *Producer) PublishTrades(ctx context.Context, trades []service.Trade) error {
	msgs := make([]kafka.Message, 0, len(trades))
	for _, t := range trades {
		value, err := json.Marshal(tradeMessage{
			V:         1,
			Symbol:    t.Symbol,
			TakerID:   t.TakerID,
			MakerID:   t.MakerID,
			TakerSide: t.TakerSide.String(),
			Price:     t.Price.String(),
			Qty:       t.Qty.String(),
			Timestamp: t.Timestamp,
		})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(t.Symbol + "/" + strconv.FormatUint(t.TakerID, 10)),
			Value: value,
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
