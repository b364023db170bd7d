// Package broadcaster drains the change log outbox towards a Kafka
// topic. It is the at-least-once half of the outbox pattern: entries
// marked NEW get published and advanced to ACKED, so a crash between
// log append and publish is retried on the next tick.
package broadcaster

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"tickmatch/infra/changestore"
)

const maxRetries = 5

type Broadcaster struct {
	outbox   *changestore.Outbox
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      *slog.Logger
}

func New(outbox *changestore.Outbox, brokers []string, topic string, log *slog.Logger) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = maxRetries

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Broadcaster{
		outbox:   outbox,
		producer: producer,
		topic:    topic,
		interval: 250 * time.Millisecond,
		log:      log,
	}, nil
}

// Start runs the drain loop until the context is cancelled.
func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Info("broadcaster started", "topic", b.topic)

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
			}
		}
	}()
}

func (b *Broadcaster) drainOnce() {
	// SENT records are retried too: a crash after publish but before
	// the ack mark leaves them behind, and consumers dedupe on
	// sequence.
	for _, state := range []changestore.OutboxState{changestore.OutboxNew, changestore.OutboxSent} {
		err := b.outbox.ScanByState(state, func(seq uint64, rec changestore.OutboxRecord) error {
			b.publishOne(seq, rec)
			return nil
		})
		if err != nil {
			b.log.Error("outbox scan failed", "state", state.String(), "err", err)
		}
	}
}

func (b *Broadcaster) publishOne(seq uint64, rec changestore.OutboxRecord) {
	if rec.Retries >= maxRetries {
		if err := b.outbox.UpdateState(seq, changestore.OutboxFailed, rec.Retries); err != nil {
			b.log.Error("outbox mark failed", "seq", seq, "err", err)
		}
		b.log.Error("outbox entry dropped after retries", "seq", seq)
		return
	}

	if err := b.outbox.UpdateState(seq, changestore.OutboxSent, rec.Retries+1); err != nil {
		b.log.Error("outbox mark sent", "seq", seq, "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: b.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(seq, 10)),
		Value: sarama.ByteEncoder(rec.Payload),
	}
	if _, _, err := b.producer.SendMessage(msg); err != nil {
		// Stays SENT; the next tick retries it.
		b.log.Warn("publish failed", "seq", seq, "err", err)
		return
	}

	if err := b.outbox.UpdateState(seq, changestore.OutboxAcked, rec.Retries+1); err != nil {
		b.log.Error("outbox mark acked", "seq", seq, "err", err)
		return
	}
	if err := b.outbox.Delete(seq); err != nil {
		b.log.Error("outbox cleanup", "seq", seq, "err", err)
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
