package pb

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

// Side values on the wire: 0 = BUY, 1 = SELL.

type OrderView struct {
	Id     uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Symbol string `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Side   uint32 `protobuf:"varint,3,opt,name=side,proto3" json:"side,omitempty"`
	Price  string `protobuf:"bytes,4,opt,name=price,proto3" json:"price,omitempty"`
	Qty    string `protobuf:"bytes,5,opt,name=qty,proto3" json:"qty,omitempty"`
	Filled string `protobuf:"bytes,6,opt,name=filled,proto3" json:"filled,omitempty"`
}

func (m *OrderView) Reset()         { *m = OrderView{} }
func (m *OrderView) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*OrderView) ProtoMessage()    {}

type GetOrderRequest struct {
	OrderId uint64 `protobuf:"varint,1,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
}

func (m *GetOrderRequest) Reset()         { *m = GetOrderRequest{} }
func (m *GetOrderRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*GetOrderRequest) ProtoMessage()    {}

type GetOrderResponse struct {
	Found bool       `protobuf:"varint,1,opt,name=found,proto3" json:"found,omitempty"`
	Order *OrderView `protobuf:"bytes,2,opt,name=order,proto3" json:"order,omitempty"`
}

func (m *GetOrderResponse) Reset()         { *m = GetOrderResponse{} }
func (m *GetOrderResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*GetOrderResponse) ProtoMessage()    {}

type TopOfBookRequest struct {
	Symbol string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *TopOfBookRequest) Reset()         { *m = TopOfBookRequest{} }
func (m *TopOfBookRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*TopOfBookRequest) ProtoMessage()    {}

type TopOfBookResponse struct {
	HasBid    bool   `protobuf:"varint,1,opt,name=has_bid,json=hasBid,proto3" json:"has_bid,omitempty"`
	BidPrice  string `protobuf:"bytes,2,opt,name=bid_price,json=bidPrice,proto3" json:"bid_price,omitempty"`
	HasAsk    bool   `protobuf:"varint,3,opt,name=has_ask,json=hasAsk,proto3" json:"has_ask,omitempty"`
	AskPrice  string `protobuf:"bytes,4,opt,name=ask_price,json=askPrice,proto3" json:"ask_price,omitempty"`
	HasLast   bool   `protobuf:"varint,5,opt,name=has_last,json=hasLast,proto3" json:"has_last,omitempty"`
	LastPrice string `protobuf:"bytes,6,opt,name=last_price,json=lastPrice,proto3" json:"last_price,omitempty"`
}

func (m *TopOfBookResponse) Reset()         { *m = TopOfBookResponse{} }
func (m *TopOfBookResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*TopOfBookResponse) ProtoMessage()    {}

type PriceLevelView struct {
	Price  string `protobuf:"bytes,1,opt,name=price,proto3" json:"price,omitempty"`
	Qty    string `protobuf:"bytes,2,opt,name=qty,proto3" json:"qty,omitempty"`
	Orders uint32 `protobuf:"varint,3,opt,name=orders,proto3" json:"orders,omitempty"`
}

func (m *PriceLevelView) Reset()         { *m = PriceLevelView{} }
func (m *PriceLevelView) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*PriceLevelView) ProtoMessage()    {}

type BookDepthRequest struct {
	Symbol string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Levels uint32 `protobuf:"varint,2,opt,name=levels,proto3" json:"levels,omitempty"`
}

func (m *BookDepthRequest) Reset()         { *m = BookDepthRequest{} }
func (m *BookDepthRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*BookDepthRequest) ProtoMessage()    {}

type BookDepthResponse struct {
	Bids []*PriceLevelView `protobuf:"bytes,1,rep,name=bids,proto3" json:"bids,omitempty"`
	Asks []*PriceLevelView `protobuf:"bytes,2,rep,name=asks,proto3" json:"asks,omitempty"`
}

func (m *BookDepthResponse) Reset()         { *m = BookDepthResponse{} }
func (m *BookDepthResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*BookDepthResponse) ProtoMessage()    {}

type ListOrdersRequest struct {
	Page uint64 `protobuf:"varint,1,opt,name=page,proto3" json:"page,omitempty"`
	Size uint64 `protobuf:"varint,2,opt,name=size,proto3" json:"size,omitempty"`
}

func (m *ListOrdersRequest) Reset()         { *m = ListOrdersRequest{} }
func (m *ListOrdersRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ListOrdersRequest) ProtoMessage()    {}

type ListOrdersResponse struct {
	Orders        []*OrderView `protobuf:"bytes,1,rep,name=orders,proto3" json:"orders,omitempty"`
	TotalElements uint64       `protobuf:"varint,2,opt,name=total_elements,json=totalElements,proto3" json:"total_elements,omitempty"`
	TotalPages    uint64       `protobuf:"varint,3,opt,name=total_pages,json=totalPages,proto3" json:"total_pages,omitempty"`
}

func (m *ListOrdersResponse) Reset()         { *m = ListOrdersResponse{} }
func (m *ListOrdersResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ListOrdersResponse) ProtoMessage()    {}

type ChangesSinceRequest struct {
	Cursor uint64 `protobuf:"varint,1,opt,name=cursor,proto3" json:"cursor,omitempty"`
	Limit  uint32 `protobuf:"varint,2,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *ChangesSinceRequest) Reset()         { *m = ChangesSinceRequest{} }
func (m *ChangesSinceRequest) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ChangesSinceRequest) ProtoMessage()    {}

type ChangesSinceResponse struct {
	Entries    []*ChangeLogEntry `protobuf:"bytes,1,rep,name=entries,proto3" json:"entries,omitempty"`
	NextCursor uint64            `protobuf:"varint,2,opt,name=next_cursor,json=nextCursor,proto3" json:"next_cursor,omitempty"`
}

func (m *ChangesSinceResponse) Reset()         { *m = ChangesSinceResponse{} }
func (m *ChangesSinceResponse) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ChangesSinceResponse) ProtoMessage()    {}
