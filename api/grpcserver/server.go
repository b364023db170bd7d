// Package grpcserver exposes the read-side admin API. All writes go
// through the service layer's own entry points; this surface only
// queries.
package grpcserver

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tickmatch/api/pb"
	"tickmatch/domain/lob"
	"tickmatch/domain/repo"
	"tickmatch/service"
)

type Server struct {
	pb.UnimplementedBookQueryServer
	svc *service.BookService
	log *slog.Logger
}

func NewServer(svc *service.BookService, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

func (s *Server) GetOrder(_ context.Context, req *pb.GetOrderRequest) (*pb.GetOrderResponse, error) {
	o, ok := s.svc.GetOrder(req.OrderId)
	if !ok {
		return &pb.GetOrderResponse{Found: false}, nil
	}
	return &pb.GetOrderResponse{Found: true, Order: toView(o)}, nil
}

func (s *Server) TopOfBook(_ context.Context, _ *pb.TopOfBookRequest) (*pb.TopOfBookResponse, error) {
	top := s.svc.TopOfBook()
	resp := &pb.TopOfBookResponse{HasBid: top.HasBid, HasAsk: top.HasAsk, HasLast: top.HasLast}
	if top.HasBid {
		resp.BidPrice = top.Bid.String()
	}
	if top.HasAsk {
		resp.AskPrice = top.Ask.String()
	}
	if top.HasLast {
		resp.LastPrice = top.Last.String()
	}
	return resp, nil
}

func (s *Server) BookDepth(_ context.Context, req *pb.BookDepthRequest) (*pb.BookDepthResponse, error) {
	bids, asks := s.svc.Depth(int(req.Levels))
	return &pb.BookDepthResponse{
		Bids: toLevelViews(bids),
		Asks: toLevelViews(asks),
	}, nil
}

func toLevelViews(levels []service.DepthLevel) []*pb.PriceLevelView {
	out := make([]*pb.PriceLevelView, len(levels))
	for i, lvl := range levels {
		out[i] = &pb.PriceLevelView{
			Price:  lvl.Price.String(),
			Qty:    lvl.Qty.String(),
			Orders: uint32(lvl.Orders),
		}
	}
	return out
}

func (s *Server) ListOrders(_ context.Context, req *pb.ListOrdersRequest) (*pb.ListOrdersResponse, error) {
	page := s.svc.ListOrders(repo.NewPageRequest(req.Page, req.Size))
	resp := &pb.ListOrdersResponse{
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
	for _, o := range page.Content {
		resp.Orders = append(resp.Orders, toView(o))
	}
	return resp, nil
}

func (s *Server) ChangesSince(_ context.Context, req *pb.ChangesSinceRequest) (*pb.ChangesSinceResponse, error) {
	entries, err := s.svc.ChangesSince(req.Cursor, int(req.Limit))
	if err != nil {
		s.log.Error("changes scan failed", "cursor", req.Cursor, "err", err)
		return nil, status.Error(codes.Internal, "change log scan failed")
	}
	resp := &pb.ChangesSinceResponse{}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toWireEntry(e))
		resp.NextCursor = e.Sequence
	}
	return resp, nil
}

func toView(o *lob.LimitOrder) *pb.OrderView {
	return &pb.OrderView{
		Id:     o.ID,
		Symbol: o.Sym,
		Side:   uint32(o.OrdSide),
		Price:  o.LimitPx.String(),
		Qty:    o.Qty.String(),
		Filled: o.Filled.String(),
	}
}
