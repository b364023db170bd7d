package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const BookQueryServiceName = "tickmatch.v1.BookQuery"

// BookQueryClient is the read-side admin API over a single book.
type BookQueryClient interface {
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error)
	TopOfBook(ctx context.Context, in *TopOfBookRequest, opts ...grpc.CallOption) (*TopOfBookResponse, error)
	BookDepth(ctx context.Context, in *BookDepthRequest, opts ...grpc.CallOption) (*BookDepthResponse, error)
	ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	ChangesSince(ctx context.Context, in *ChangesSinceRequest, opts ...grpc.CallOption) (*ChangesSinceResponse, error)
}

type bookQueryClient struct {
	cc grpc.ClientConnInterface
}

func NewBookQueryClient(cc grpc.ClientConnInterface) BookQueryClient {
	return &bookQueryClient{cc: cc}
}

func (c *bookQueryClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*GetOrderResponse, error) {
	out := new(GetOrderResponse)
	if err := c.cc.Invoke(ctx, "/"+BookQueryServiceName+"/GetOrder", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) TopOfBook(ctx context.Context, in *TopOfBookRequest, opts ...grpc.CallOption) (*TopOfBookResponse, error) {
	out := new(TopOfBookResponse)
	if err := c.cc.Invoke(ctx, "/"+BookQueryServiceName+"/TopOfBook", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) BookDepth(ctx context.Context, in *BookDepthRequest, opts ...grpc.CallOption) (*BookDepthResponse, error) {
	out := new(BookDepthResponse)
	if err := c.cc.Invoke(ctx, "/"+BookQueryServiceName+"/BookDepth", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	out := new(ListOrdersResponse)
	if err := c.cc.Invoke(ctx, "/"+BookQueryServiceName+"/ListOrders", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) ChangesSince(ctx context.Context, in *ChangesSinceRequest, opts ...grpc.CallOption) (*ChangesSinceResponse, error) {
	out := new(ChangesSinceResponse)
	if err := c.cc.Invoke(ctx, "/"+BookQueryServiceName+"/ChangesSince", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BookQueryServer is implemented by api/grpcserver.
type BookQueryServer interface {
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	TopOfBook(context.Context, *TopOfBookRequest) (*TopOfBookResponse, error)
	BookDepth(context.Context, *BookDepthRequest) (*BookDepthResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	ChangesSince(context.Context, *ChangesSinceRequest) (*ChangesSinceResponse, error)
}

// UnimplementedBookQueryServer gives forward-compatible embedding.
type UnimplementedBookQueryServer struct{}

func (UnimplementedBookQueryServer) GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}
func (UnimplementedBookQueryServer) TopOfBook(context.Context, *TopOfBookRequest) (*TopOfBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TopOfBook not implemented")
}
func (UnimplementedBookQueryServer) BookDepth(context.Context, *BookDepthRequest) (*BookDepthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BookDepth not implemented")
}
func (UnimplementedBookQueryServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrders not implemented")
}
func (UnimplementedBookQueryServer) ChangesSince(context.Context, *ChangesSinceRequest) (*ChangesSinceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangesSince not implemented")
}

func RegisterBookQueryServer(s grpc.ServiceRegistrar, srv BookQueryServer) {
	s.RegisterService(&BookQuery_ServiceDesc, srv)
}

func bookQueryGetOrderHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).GetOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + BookQueryServiceName + "/GetOrder"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).GetOrder(ctx, req.(*GetOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func bookQueryTopOfBookHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TopOfBookRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).TopOfBook(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + BookQueryServiceName + "/TopOfBook"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).TopOfBook(ctx, req.(*TopOfBookRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func bookQueryBookDepthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BookDepthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).BookDepth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + BookQueryServiceName + "/BookDepth"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).BookDepth(ctx, req.(*BookDepthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func bookQueryListOrdersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListOrdersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).ListOrders(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + BookQueryServiceName + "/ListOrders"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).ListOrders(ctx, req.(*ListOrdersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func bookQueryChangesSinceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChangesSinceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).ChangesSince(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + BookQueryServiceName + "/ChangesSince"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).ChangesSince(ctx, req.(*ChangesSinceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var BookQuery_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BookQueryServiceName,
	HandlerType: (*BookQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOrder", Handler: bookQueryGetOrderHandler},
		{MethodName: "TopOfBook", Handler: bookQueryTopOfBookHandler},
		{MethodName: "BookDepth", Handler: bookQueryBookDepthHandler},
		{MethodName: "ListOrders", Handler: bookQueryListOrdersHandler},
		{MethodName: "ChangesSince", Handler: bookQueryChangesSinceHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookquery.proto",
}
