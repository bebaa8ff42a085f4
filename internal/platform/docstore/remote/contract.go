// Package remote exposes a docstore.Store over gRPC and provides the matching
// client, so several zenith processes can share one live data set.
package remote

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"zenith/internal/platform/docstore"
	"zenith/internal/platform/rpc"
)

const (
	serviceName       = "zenith.docstore.v1.DocumentStore"
	methodAdd         = "/" + serviceName + "/Add"
	methodUpdate      = "/" + serviceName + "/Update"
	methodDelete      = "/" + serviceName + "/Delete"
	methodFind        = "/" + serviceName + "/Find"
	methodDeleteWhere = "/" + serviceName + "/DeleteWhere"
	methodSubscribe   = "/" + serviceName + "/Subscribe"
)

type AddRequest struct {
	Collection string          `json:"collection"`
	Fields     docstore.Fields `json:"fields"`
}

type AddResponse struct {
	ID string `json:"id"`
}

type UpdateRequest struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Fields     docstore.Fields `json:"fields"`
}

type DeleteRequest struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

type QueryRequest struct {
	Collection string `json:"collection"`
	Field      string `json:"field"`
	Value      any    `json:"value"`
}

type FindResponse struct {
	Documents []docstore.Document `json:"documents"`
}

type DeleteWhereResponse struct {
	Deleted int `json:"deleted"`
}

type SubscribeRequest struct {
	Collection string         `json:"collection"`
	Order      docstore.Order `json:"order"`
}

type Snapshot struct {
	Documents []docstore.Document `json:"documents"`
	Error     string              `json:"error,omitempty"`
}

type DocumentStoreServer interface {
	Add(ctx context.Context, in *AddRequest) (*AddResponse, error)
	Update(ctx context.Context, in *UpdateRequest) (*rpc.Empty, error)
	Delete(ctx context.Context, in *DeleteRequest) (*rpc.Empty, error)
	Find(ctx context.Context, in *QueryRequest) (*FindResponse, error)
	DeleteWhere(ctx context.Context, in *QueryRequest) (*DeleteWhereResponse, error)
	Subscribe(in *SubscribeRequest, stream grpc.ServerStream) error
}

var subscribeStream = grpc.StreamDesc{
	StreamName:    "Subscribe",
	ServerStreams: true,
}

func unaryHandler[Req any](method string, call func(ctx context.Context, in *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterDocumentStoreServer(server grpc.ServiceRegistrar, impl DocumentStoreServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*DocumentStoreServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Add",
				Handler: unaryHandler(methodAdd, func(ctx context.Context, in *AddRequest) (any, error) {
					return impl.Add(ctx, in)
				}),
			},
			{
				MethodName: "Update",
				Handler: unaryHandler(methodUpdate, func(ctx context.Context, in *UpdateRequest) (any, error) {
					return impl.Update(ctx, in)
				}),
			},
			{
				MethodName: "Delete",
				Handler: unaryHandler(methodDelete, func(ctx context.Context, in *DeleteRequest) (any, error) {
					return impl.Delete(ctx, in)
				}),
			},
			{
				MethodName: "Find",
				Handler: unaryHandler(methodFind, func(ctx context.Context, in *QueryRequest) (any, error) {
					return impl.Find(ctx, in)
				}),
			},
			{
				MethodName: "DeleteWhere",
				Handler: unaryHandler(methodDeleteWhere, func(ctx context.Context, in *QueryRequest) (any, error) {
					return impl.DeleteWhere(ctx, in)
				}),
			},
		},
		Streams: []grpc.StreamDesc{
			{
				StreamName:    subscribeStream.StreamName,
				ServerStreams: true,
				Handler: func(_ any, stream grpc.ServerStream) error {
					in := &SubscribeRequest{}
					if err := stream.RecvMsg(in); err != nil {
						return err
					}
					return impl.Subscribe(in, stream)
				},
			},
		},
		Metadata: "zenith/docstore/v1",
	}, impl)
}
