package remote

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/rpc"
)

// Server serves a local docstore.Store to remote clients.
type Server struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewServer(store docstore.Store, logger *slog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	grpcServer := grpc.NewServer()
	RegisterDocumentStoreServer(grpcServer, s)
	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	s.logger.Info("document store listening", "addr", lis.Addr().String())
	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Server) Add(ctx context.Context, in *AddRequest) (*AddResponse, error) {
	docID, err := s.store.Add(ctx, in.Collection, in.Fields)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AddResponse{ID: docID}, nil
}

func (s *Server) Update(ctx context.Context, in *UpdateRequest) (*rpc.Empty, error) {
	if err := s.store.Update(ctx, in.Collection, in.ID, in.Fields); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) Delete(ctx context.Context, in *DeleteRequest) (*rpc.Empty, error) {
	if err := s.store.Delete(ctx, in.Collection, in.ID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) Find(ctx context.Context, in *QueryRequest) (*FindResponse, error) {
	docs, err := s.store.Find(ctx, in.Collection, in.Field, in.Value)
	if err != nil {
		return nil, toStatus(err)
	}
	return &FindResponse{Documents: docs}, nil
}

func (s *Server) DeleteWhere(ctx context.Context, in *QueryRequest) (*DeleteWhereResponse, error) {
	n, err := s.store.DeleteWhere(ctx, in.Collection, in.Field, in.Value)
	if err != nil {
		return nil, toStatus(err)
	}
	return &DeleteWhereResponse{Deleted: n}, nil
}

// Subscribe relays local snapshots onto the stream until the client goes
// away. Sends are serialized with the handler's exit: once it returns no
// delivery touches the stream again.
func (s *Server) Subscribe(in *SubscribeRequest, stream grpc.ServerStream) error {
	ctx := stream.Context()
	sendErr := make(chan error, 1)
	var (
		mu     sync.Mutex
		closed bool
	)
	send := func(snap *Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return nil
		}
		return stream.SendMsg(snap)
	}
	cancel, err := s.store.Subscribe(ctx, in.Collection, in.Order,
		func(docs []docstore.Document) {
			if err := send(&Snapshot{Documents: docs}); err != nil {
				select {
				case sendErr <- err:
				default:
				}
			}
		},
		func(err error) {
			s.logger.Error("snapshot load failed", "collection", in.Collection, "err", err)
			_ = send(&Snapshot{Error: err.Error()})
		},
	)
	if err != nil {
		return toStatus(err)
	}
	defer func() {
		cancel()
		mu.Lock()
		closed = true
		mu.Unlock()
	}()
	s.logger.Debug("subscriber attached", "collection", in.Collection)

	select {
	case <-ctx.Done():
		return nil
	case err := <-sendErr:
		return err
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperrors.ErrStoreClosed):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
