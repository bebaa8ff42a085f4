package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"zenith/internal/platform/docstore"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/rpc"
)

// Client is a docstore.Store backed by a remote Server.
type Client struct {
	conn *grpc.ClientConn

	mu      sync.Mutex
	cancels map[int]context.CancelFunc
	next    int
	wg      sync.WaitGroup
}

var _ docstore.Store = (*Client)(nil)

func Dial(address string) (*Client, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial document store %s: %w", address, err)
	}
	return NewClient(conn), nil
}

func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, cancels: map[int]context.CancelFunc{}}
}

func (c *Client) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	out := &AddResponse{}
	if err := c.conn.Invoke(ctx, methodAdd, &AddRequest{Collection: collection, Fields: fields}, out, rpc.CallOption()); err != nil {
		return "", fromStatus(err)
	}
	return out.ID, nil
}

func (c *Client) Update(ctx context.Context, collection, docID string, fields docstore.Fields) error {
	in := &UpdateRequest{Collection: collection, ID: docID, Fields: fields}
	if err := c.conn.Invoke(ctx, methodUpdate, in, &rpc.Empty{}, rpc.CallOption()); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, collection, docID string) error {
	in := &DeleteRequest{Collection: collection, ID: docID}
	if err := c.conn.Invoke(ctx, methodDelete, in, &rpc.Empty{}, rpc.CallOption()); err != nil {
		return fromStatus(err)
	}
	return nil
}

func (c *Client) Find(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	out := &FindResponse{}
	in := &QueryRequest{Collection: collection, Field: field, Value: value}
	if err := c.conn.Invoke(ctx, methodFind, in, out, rpc.CallOption()); err != nil {
		return nil, fromStatus(err)
	}
	return out.Documents, nil
}

func (c *Client) DeleteWhere(ctx context.Context, collection, field string, value any) (int, error) {
	out := &DeleteWhereResponse{}
	in := &QueryRequest{Collection: collection, Field: field, Value: value}
	if err := c.conn.Invoke(ctx, methodDeleteWhere, in, out, rpc.CallOption()); err != nil {
		return 0, fromStatus(err)
	}
	return out.Deleted, nil
}

func (c *Client) Subscribe(ctx context.Context, collection string, order docstore.Order, onSnapshot docstore.SnapshotFunc, onError docstore.ErrorFunc) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)
	stream, err := c.conn.NewStream(subCtx, &subscribeStream, methodSubscribe, rpc.CallOption())
	if err != nil {
		cancel()
		return nil, fromStatus(err)
	}
	if err := stream.SendMsg(&SubscribeRequest{Collection: collection, Order: order}); err != nil {
		cancel()
		return nil, fromStatus(err)
	}
	if err := stream.CloseSend(); err != nil {
		cancel()
		return nil, fromStatus(err)
	}

	c.mu.Lock()
	key := c.next
	c.next++
	c.cancels[key] = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.cancels, key)
			c.mu.Unlock()
		}()
		for {
			snap := &Snapshot{}
			err := stream.RecvMsg(snap)
			if err != nil {
				if subCtx.Err() == nil && !errors.Is(err, io.EOF) && onError != nil {
					onError(fromStatus(err))
				}
				return
			}
			if snap.Error != "" {
				if onError != nil {
					onError(errors.New(snap.Error))
				}
				continue
			}
			if snap.Documents == nil {
				snap.Documents = []docstore.Document{}
			}
			onSnapshot(snap.Documents)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	for _, cancel := range c.cancels {
		cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
	return c.conn.Close()
}

func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", st.Message(), apperrors.ErrNotFound)
	default:
		return err
	}
}
