package remote_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"zenith/internal/platform/clock"
	"zenith/internal/platform/docstore"
	"zenith/internal/platform/docstore/remote"
	apperrors "zenith/internal/platform/errors"
	"zenith/internal/platform/id"
	"zenith/internal/platform/logging"
)

func startServer(t *testing.T) *remote.Client {
	t.Helper()
	backing := docstore.NewMemory(clock.SystemClock{}, &id.Sequence{Prefix: "doc"})
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = remote.NewServer(backing, logging.Discard()).Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	client := remote.NewClient(conn)
	t.Cleanup(func() {
		_ = client.Close()
		cancel()
		<-done
		_ = backing.Close()
	})
	return client
}

func TestRemoteClientRoundTripsWritesAndSnapshots(t *testing.T) {
	t.Parallel()
	client := startServer(t)
	ctx := context.Background()

	var mu sync.Mutex
	var latest []docstore.Document
	cancel, err := client.Subscribe(ctx, "contacts", docstore.Desc(docstore.FieldCreatedAt), func(docs []docstore.Document) {
		mu.Lock()
		latest = docs
		mu.Unlock()
	}, nil)
	require.NoError(t, err)
	defer cancel()

	docID, err := client.Add(ctx, "contacts", docstore.Fields{"name": "Grace", "company": "Navy"})
	require.NoError(t, err)
	require.NotEmpty(t, docID)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(latest) == 1 && latest[0].ID == docID
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Update(ctx, "contacts", docID, docstore.Fields{"company": "Harvard"}))
	found, err := client.Find(ctx, "contacts", "company", "Harvard")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Grace", found[0].Fields.String("name"))

	n, err := client.DeleteWhere(ctx, "contacts", "company", "Harvard")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && len(latest) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRemoteUpdateMissingMapsToNotFound(t *testing.T) {
	t.Parallel()
	client := startServer(t)
	err := client.Update(context.Background(), "tasks", "nope", docstore.Fields{"title": "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

// blockingStream holds the first SendMsg until release is closed and records
// any send that happens after the handler returned.
type blockingStream struct {
	grpc.ServerStream
	ctx      context.Context
	entered  chan struct{}
	release  chan struct{}
	mu       sync.Mutex
	returned bool
	late     int
	once     sync.Once
}

func (s *blockingStream) Context() context.Context { return s.ctx }

func (s *blockingStream) SendMsg(any) error {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.returned {
		s.late++
	}
	return nil
}

func TestSubscribeWaitsForInFlightSendBeforeReturning(t *testing.T) {
	t.Parallel()
	backing := docstore.NewMemory(clock.SystemClock{}, &id.Sequence{Prefix: "doc"})
	t.Cleanup(func() { _ = backing.Close() })
	server := remote.NewServer(backing, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	stream := &blockingStream{ctx: ctx, entered: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		err := server.Subscribe(&remote.SubscribeRequest{Collection: "tasks", Order: docstore.Desc(docstore.FieldCreatedAt)}, stream)
		stream.mu.Lock()
		stream.returned = true
		stream.mu.Unlock()
		done <- err
	}()

	<-stream.entered
	cancel()
	select {
	case <-done:
		t.Fatalf("Subscribe returned while a send was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(stream.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("Subscribe did not return after the send finished")
	}

	_, err := backing.Add(context.Background(), "tasks", docstore.Fields{"title": "late"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	stream.mu.Lock()
	defer stream.mu.Unlock()
	assert.Zero(t, stream.late)
}
