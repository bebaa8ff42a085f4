package rpc_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	assistantrpc "zenith/internal/modules/assistant/adapter/out/rpc"
)

type splitter struct{ fail bool }

func (s splitter) Generate(_ context.Context, in *assistantrpc.GenerateRequest, send func(*assistantrpc.Chunk) error) error {
	for _, r := range in.Prompt {
		if err := send(&assistantrpc.Chunk{Text: string(r)}); err != nil {
			return err
		}
	}
	if s.fail {
		return errors.New("quota exceeded")
	}
	return nil
}

func dial(t *testing.T, impl assistantrpc.GeneratorServer) assistantrpc.GeneratorClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	assistantrpc.RegisterGeneratorServer(server, impl)
	go func() { _ = server.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})
	return assistantrpc.NewGeneratorClient(conn)
}

func TestGenerateStreamsChunksInOrder(t *testing.T) {
	t.Parallel()
	client := dial(t, splitter{})

	var got []string
	err := client.Generate(context.Background(), &assistantrpc.GenerateRequest{Prompt: "abc"}, func(c *assistantrpc.Chunk) {
		got = append(got, c.Text)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestGenerateDeliversChunksBeforeServerError(t *testing.T) {
	t.Parallel()
	client := dial(t, splitter{fail: true})

	var got []string
	err := client.Generate(context.Background(), &assistantrpc.GenerateRequest{Prompt: "hi"}, func(c *assistantrpc.Chunk) {
		got = append(got, c.Text)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, []string{"h", "i"}, got)
}
