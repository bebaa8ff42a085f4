// Package rpc is the wire contract between zenith and assistant plugins.
package rpc

import (
	"context"
	"errors"
	"io"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"

	platformrpc "zenith/internal/platform/rpc"
)

const (
	PluginMapKey   = "assistant"
	serviceName    = "zenith.assistant.v1.Generator"
	methodGenerate = "/" + serviceName + "/Generate"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ZENITH_ASSISTANT_PLUGIN",
	MagicCookieValue: "zenith",
}

type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type Chunk struct {
	Text string `json:"text"`
}

type GeneratorServer interface {
	Generate(ctx context.Context, in *GenerateRequest, send func(*Chunk) error) error
}

type GeneratorClient interface {
	Generate(ctx context.Context, in *GenerateRequest, onChunk func(*Chunk)) error
}

var generateStream = grpc.StreamDesc{
	StreamName:    "Generate",
	ServerStreams: true,
}

type generatorClient struct {
	conn *grpc.ClientConn
}

func NewGeneratorClient(conn *grpc.ClientConn) GeneratorClient {
	return &generatorClient{conn: conn}
}

func (c *generatorClient) Generate(ctx context.Context, in *GenerateRequest, onChunk func(*Chunk)) error {
	stream, err := c.conn.NewStream(ctx, &generateStream, methodGenerate, platformrpc.CallOption())
	if err != nil {
		return err
	}
	if err := stream.SendMsg(in); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}
	for {
		chunk := &Chunk{}
		err := stream.RecvMsg(chunk)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		onChunk(chunk)
	}
}

func RegisterGeneratorServer(server grpc.ServiceRegistrar, impl GeneratorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*GeneratorServer)(nil),
		Methods:     []grpc.MethodDesc{},
		Streams: []grpc.StreamDesc{
			{
				StreamName:    generateStream.StreamName,
				ServerStreams: true,
				Handler: func(_ any, stream grpc.ServerStream) error {
					in := &GenerateRequest{}
					if err := stream.RecvMsg(in); err != nil {
						return err
					}
					return impl.Generate(stream.Context(), in, func(c *Chunk) error {
						return stream.SendMsg(c)
					})
				},
			},
		},
		Metadata: "zenith/assistant/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl GeneratorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterGeneratorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewGeneratorClient(conn), nil
}

func PluginMap(impl GeneratorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
