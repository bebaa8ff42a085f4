// Command echo-assistant is a reference assistant plugin. It answers by
// repeating the question back one word at a time.
package main

import (
	"context"
	"strings"

	"github.com/hashicorp/go-plugin"

	assistantrpc "zenith/internal/modules/assistant/adapter/out/rpc"
)

const questionMarker = "User question:\n"

type server struct{}

func (s *server) Generate(ctx context.Context, in *assistantrpc.GenerateRequest, send func(*assistantrpc.Chunk) error) error {
	question := in.Prompt
	if i := strings.LastIndex(question, questionMarker); i >= 0 {
		question = question[i+len(questionMarker):]
	}
	if err := send(&assistantrpc.Chunk{Text: "**You asked:**"}); err != nil {
		return err
	}
	for _, word := range strings.Fields(question) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := send(&assistantrpc.Chunk{Text: " " + word}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: assistantrpc.HandshakeConfig,
		Plugins:         assistantrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
