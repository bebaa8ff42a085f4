package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	assistantrpc "zenith/internal/modules/assistant/adapter/out/rpc"
	assistantout "zenith/internal/modules/assistant/port/out"
	apperrors "zenith/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Minute
)

// PluginGenerator launches an external assistant binary per request and
// streams its Generate RPC.
type PluginGenerator struct {
	binary string
	model  string
	debug  bool
}

func NewPluginGenerator(binary, model string, debug bool) (assistantout.Generator, error) {
	if binary == "" {
		return nil, fmt.Errorf("assistant plugin binary: %w", apperrors.ErrNotConfigured)
	}
	return &PluginGenerator{binary: binary, model: model, debug: debug}, nil
}

func (g *PluginGenerator) Generate(ctx context.Context, prompt string, onChunk func(string)) error {
	client, closeFn, err := g.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := g.callContext(ctx, defaultCallTimeout)
	defer cancel()
	err = client.Generate(callCtx, &assistantrpc.GenerateRequest{Prompt: prompt, Model: g.model}, func(chunk *assistantrpc.Chunk) {
		onChunk(chunk.Text)
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

func (g *PluginGenerator) connect() (assistantrpc.GeneratorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  assistantrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          assistantrpc.PluginMap(nil),
		Cmd:              exec.Command(g.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           g.hostLogger(),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start assistant plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(assistantrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense assistant plugin: %w", err)
	}
	typed, ok := raw.(assistantrpc.GeneratorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("assistant plugin client type mismatch")
	}
	return typed, closeFn, nil
}

func (g *PluginGenerator) hostLogger() hclog.Logger {
	if g.debug {
		return hclog.New(&hclog.LoggerOptions{Name: "assistant-plugin", Output: os.Stderr, Level: hclog.Debug})
	}
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}

func (g *PluginGenerator) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
