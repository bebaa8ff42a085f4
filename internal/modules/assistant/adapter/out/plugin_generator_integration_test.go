package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	assistantout "zenith/internal/modules/assistant/adapter/out"
	"zenith/internal/modules/assistant/domain"
)

func TestPluginGeneratorStreamsFromEchoPlugin(t *testing.T) {
	binPath := buildEchoPlugin(t)
	gen, err := assistantout.NewPluginGenerator(binPath, "echo", false)
	if err != nil {
		t.Fatalf("new plugin generator: %v", err)
	}
	prompt, err := domain.BuildPrompt(domain.BuildSummary(domain.Snapshot{}), "what is next")
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var chunks []string
	if err := gen.Generate(ctx, prompt, func(c string) { chunks = append(chunks, c) }); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d: %q", len(chunks), chunks)
	}
	if got := strings.Join(chunks, ""); got != "**You asked:** what is next" {
		t.Fatalf("unexpected answer %q", got)
	}
}

func TestPluginGeneratorRequiresBinary(t *testing.T) {
	t.Parallel()
	if _, err := assistantout.NewPluginGenerator("", "", false); err == nil {
		t.Fatalf("expected error for missing binary")
	}
}

func buildEchoPlugin(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}
	binPath := filepath.Join(t.TempDir(), "echo-assistant")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/echo-assistant")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build echo plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
