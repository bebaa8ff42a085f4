package out_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pomodoroout "zenith/internal/modules/pomodoro/adapter/out"
)

func TestBellWritesBEL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, pomodoroout.NewBell(&buf).Play(context.Background()))
	assert.Equal(t, "\a", buf.String())
}

func TestPlayerDownloadsAssetOnce(t *testing.T) {
	t.Parallel()
	if _, err := os.Stat("/bin/true"); err != nil {
		t.Skip("needs /bin/true")
	}
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("OggS"))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	player := pomodoroout.NewPlayer(pomodoroout.PlayerOptions{
		Command:  "/bin/true --volume={volume}",
		AssetURL: server.URL + "/sounds/alarm_clock.ogg",
		CacheDir: dir,
		Volume:   0.5,
	})
	ctx := context.Background()
	require.NoError(t, player.Play(ctx))
	require.NoError(t, player.Play(ctx))

	assert.Equal(t, int32(1), hits.Load())
	b, err := os.ReadFile(filepath.Join(dir, "alarm-alarm_clock.ogg"))
	require.NoError(t, err)
	assert.Equal(t, "OggS", string(b))
}

func TestPlayerReportsDownloadFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)
	player := pomodoroout.NewPlayer(pomodoroout.PlayerOptions{
		Command:  "true",
		AssetURL: server.URL + "/missing.ogg",
		CacheDir: t.TempDir(),
	})
	assert.Error(t, player.Play(context.Background()))
}
