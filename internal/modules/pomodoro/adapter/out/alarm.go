package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	pomodoroout "zenith/internal/modules/pomodoro/port/out"
	"zenith/internal/platform/logging"
)

// Bell rings the terminal bell.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(context.Context) error {
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Silent is used when alarms are disabled.
type Silent struct{}

func (Silent) Play(context.Context) error { return nil }

// PlayerOptions configure an external audio player. Command is split on
// spaces; "{file}" is replaced by the cached asset path (appended when
// absent) and "{volume}" by the volume as a percentage.
type PlayerOptions struct {
	Command  string
	AssetURL string
	CacheDir string
	Volume   float64
	Client   *http.Client
	Logger   *slog.Logger
}

// Player downloads the alarm asset once into the cache dir and hands it to
// an external command on every Play.
type Player struct {
	opts PlayerOptions

	mu    sync.Mutex
	asset string
}

func NewPlayer(opts PlayerOptions) *Player {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Player{opts: opts}
}

// NewAlarm picks the player when a command is configured and the terminal
// bell otherwise.
func NewAlarm(enabled bool, opts PlayerOptions, bell io.Writer) pomodoroout.Alarm {
	switch {
	case !enabled:
		return Silent{}
	case strings.TrimSpace(opts.Command) != "":
		return NewPlayer(opts)
	default:
		return NewBell(bell)
	}
}

func (p *Player) Play(ctx context.Context) error {
	file, err := p.ensureAsset(ctx)
	if err != nil {
		return err
	}
	args := p.args(file)
	if len(args) == 0 {
		return errors.New("alarm player command is empty")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("alarm player %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (p *Player) args(file string) []string {
	fields := strings.Fields(p.opts.Command)
	volume := strconv.Itoa(int(p.opts.Volume * 100))
	hasFile := false
	for i, f := range fields {
		if strings.Contains(f, "{file}") {
			hasFile = true
		}
		fields[i] = strings.NewReplacer("{file}", file, "{volume}", volume).Replace(f)
	}
	if !hasFile {
		fields = append(fields, file)
	}
	return fields
}

func (p *Player) ensureAsset(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.asset != "" {
		return p.asset, nil
	}
	u, err := url.Parse(p.opts.AssetURL)
	if err != nil {
		return "", fmt.Errorf("alarm asset url: %w", err)
	}
	if u.Scheme == "" || u.Scheme == "file" {
		p.asset = u.Path
		return p.asset, nil
	}
	target := filepath.Join(p.opts.CacheDir, "alarm-"+path.Base(u.Path))
	if _, err := os.Stat(target); err == nil {
		p.asset = target
		return target, nil
	}
	if err := p.download(ctx, target); err != nil {
		return "", err
	}
	p.opts.Logger.Info("alarm asset cached", "path", target)
	p.asset = target
	return target, nil
}

func (p *Player) download(ctx context.Context, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.AssetURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.opts.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download alarm asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download alarm asset: unexpected status %s", resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".alarm-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("download alarm asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
