package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "zenith.yaml"
	HomeEnv  = "ZENITH_HOME"

	BackendLocal  = "local"
	BackendRemote = "remote"

	ProviderGemini = "gemini"
	ProviderPlugin = "plugin"

	DefaultAlarmAsset = "https://actions.google.com/sounds/v1/alarms/alarm_clock.ogg"
	DefaultModel      = "gemini-2.5-flash"
)

type Config struct {
	DataDir      string          `yaml:"-"`
	Store        StoreConfig     `yaml:"store"`
	LocalStorage LocalStorage    `yaml:"local_storage"`
	Assistant    AssistantConfig `yaml:"assistant"`
	Alarm        AlarmConfig     `yaml:"alarm"`
	Calendar     CalendarConfig  `yaml:"calendar"`
	Log          LogConfig       `yaml:"log"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Address string `yaml:"address"`
	DBPath  string `yaml:"db_path"`
}

type LocalStorage struct {
	Path string `yaml:"path"`
}

type AssistantConfig struct {
	Provider     string `yaml:"provider"`
	Model        string `yaml:"model"`
	APIKeyEnv    string `yaml:"api_key_env"`
	PluginBinary string `yaml:"plugin_binary"`
}

type AlarmConfig struct {
	Enabled  bool    `yaml:"enabled"`
	AssetURL string  `yaml:"asset_url"`
	Player   string  `yaml:"player"`
	Volume   float64 `yaml:"volume"`
}

type CalendarConfig struct {
	CompactWidth     int    `yaml:"compact_width"`
	GoogleCalendarID string `yaml:"google_calendar_id"`
	CredentialsPath  string `yaml:"credentials_path"`
	TokenPath        string `yaml:"token_path"`
	Timezone         string `yaml:"timezone"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultDataDir resolves $ZENITH_HOME, falling back to ~/.local/share/zenith.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "zenith"), nil
}

// New returns the defaults rooted at dataDir.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir: dataDir,
		Store: StoreConfig{
			Backend: BackendLocal,
			Address: "127.0.0.1:7420",
			DBPath:  filepath.Join(dataDir, "zenith.db"),
		},
		LocalStorage: LocalStorage{Path: filepath.Join(dataDir, "local.bolt")},
		Assistant: AssistantConfig{
			Provider:  ProviderGemini,
			Model:     DefaultModel,
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Alarm: AlarmConfig{
			Enabled:  true,
			AssetURL: DefaultAlarmAsset,
			Volume:   0.5,
		},
		Calendar: CalendarConfig{
			CompactWidth:    100,
			CredentialsPath: filepath.Join(dataDir, "credentials.json"),
			TokenPath:       filepath.Join(dataDir, "token.json"),
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}, nil
}

// Load builds the defaults for dataDir and overlays the YAML file at path.
// An empty path means <dataDir>/zenith.yaml, which may be absent.
func Load(dataDir, path string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, FileName)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendLocal, BackendRemote:
	default:
		return fmt.Errorf("store.backend must be %s or %s, got %q", BackendLocal, BackendRemote, c.Store.Backend)
	}
	if c.Store.Backend == BackendRemote && strings.TrimSpace(c.Store.Address) == "" {
		return fmt.Errorf("store.address is required for the remote backend")
	}
	switch c.Assistant.Provider {
	case ProviderGemini, ProviderPlugin:
	default:
		return fmt.Errorf("assistant.provider must be %s or %s, got %q", ProviderGemini, ProviderPlugin, c.Assistant.Provider)
	}
	if c.Alarm.Volume < 0 || c.Alarm.Volume > 1 {
		return fmt.Errorf("alarm.volume must be within [0,1]")
	}
	if c.Calendar.CompactWidth < 0 {
		return fmt.Errorf("calendar.compact_width must be non-negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Location returns the configured calendar timezone, or the local one.
func (c Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Calendar.Timezone)
}

func (c Config) AlarmCacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}
