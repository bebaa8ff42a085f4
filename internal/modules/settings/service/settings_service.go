package service

import (
	"fmt"
	"sync"

	"zenith/internal/modules/settings/domain"
	settingsout "zenith/internal/modules/settings/port/out"
)

// SettingsService owns the in-memory preferences object; it is loaded once
// and written through on every change.
type SettingsService struct {
	store settingsout.KeyValueStore

	mu    sync.RWMutex
	prefs domain.Preferences
}

func NewSettingsService(store settingsout.KeyValueStore) (*SettingsService, error) {
	s := &SettingsService{store: store}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SettingsService) Reload() error {
	theme, _, err := s.store.Get(domain.KeyTheme)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	accent, _, err := s.store.Get(domain.KeyAccent)
	if err != nil {
		return fmt.Errorf("load accent: %w", err)
	}
	s.mu.Lock()
	s.prefs = domain.PreferencesFrom(theme, accent)
	s.mu.Unlock()
	return nil
}

func (s *SettingsService) Preferences() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *SettingsService) SetTheme(theme domain.Theme) (domain.Preferences, error) {
	if err := s.store.Set(domain.KeyTheme, string(theme)); err != nil {
		return s.Preferences(), fmt.Errorf("save theme: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Theme = theme
	return s.prefs, nil
}

func (s *SettingsService) SetAccent(accent domain.Accent) (domain.Preferences, error) {
	if err := s.store.Set(domain.KeyAccent, string(accent)); err != nil {
		return s.Preferences(), fmt.Errorf("save accent: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Accent = accent
	return s.prefs, nil
}

// Export collects the backup keys that are present.
func (s *SettingsService) Export() (map[string]string, error) {
	entries := make(map[string]string, len(domain.BackupKeys))
	for _, key := range domain.BackupKeys {
		value, ok, err := s.store.Get(key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if ok {
			entries[key] = value
		}
	}
	return entries, nil
}

func (s *SettingsService) Import(entries map[string]string) error {
	if err := s.store.SetMany(entries); err != nil {
		return fmt.Errorf("import backup: %w", err)
	}
	return s.Reload()
}

func (s *SettingsService) ClearAll() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear local storage: %w", err)
	}
	return s.Reload()
}
