package domain

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "zenith/internal/platform/errors"
)

// BackupKeys is the fixed set of local keys a backup carries.
var BackupKeys = []string{
	"zenith-tasks",
	"zenith-contacts",
	"zenith-sales-stages",
	"zenith-prospects",
	"zenith-goals",
	"zenith-routines",
	"zenith-transactions",
	"zenith-pomodoro-history",
	KeyTheme,
	KeyAccent,
}

func BackupFilename(now time.Time) string {
	return "zenith-backup-" + now.Format("2006-01-02") + ".json"
}

func EncodeBackup(entries map[string]string) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// DecodeBackup parses the whole document before anything is written. Only
// string values are kept; skipped counts the rest.
func DecodeBackup(data []byte) (entries map[string]string, skipped int, err error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidBackup, err)
	}
	if raw == nil {
		return nil, 0, fmt.Errorf("%w: not an object", apperrors.ErrInvalidBackup)
	}
	entries = make(map[string]string, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			skipped++
			continue
		}
		entries[key] = s
	}
	return entries, skipped, nil
}
