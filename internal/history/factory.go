package history

import (
	"fmt"
	"path/filepath"

	"cathode/internal/config"
	"cathode/internal/display"
)

// NewHistoryFromConfig creates a History implementation based on the history config type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (display.History, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		h, err := NewSQLiteHistory(filepath.Join(cfg.DataDir, "history.db"))
		if err != nil {
			return nil, err
		}
		return h, nil
	case "memory":
		h, err := NewSQLiteHistory(":memory:")
		if err != nil {
			return nil, err
		}
		return h, nil
	case "none":
		return NopHistory{}, nil
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}
