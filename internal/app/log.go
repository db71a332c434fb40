package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// cathodeHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<opID>\t<message>\t<key=value ...>
//
// Records below level are dropped. Handlers derived with WithAttrs share the
// writer lock, so goroutines logging concurrently do not interleave lines.
type cathodeHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	opID  string
	level slog.Leveler
	attrs []slog.Attr
}

func newCathodeHandler(w io.Writer, opID string, level slog.Leveler) *cathodeHandler {
	return &cathodeHandler{w: w, mu: &sync.Mutex{}, opID: opID, level: level}
}

func (h *cathodeHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *cathodeHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")

	line := fmt.Sprintf("%s\t%s\t%s\t%s", ts, r.Level.String(), h.opID, r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf("\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf("\t%s=%v", a.Key, a.Value)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *cathodeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &cathodeHandler{
		w:     h.w,
		mu:    h.mu,
		opID:  h.opID,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *cathodeHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to both logDir/cathode.log
// and stderr. Verbose lowers the threshold from Warn to Debug.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logDir, opID string, verbose bool) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "cathode.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	w := io.MultiWriter(f, os.Stderr)
	return slog.New(newCathodeHandler(w, opID, level)), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the display.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
