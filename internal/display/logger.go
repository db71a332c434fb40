package display

// Logger is what the display service, the xrandr and cvt collaborators and
// the mode store write their progress to. Arguments after msg are slog-style
// key/value pairs such as "mode", name, "output", output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger drops every record. NewService falls back to it when no Logger
// is given.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}
