package xrandr

import (
	"context"
	"runtime"

	"cathode/internal/display"
)

// StatusReader queries `xrandr --current` and parses the report.
type StatusReader struct {
	runner Runner
	binary string
	goos   string
}

// NewStatusReader creates a StatusReader that runs binary (usually "xrandr").
func NewStatusReader(runner Runner, binary string) *StatusReader {
	return &StatusReader{runner: runner, binary: binary, goos: runtime.GOOS}
}

// Query returns the snapshots of the requested kind. On platforms other than
// linux it returns an empty, skipped Status without running anything.
func (r *StatusReader) Query(ctx context.Context, kind display.ModeKind) (*display.Status, error) {
	if r.goos != "linux" {
		return &display.Status{
			Kind:    kind,
			Skipped: "xrandr status is only queried on linux, not " + r.goos,
		}, nil
	}

	out, err := r.runner.Run(ctx, r.binary, "--current")
	if err != nil {
		return nil, err
	}

	return &display.Status{
		Kind:      kind,
		Snapshots: display.ParseModes(string(out), kind),
	}, nil
}

var _ display.StatusReader = (*StatusReader)(nil)
