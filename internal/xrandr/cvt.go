package xrandr

import (
	"context"
	"fmt"

	"cathode/internal/display"
)

// CVTGenerator computes VESA CVT timings with the cvt tool.
type CVTGenerator struct {
	runner Runner
	binary string
	logger display.Logger
}

// NewCVTGenerator creates a generator that runs binary (usually "cvt").
func NewCVTGenerator(runner Runner, binary string, logger display.Logger) *CVTGenerator {
	return &CVTGenerator{runner: runner, binary: binary, logger: logger}
}

// Generate runs `cvt <width> <height> <rate>` and parses the modeline. The
// resulting mode is named req.Name, not cvt's own name.
func (g *CVTGenerator) Generate(ctx context.Context, req display.Request) (display.TimingMode, error) {
	g.logger.Debug("generating timings", "mode", req.Name, "width", req.Width, "height", req.Height, "rate", req.Rate)

	out, err := g.runner.Run(ctx, g.binary, req.Width, req.Height, req.Rate)
	if err != nil {
		return display.TimingMode{}, err
	}

	mode, err := display.ParseTimingLine(req.Name, string(out))
	if err != nil {
		return display.TimingMode{}, fmt.Errorf("parsing %s output: %w", g.binary, err)
	}

	g.logger.Debug("generated timings", "mode", mode.Name, "clock", mode.PixelClock, "flags", mode.Flags)
	return mode, nil
}

var _ display.Generator = (*CVTGenerator)(nil)
