package xrandr

import (
	"context"

	"cathode/internal/display"
)

// Applier defines and switches modes with xrandr.
type Applier struct {
	runner Runner
	binary string
	logger display.Logger
}

// NewApplier creates an Applier that runs binary (usually "xrandr").
func NewApplier(runner Runner, binary string, logger display.Logger) *Applier {
	return &Applier{runner: runner, binary: binary, logger: logger}
}

// NewModeArgs returns the xrandr arguments that define mode.
func NewModeArgs(mode display.TimingMode) []string {
	args := []string{"--newmode", mode.Name}
	args = append(args, mode.Timings()...)
	return append(args, mode.FlagList()...)
}

// AddModeArgs returns the xrandr arguments that attach a mode to output.
func AddModeArgs(name, output string) []string {
	return []string{"--addmode", output, name}
}

// SwitchArgs returns the xrandr arguments that activate a mode on output.
func SwitchArgs(name, output string) []string {
	return []string{"--output", output, "--mode", name}
}

// Register runs `xrandr --newmode` and then `xrandr --addmode`. xrandr exits
// non-zero when the mode is already defined or already attached; that is
// logged and not treated as a failure. A command that cannot be started is
// returned as is. Nothing is undone if the second step fails.
func (a *Applier) Register(ctx context.Context, mode display.TimingMode, output string) error {
	a.logger.Debug("creating xrandr mode", "mode", mode.Name)
	if _, err := a.runner.Run(ctx, a.binary, NewModeArgs(mode)...); err != nil {
		if !exitedOnly(err) {
			return err
		}
		a.logger.Warn("xrandr --newmode failed, mode may already exist", "mode", mode.Name, "error", err)
	}

	a.logger.Debug("adding mode to output", "mode", mode.Name, "output", output)
	if _, err := a.runner.Run(ctx, a.binary, AddModeArgs(mode.Name, output)...); err != nil {
		if !exitedOnly(err) {
			return err
		}
		a.logger.Warn("xrandr --addmode failed, mode may already be attached", "mode", mode.Name, "output", output, "error", err)
	}
	return nil
}

// Switch runs `xrandr --output <output> --mode <name>`.
func (a *Applier) Switch(ctx context.Context, name, output string) error {
	a.logger.Debug("applying mode", "mode", name, "output", output)
	if _, err := a.runner.Run(ctx, a.binary, SwitchArgs(name, output)...); err != nil {
		return err
	}
	a.logger.Debug("applied mode", "mode", name, "output", output)
	return nil
}

var _ display.Applier = (*Applier)(nil)
