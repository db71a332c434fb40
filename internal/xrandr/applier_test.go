package xrandr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cathode/internal/display"
	"cathode/internal/testutil"
)

var testMode = display.TimingMode{
	Name:       "1920x1080_75",
	PixelClock: "220.75",
	HDisplay:   "1920",
	HSyncStart: "2064",
	HSyncEnd:   "2272",
	HTotal:     "2624",
	VDisplay:   "1080",
	VSyncStart: "1083",
	VSyncEnd:   "1088",
	VTotal:     "1124",
	Flags:      "-hsync +vsync",
}

const newModeCmd = "xrandr --newmode 1920x1080_75 220.75 1920 2064 2272 2624 1080 1083 1088 1124 -hsync +vsync"

func TestApplier_Register(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On(newModeCmd, "", nil).
		On("xrandr --addmode HDMI-1 1920x1080_75", "", nil)
	a := NewApplier(runner, "xrandr", display.NewNopLogger())

	if err := a.Register(context.Background(), testMode, "HDMI-1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	want := []string{newModeCmd, "xrandr --addmode HDMI-1 1920x1080_75"}
	if got := runner.Calls(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestApplier_RegisterExistingMode(t *testing.T) {
	exists := &CommandError{Name: "xrandr", ExitCode: 1, Stderr: "BadName"}
	runner := testutil.NewFakeRunner().
		On(newModeCmd, "", exists).
		On("xrandr --addmode HDMI-1 1920x1080_75", "", exists)
	a := NewApplier(runner, "xrandr", display.NewNopLogger())

	if err := a.Register(context.Background(), testMode, "HDMI-1"); err != nil {
		t.Fatalf("Register() error = %v, want non-zero exits tolerated", err)
	}
	if n := len(runner.Calls()); n != 2 {
		t.Errorf("ran %d commands, want 2", n)
	}
}

func TestApplier_RegisterMissingBinary(t *testing.T) {
	missing := &CommandError{Name: "xrandr", ExitCode: -1, Err: errors.New("executable file not found")}
	runner := testutil.NewFakeRunner().On(newModeCmd, "", missing)
	a := NewApplier(runner, "xrandr", display.NewNopLogger())

	err := a.Register(context.Background(), testMode, "HDMI-1")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Exited() {
		t.Fatalf("Register() error = %v, want spawn failure", err)
	}
	if n := len(runner.Calls()); n != 1 {
		t.Errorf("ran %d commands, want to stop after the failed spawn", n)
	}
}

func TestApplier_Switch(t *testing.T) {
	runner := testutil.NewFakeRunner().
		On("xrandr --output DP-1 --mode 1920x1080_75", "", nil).
		On("xrandr --output DP-1 --mode bogus", "", &CommandError{Name: "xrandr", ExitCode: 1})
	a := NewApplier(runner, "xrandr", display.NewNopLogger())

	if err := a.Switch(context.Background(), "1920x1080_75", "DP-1"); err != nil {
		t.Errorf("Switch() error = %v", err)
	}
	if err := a.Switch(context.Background(), "bogus", "DP-1"); err == nil {
		t.Error("Switch() expected error for non-zero exit")
	}
}
