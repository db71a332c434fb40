package xrandr

import (
	"context"
	"errors"
	"testing"

	"cathode/internal/display"
	"cathode/internal/testutil"
)

func TestCVTGenerator_Generate(t *testing.T) {
	out := "# 1920x1080 74.91 Hz (CVT 2.07M9) hsync: 84.64 kHz; pclk: 220.75 MHz\n" +
		"Modeline \"1920x1080_75.00\"  220.75  1920 2064 2272 2624  1080 1083 1088 1130 -hsync +vsync\n"
	runner := testutil.NewFakeRunner().On("cvt 1920 1080 75", out, nil)
	g := NewCVTGenerator(runner, "cvt", display.NewNopLogger())

	mode, err := g.Generate(context.Background(), display.Request{Width: "1920", Height: "1080", Rate: "75", Name: "1920x1080_75"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if mode.Name != "1920x1080_75" {
		t.Errorf("Name = %q, want the requested name", mode.Name)
	}
	if mode.PixelClock != "220.75" || mode.VTotal != "1130" || mode.Flags != "-hsync +vsync" {
		t.Errorf("mode = %+v", mode)
	}
}

func TestCVTGenerator_MalformedOutput(t *testing.T) {
	runner := testutil.NewFakeRunner().On("cvt 1920 1080 75", "Modeline \"x\" 220.75 1920\n", nil)
	g := NewCVTGenerator(runner, "cvt", display.NewNopLogger())

	_, err := g.Generate(context.Background(), display.Request{Width: "1920", Height: "1080", Rate: "75", Name: "x"})
	if !errors.Is(err, display.ErrMalformedTimings) {
		t.Fatalf("Generate() error = %v, want ErrMalformedTimings", err)
	}
}
