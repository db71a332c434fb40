package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cvtOutput = `# 1920x1080 59.96 Hz (CVT 2.07M9) hsync: 67.16 kHz; pclk: 173.00 MHz
Modeline "1920x1080_60.00"  173.00  1920 2048 2248 2576  1080 1083 1088 1120 -hsync +vsync
`

func TestParseTimingLine(t *testing.T) {
	mode, err := ParseTimingLine("1920x1080_60", cvtOutput)
	require.NoError(t, err)

	assert.Equal(t, TimingMode{
		Name:       "1920x1080_60",
		PixelClock: "173.00",
		HDisplay:   "1920",
		HSyncStart: "2048",
		HSyncEnd:   "2248",
		HTotal:     "2576",
		VDisplay:   "1080",
		VSyncStart: "1083",
		VSyncEnd:   "1088",
		VTotal:     "1120",
		Flags:      "-hsync +vsync",
	}, mode)
	assert.Equal(t, []string{"173.00", "1920", "2048", "2248", "2576", "1080", "1083", "1088", "1120"}, mode.Timings())
	assert.Equal(t, []string{"-hsync", "+vsync"}, mode.FlagList())
}

func TestParseTimingLine_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "empty", output: ""},
		{name: "no quotes", output: "Modeline 1920x1080 173.00 1920 2048 2248 2576 1080 1083 1088 1120 -hsync +vsync"},
		{name: "unterminated name", output: `Modeline "1920x1080 173.00 1920`},
		{name: "one flag", output: `Modeline "m" 173.00 1920 2048 2248 2576 1080 1083 1088 1120 -hsync`},
		{name: "extra token", output: `Modeline "m" 173.00 1920 2048 2248 2576 1080 1083 1088 1120 -hsync +vsync interlace`},
		{name: "tokens on the next line", output: "Modeline \"m\"\n173.00 1920 2048 2248 2576 1080 1083 1088 1120 -hsync +vsync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimingLine("m", tt.output)
			assert.ErrorIs(t, err, ErrMalformedTimings)
		})
	}
}
