package display

import (
	"fmt"
	"strings"
)

// modelineTokens is the exact number of whitespace-separated tokens that
// follow the quoted mode name on a cvt modeline: the pixel clock, four
// horizontal and four vertical timings, and two sync-polarity flags.
const modelineTokens = 11

// ParseTimingLine extracts a TimingMode named name from cvt output such as:
//
//	# 1920x1080 59.96 Hz (CVT 2.07M9) hsync: 67.16 kHz; pclk: 173.00 MHz
//	Modeline "1920x1080_60.00"  173.00  1920 2048 2248 2576  1080 1083 1088 1120 -hsync +vsync
//
// The text after the quoted name must hold exactly eleven tokens. Anything
// else means cvt changed its format and is reported as ErrMalformedTimings;
// the output is never truncated or padded.
func ParseTimingLine(name, output string) (TimingMode, error) {
	open := strings.IndexByte(output, '"')
	if open < 0 {
		return TimingMode{}, fmt.Errorf("%w: no quoted modeline in %q", ErrMalformedTimings, output)
	}
	rest := output[open+1:]
	closing := strings.IndexByte(rest, '"')
	if closing < 0 {
		return TimingMode{}, fmt.Errorf("%w: unterminated modeline name in %q", ErrMalformedTimings, output)
	}
	rest = rest[closing+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	t := strings.Fields(rest)
	if len(t) != modelineTokens {
		return TimingMode{}, fmt.Errorf("%w: want %d modeline tokens, got %d in %q",
			ErrMalformedTimings, modelineTokens, len(t), strings.TrimSpace(rest))
	}

	return TimingMode{
		Name:       name,
		PixelClock: t[0],
		HDisplay:   t[1],
		HSyncStart: t[2],
		HSyncEnd:   t[3],
		HTotal:     t[4],
		VDisplay:   t[5],
		VSyncStart: t[6],
		VSyncEnd:   t[7],
		VTotal:     t[8],
		Flags:      t[9] + " " + t[10],
	}, nil
}
