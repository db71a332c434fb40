package display

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "<output> connected ..." or "<output> disconnected ..." at column zero.
	outputLineRe = regexp.MustCompile(`^(\S+)\s+(connected|disconnected)\b`)

	// An indented mode line: "   1920x1080     60.00*+  50.00    59.94".
	modeLineRe = regexp.MustCompile(`^\s+([0-9]+)x([0-9]+)\S*\s+(.*)$`)

	// One refresh rate with its markers. xrandr prints '*' for the active
	// rate and '+' for the preferred one, the latter optionally after a space.
	rateRe = regexp.MustCompile(`([0-9]+\.[0-9]+)(\*)?( ?\+)?`)
)

// ParseModes scans an `xrandr --current` report and returns one snapshot per
// connected output whose block contains a mode line of the requested kind.
// Disconnected outputs and outputs without a match are omitted. Snapshots are
// returned in report order.
func ParseModes(report string, kind ModeKind) []Snapshot {
	var (
		snapshots []Snapshot
		output    string
		found     bool
	)

	scanner := bufio.NewScanner(strings.NewReader(report))
	for scanner.Scan() {
		line := scanner.Text()

		// Any unindented line starts a new block, including headers such
		// as "VIRTUAL1 unknown connection" and the "Screen 0:" line.
		if line != "" && line[0] != ' ' && line[0] != '\t' {
			output = ""
			found = false
			if m := outputLineRe.FindStringSubmatch(line); m != nil && m[2] == "connected" {
				output = m[1]
			}
			continue
		}
		if output == "" || found {
			continue
		}

		m := modeLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rate, ok := matchRate(m[3], kind)
		if !ok {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Output: output,
			Width:  m[1],
			Height: m[2],
			Rate:   rate,
		})
		found = true
	}

	return snapshots
}

// matchRate returns the first rate in a mode line's rate list that carries
// the marker for kind.
func matchRate(rates string, kind ModeKind) (string, bool) {
	for _, m := range rateRe.FindAllStringSubmatch(rates, -1) {
		active := m[2] != ""
		preferred := m[3] != ""
		if (kind == Active && active) || (kind == Default && preferred) {
			return normalizeRate(m[1]), true
		}
	}
	return "", false
}

// normalizeRate drops a zero fractional part so "60.00" becomes "60" and
// "59.94" is kept as is.
func normalizeRate(rate string) string {
	f, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return rate
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
