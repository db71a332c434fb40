package display

import (
	"fmt"
	"strings"
)

// TimingMode is a named, complete set of timing parameters as produced by cvt.
// The fields are opaque strings forwarded verbatim to xrandr; nothing in this
// package interprets them. A TimingMode is never modified after construction.
type TimingMode struct {
	Name       string
	PixelClock string
	HDisplay   string
	HSyncStart string
	HSyncEnd   string
	HTotal     string
	VDisplay   string
	VSyncStart string
	VSyncEnd   string
	VTotal     string
	Flags      string // two tokens joined by a single space, e.g. "-hsync +vsync"
}

// Timings returns the nine numeric timing fields in xrandr --newmode order.
func (m TimingMode) Timings() []string {
	return []string{
		m.PixelClock,
		m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal,
		m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal,
	}
}

// FlagList splits Flags back into its individual tokens.
func (m TimingMode) FlagList() []string {
	return strings.Fields(m.Flags)
}

// ModeKind selects which mode of each output a status report is scanned for.
type ModeKind int

const (
	// Active is the mode currently driving the output.
	Active ModeKind = iota
	// Default is the output's preferred (factory) mode.
	Default
)

func (k ModeKind) String() string {
	switch k {
	case Active:
		return "active"
	case Default:
		return "default"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Snapshot describes the resolution and refresh rate of one connected output,
// either its active mode or its default mode.
type Snapshot struct {
	Output string
	Width  string
	Height string
	Rate   string
}

// ModeName returns the name xrandr uses for the output's built-in mode at
// this resolution.
func (s Snapshot) ModeName() string {
	return s.Width + "x" + s.Height
}

// Request returns a fully specified request that regenerates this snapshot's
// mode under its built-in name.
func (s Snapshot) Request() Request {
	return Request{
		Width:  s.Width,
		Height: s.Height,
		Rate:   s.Rate,
		Output: s.Output,
		Name:   s.ModeName(),
	}
}

// Status is the result of querying the display server for snapshots.
// Skipped is non-empty when the query was not performed (for example on an
// unsupported platform); Snapshots is then empty but the result is not an error.
type Status struct {
	Kind      ModeKind
	Snapshots []Snapshot
	Skipped   string
}

// Degraded reports whether the status is empty because the query was skipped
// rather than because no outputs are connected.
func (s *Status) Degraded() bool {
	return s.Skipped != ""
}

// Request describes a mode to generate. Any field may be empty; Fill
// completes it from a snapshot.
type Request struct {
	Width  string
	Height string
	Rate   string
	Output string
	Name   string
}

// Complete reports whether every field needed to generate and register a
// mode is present.
func (r Request) Complete() bool {
	return r.Width != "" && r.Height != "" && r.Rate != "" && r.Output != ""
}

// Fill returns a copy of r with empty width, height, rate and output taken
// from snap. An empty name is synthesized as "<width>x<height>_<rate>".
func (r Request) Fill(snap Snapshot) Request {
	if r.Width == "" {
		r.Width = snap.Width
	}
	if r.Height == "" {
		r.Height = snap.Height
	}
	if r.Rate == "" {
		r.Rate = snap.Rate
	}
	if r.Output == "" {
		r.Output = snap.Output
	}
	if r.Name == "" {
		r.Name = fmt.Sprintf("%sx%s_%s", r.Width, r.Height, r.Rate)
	}
	return r
}
