package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cathode/internal/display"
)

// FakeStatusReader returns fixed snapshots per kind.
type FakeStatusReader struct {
	Active  []display.Snapshot
	Default []display.Snapshot
	Skipped string
	Err     error
}

func (r *FakeStatusReader) Query(_ context.Context, kind display.ModeKind) (*display.Status, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	st := &display.Status{Kind: kind, Skipped: r.Skipped}
	if kind == display.Active {
		st.Snapshots = append(st.Snapshots, r.Active...)
	} else {
		st.Snapshots = append(st.Snapshots, r.Default...)
	}
	return st, nil
}

// FakeGenerator derives deterministic timings from the request. Errs fails
// generation for the named modes. Safe for concurrent use.
type FakeGenerator struct {
	Errs map[string]error

	mu       sync.Mutex
	requests []display.Request
}

func (g *FakeGenerator) Generate(_ context.Context, req display.Request) (display.TimingMode, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if err := g.Errs[req.Name]; err != nil {
		return display.TimingMode{}, err
	}
	return ModeFor(req), nil
}

// Requests returns every request generated so far.
func (g *FakeGenerator) Requests() []display.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]display.Request(nil), g.requests...)
}

// ModeFor returns the timings FakeGenerator produces for req.
func ModeFor(req display.Request) display.TimingMode {
	return display.TimingMode{
		Name:       req.Name,
		PixelClock: fmt.Sprintf("%s.00", req.Rate),
		HDisplay:   req.Width,
		HSyncStart: req.Width + "8",
		HSyncEnd:   req.Width + "9",
		HTotal:     req.Width + "0",
		VDisplay:   req.Height,
		VSyncStart: req.Height + "3",
		VSyncEnd:   req.Height + "8",
		VTotal:     req.Height + "9",
		Flags:      "-hsync +vsync",
	}
}

// RecordingApplier logs "register <mode> <output>" and
// "switch <mode> <output>" events. SwitchErrs fails switches to the named
// modes.
type RecordingApplier struct {
	Events      *EventLog
	RegisterErr error
	SwitchErrs  map[string]error
}

func (a *RecordingApplier) Register(_ context.Context, mode display.TimingMode, output string) error {
	a.Events.Add("register " + mode.Name + " " + output)
	return a.RegisterErr
}

func (a *RecordingApplier) Switch(_ context.Context, name, output string) error {
	a.Events.Add("switch " + name + " " + output)
	return a.SwitchErrs[name]
}

// FakeSleeper returns immediately and logs "sleep <duration>".
type FakeSleeper struct {
	Events *EventLog

	mu    sync.Mutex
	slept []time.Duration
}

func (s *FakeSleeper) Sleep(_ context.Context, d time.Duration) {
	s.mu.Lock()
	s.slept = append(s.slept, d)
	s.mu.Unlock()
	s.Events.Add("sleep " + d.String())
}

// Slept returns every requested duration.
func (s *FakeSleeper) Slept() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.slept...)
}

// StubPrompter answers every question with Answer and logs "prompt".
type StubPrompter struct {
	Answer bool
	Err    error
	Events *EventLog

	Questions []string
}

func (p *StubPrompter) Confirm(question string) (bool, error) {
	p.Questions = append(p.Questions, question)
	p.Events.Add("prompt")
	return p.Answer, p.Err
}

// RecordingProfile logs "persist <mode> <output>".
type RecordingProfile struct {
	Events *EventLog
	Err    error
}

func (p *RecordingProfile) Persist(mode display.TimingMode, output string) error {
	p.Events.Add("persist " + mode.Name + " " + output)
	return p.Err
}

// RecordingHistory keeps activations in memory.
type RecordingHistory struct {
	mu          sync.Mutex
	activations []*display.Activation
}

func (h *RecordingHistory) RecordActivation(a *display.Activation) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activations = append(h.activations, a)
	return nil
}

func (h *RecordingHistory) RecentActivations(limit int) ([]*display.Activation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*display.Activation
	for i := len(h.activations) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.activations[i])
	}
	return out, nil
}

func (h *RecordingHistory) Close() error { return nil }
