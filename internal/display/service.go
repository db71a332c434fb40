package display

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Service is the orchestration layer that derives, registers, tests, applies
// and saves display modes on behalf of the CLI. Each method is a single
// bounded sequence; the Service keeps no state between calls.
type Service struct {
	status      StatusReader
	generator   Generator
	applier     Applier
	store       ModeStore
	profile     Profile
	prompter    Prompter
	history     History
	logger      Logger
	clock       Clock
	idgen       IDGenerator
	sleeper     Sleeper
	countdown   io.Writer
	operationID string
}

// Dependencies are the collaborators of a Service. Status, Generator,
// Applier and Store are required. History, Profile, Prompter and Countdown
// may be nil; the remaining fields fall back to real implementations.
type Dependencies struct {
	Status    StatusReader
	Generator Generator
	Applier   Applier
	Store     ModeStore
	Profile   Profile
	Prompter  Prompter
	History   History
	Logger    Logger
	Clock     Clock
	IDGen     IDGenerator
	Sleeper   Sleeper

	// Countdown receives a "Reverting in N secs" line per second while a
	// mode is under test. Nil disables the countdown.
	Countdown io.Writer

	// OperationID tags every activation recorded by this Service.
	OperationID string
}

// NewService creates a Service from its dependencies.
func NewService(d Dependencies) *Service {
	s := &Service{
		status:      d.Status,
		generator:   d.Generator,
		applier:     d.Applier,
		store:       d.Store,
		profile:     d.Profile,
		prompter:    d.Prompter,
		history:     d.History,
		logger:      d.Logger,
		clock:       d.Clock,
		idgen:       d.IDGen,
		sleeper:     d.Sleeper,
		countdown:   d.Countdown,
		operationID: d.OperationID,
	}
	if s.logger == nil {
		s.logger = NewNopLogger()
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.idgen == nil {
		s.idgen = UUIDGenerator{}
	}
	if s.sleeper == nil {
		s.sleeper = RealSleeper{}
	}
	return s
}

// AddOptions configures AddMode.
type AddOptions struct {
	// Request holds the requested parameters; empty fields are taken from
	// the active mode of the requested output, or of the first connected
	// output.
	Request Request

	// Test applies the new mode temporarily and reverts after Timeout.
	Test    bool
	Timeout string

	// Save writes the new mode to the store.
	Save bool
}

// AddMode generates a mode for the request, registers it with the display
// server, optionally tests it and optionally saves it. It returns the
// generated mode.
func (s *Service) AddMode(ctx context.Context, opts AddOptions) (mode TimingMode, err error) {
	started := s.clock.Now()
	req := opts.Request
	defer func() {
		s.record(OperationAdd, req.Name, req.Output, started, err, "")
	}()

	status, err := s.queryStatus(ctx, Active)
	if err != nil {
		return TimingMode{}, err
	}

	current, found := selectSnapshot(status.Snapshots, req.Output)
	if !found && (!req.Complete() || opts.Test) {
		return TimingMode{}, ErrNoOutputs
	}
	req = req.Fill(current)
	s.logger.Debug("resolved mode request",
		"name", req.Name, "width", req.Width, "height", req.Height, "rate", req.Rate, "output", req.Output)

	target, fallback, fallbackErr, err := s.generatePair(ctx, req, current, found)
	if err != nil {
		return TimingMode{}, fmt.Errorf("generating timings for %s: %w", req.Name, err)
	}
	if fallbackErr != nil {
		if opts.Test {
			return TimingMode{}, fmt.Errorf("generating fallback timings for %s: %w", current.ModeName(), fallbackErr)
		}
		s.logger.Debug("fallback timings unavailable", "error", fallbackErr)
	}

	if err := s.applier.Register(ctx, target, req.Output); err != nil {
		return TimingMode{}, fmt.Errorf("registering mode %s: %w", target.Name, err)
	}
	s.logger.Info("mode registered", "mode", target.Name, "output", req.Output)

	if opts.Test {
		if err := s.TestMode(ctx, target, fallback, req.Output, opts.Timeout); err != nil {
			return TimingMode{}, err
		}
	}

	if opts.Save {
		if err := s.store.Save(target); err != nil {
			return TimingMode{}, fmt.Errorf("saving mode %s: %w", target.Name, err)
		}
		s.logger.Info("mode saved", "mode", target.Name)
	}

	return target, nil
}

// generatePair generates the requested mode and, when a current snapshot is
// known, the fallback mode for that snapshot. The two cvt invocations run
// concurrently and are joined before returning.
func (s *Service) generatePair(ctx context.Context, req Request, current Snapshot, haveCurrent bool) (target, fallback TimingMode, fallbackErr, err error) {
	var wg sync.WaitGroup
	if haveCurrent {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fallback, fallbackErr = s.generator.Generate(ctx, current.Request())
		}()
	} else {
		fallbackErr = ErrNoOutputs
	}

	target, err = s.generator.Generate(ctx, req)
	wg.Wait()

	return target, fallback, fallbackErr, err
}

// ApplyOptions configures ApplyMode.
type ApplyOptions struct {
	Name   string
	Output string

	// Test applies the mode temporarily, reverts to the output's default
	// mode after Timeout, then asks whether to keep it.
	Test    bool
	Timeout string

	// Persist appends the mode to the login profile after switching.
	Persist bool
}

// ApplyMode switches an output to a saved mode. No display mutation happens
// if the mode is not in the store. applied is false when the operator
// declined to keep a tested mode; the output is then back on its default.
func (s *Service) ApplyMode(ctx context.Context, opts ApplyOptions) (applied bool, err error) {
	started := s.clock.Now()
	outcome := ""
	defer func() {
		s.record(OperationApply, opts.Name, opts.Output, started, err, outcome)
	}()

	mode, err := s.store.Find(opts.Name)
	if err != nil {
		return false, fmt.Errorf("finding mode %s: %w", opts.Name, err)
	}

	if opts.Test {
		keep, err := s.testSaved(ctx, mode, opts)
		if err != nil {
			return false, err
		}
		if !keep {
			outcome = OutcomeDiscarded
			s.logger.Info("tested mode discarded", "mode", mode.Name, "output", opts.Output)
			return false, nil
		}
	}

	if err := s.applier.Switch(ctx, mode.Name, opts.Output); err != nil {
		return false, fmt.Errorf("switching %s to %s: %w", opts.Output, mode.Name, err)
	}
	s.logger.Info("mode applied", "mode", mode.Name, "output", opts.Output)

	if opts.Persist {
		if s.profile == nil {
			return true, fmt.Errorf("persisting mode %s: no login profile configured", mode.Name)
		}
		if err := s.profile.Persist(mode, opts.Output); err != nil {
			return true, fmt.Errorf("persisting mode %s: %w", mode.Name, err)
		}
	}

	return true, nil
}

// testSaved runs the test window for a stored mode against the output's
// default mode and asks the operator whether to keep it. The revert has
// already happened when the question is asked.
func (s *Service) testSaved(ctx context.Context, mode TimingMode, opts ApplyOptions) (bool, error) {
	status, err := s.queryStatus(ctx, Default)
	if err != nil {
		return false, err
	}
	def, ok := selectSnapshot(status.Snapshots, opts.Output)
	if !ok {
		return false, fmt.Errorf("finding default mode for %s: %w", opts.Output, ErrNoOutputs)
	}

	fallback, err := s.generator.Generate(ctx, def.Request())
	if err != nil {
		return false, fmt.Errorf("generating fallback timings for %s: %w", def.ModeName(), err)
	}

	if err := s.TestMode(ctx, mode, fallback, opts.Output, opts.Timeout); err != nil {
		return false, err
	}

	if s.prompter == nil {
		return false, fmt.Errorf("no prompter available to confirm mode %s", mode.Name)
	}
	keep, err := s.prompter.Confirm("Keep the mode you just tested?")
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return keep, nil
}

// Status returns the active and default snapshots of every connected
// output. The two queries run concurrently.
func (s *Service) Status(ctx context.Context) (active, defaults *Status, err error) {
	var (
		wg        sync.WaitGroup
		activeErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		active, activeErr = s.queryStatus(ctx, Active)
	}()
	defaults, err = s.queryStatus(ctx, Default)
	wg.Wait()

	if activeErr != nil {
		return nil, nil, activeErr
	}
	if err != nil {
		return nil, nil, err
	}
	return active, defaults, nil
}

func (s *Service) queryStatus(ctx context.Context, kind ModeKind) (*Status, error) {
	st, err := s.status.Query(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("querying %s modes: %w", kind, err)
	}
	if st.Degraded() {
		s.logger.Warn("display status unavailable", "kind", kind.String(), "reason", st.Skipped)
	}
	for _, snap := range st.Snapshots {
		s.logger.Debug("found mode", "kind", kind.String(), "output", snap.Output,
			"width", snap.Width, "height", snap.Height, "rate", snap.Rate)
	}
	return st, nil
}

// selectSnapshot returns the snapshot for output, or the first snapshot when
// output is empty or has no snapshot of its own.
func selectSnapshot(snapshots []Snapshot, output string) (Snapshot, bool) {
	if len(snapshots) == 0 {
		return Snapshot{}, false
	}
	for _, snap := range snapshots {
		if snap.Output == output {
			return snap, true
		}
	}
	return snapshots[0], true
}

// record stores an activation in the history, if one is configured.
// An empty outcome is derived from err.
func (s *Service) record(operation, modeName, output string, started time.Time, err error, outcome string) {
	if s.history == nil {
		return
	}
	if outcome == "" {
		outcome = OutcomeSuccess
		if err != nil {
			outcome = OutcomeError
		}
	}
	a := &Activation{
		ID:          s.idgen.New(),
		OperationID: s.operationID,
		Operation:   operation,
		ModeName:    modeName,
		Output:      output,
		Outcome:     outcome,
		StartedAt:   started,
		FinishedAt:  s.clock.Now(),
	}
	if err != nil {
		a.Detail = err.Error()
	}
	if herr := s.history.RecordActivation(a); herr != nil {
		s.logger.Warn("recording activation failed", "operation", operation, "error", herr)
	}
}
