package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"cathode/internal/config"
	"cathode/internal/display"
	"cathode/internal/history"
	"cathode/internal/remote"
	"cathode/internal/store"
	"cathode/internal/xrandr"
)

// Options adjust how a CathodeApp is wired. Zero values select the real
// process environment, terminal and external tools.
type Options struct {
	Verbose bool

	// ModesFile overrides the configured mode store path (--filename).
	ModesFile string

	Env      Env
	Stdout   io.Writer
	Runner   xrandr.Runner
	Prompter display.Prompter
	Sleeper  display.Sleeper
	Clock    display.Clock
	IDGen    display.IDGenerator
}

// CathodeApp is the application layer between the CLI and display.Service.
// It constructs all dependencies from config, exposes the high-level
// operations of each command and closes the history and log file on Close.
type CathodeApp struct {
	cfg     *config.Config
	env     Env
	store   *store.FileStore
	history display.History
	service *display.Service
	logger  display.Logger
	op      *Operation
	logFile *os.File
}

// NewCathodeApp creates a fully wired CathodeApp from the given config.
// operation identifies the CLI command being run (e.g. "AddMode", "ApplyMode").
// The caller must call Close when done.
func NewCathodeApp(cfg *config.Config, operation string, opts Options) (*CathodeApp, error) {
	if opts.Env == nil {
		opts.Env = OSEnv{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Runner == nil {
		opts.Runner = xrandr.ExecRunner{}
	}
	if opts.Prompter == nil {
		opts.Prompter = newTerminalPrompter(os.Stdin, opts.Stdout)
	}
	if opts.Clock == nil {
		opts.Clock = display.RealClock{}
	}
	if opts.IDGen == nil {
		opts.IDGen = display.UUIDGenerator{}
	}

	op := NewOperation(operation, opts.IDGen, opts.Clock)

	slogger, logFile, err := newLogger(cfg.LogDir, op.ShortID(), opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	modesOverride := opts.ModesFile
	if modesOverride == "" {
		modesOverride = cfg.ModesFile
	}
	modesPath, err := ResolveModesPath(modesOverride, opts.Env)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("resolving mode store path: %w", err)
	}

	hist, err := history.NewHistoryFromConfig(cfg.History)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating history: %w", err)
	}
	if checker, ok := hist.(interface{ CheckMigrations() error }); ok {
		if err := checker.CheckMigrations(); err != nil {
			hist.Close()
			logFile.Close()
			return nil, fmt.Errorf("history schema out of date: %w", err)
		}
	}

	fileStore := store.NewFileStore(modesPath, logger)

	deps := display.Dependencies{
		Status:      xrandr.NewStatusReader(opts.Runner, cfg.Tools.Xrandr),
		Generator:   xrandr.NewCVTGenerator(opts.Runner, cfg.Tools.CVT, logger),
		Applier:     xrandr.NewApplier(opts.Runner, cfg.Tools.Xrandr, logger),
		Store:       fileStore,
		Profile:     xrandr.NewProfile(cfg.ProfilePath, cfg.Tools.Xrandr, logger),
		Prompter:    opts.Prompter,
		History:     hist,
		Logger:      logger,
		Clock:       opts.Clock,
		IDGen:       opts.IDGen,
		Sleeper:     opts.Sleeper,
		OperationID: op.ID,
	}
	if opts.Verbose {
		deps.Countdown = opts.Stdout
	}

	logger.Debug("operation started", "operation", op.Name, "modes_file", modesPath)

	return &CathodeApp{
		cfg:     cfg,
		env:     opts.Env,
		store:   fileStore,
		history: hist,
		service: display.NewService(deps),
		logger:  logger,
		op:      op,
		logFile: logFile,
	}, nil
}

// Operation returns the operation this app was created for.
func (a *CathodeApp) Operation() *Operation { return a.op }

// ModesFile returns the path of the mode store in use.
func (a *CathodeApp) ModesFile() string { return a.store.Path() }

// timeout returns t, or the configured default timeout when t is empty.
func (a *CathodeApp) timeout(t string) string {
	if t == "" && a.cfg.DefaultTimeout > 0 {
		return strconv.Itoa(a.cfg.DefaultTimeout)
	}
	return t
}

// AddMode generates, registers and optionally tests and saves a mode.
func (a *CathodeApp) AddMode(ctx context.Context, opts display.AddOptions) (display.TimingMode, error) {
	opts.Timeout = a.timeout(opts.Timeout)
	return a.service.AddMode(ctx, opts)
}

// ApplyMode switches an output to a saved mode. It reports false when a
// tested mode was discarded.
func (a *CathodeApp) ApplyMode(ctx context.Context, opts display.ApplyOptions) (bool, error) {
	opts.Timeout = a.timeout(opts.Timeout)
	return a.service.ApplyMode(ctx, opts)
}

// ImportModes loads every stored mode and logs it. A store that could not be
// parsed is reported as a warning and yields no modes.
func (a *CathodeApp) ImportModes() ([]display.TimingMode, error) {
	c, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("importing modes: %w", err)
	}
	if c.Recovered != nil {
		a.logger.Warn("mode store could not be parsed", "path", a.store.Path(), "error", c.Recovered)
	}
	for _, m := range c.Modes {
		a.logger.Info("imported mode", "mode", m.Name, "clock", m.PixelClock, "flags", m.Flags)
	}
	return c.Modes, nil
}

// ListModes returns every stored mode in store order.
func (a *CathodeApp) ListModes() ([]display.TimingMode, error) {
	return a.store.List()
}

// Status returns the active and default snapshots of every output.
func (a *CathodeApp) Status(ctx context.Context) (active, defaults *display.Status, err error) {
	return a.service.Status(ctx)
}

// History returns the most recent activations, newest first.
func (a *CathodeApp) History(limit int) ([]*display.Activation, error) {
	return a.history.RecentActivations(limit)
}

// openRemote creates and validates the remote called name, or the first
// configured remote when name is empty.
func (a *CathodeApp) openRemote(ctx context.Context, name string) (remote.Remote, error) {
	rc, err := a.cfg.Remote(name)
	if err != nil {
		return nil, err
	}
	r, err := remote.NewRemoteFromConfig(ctx, rc, a.env.Getenv)
	if err != nil {
		return nil, fmt.Errorf("creating remote %s: %w", rc.Name, err)
	}
	if err := r.ValidateSetup(ctx); err != nil {
		return nil, fmt.Errorf("validating remote %s: %w", rc.Name, err)
	}
	return r, nil
}

// Push uploads the mode store to a remote. It returns the remote's name.
func (a *CathodeApp) Push(ctx context.Context, remoteName string) (string, error) {
	r, err := a.openRemote(ctx, remoteName)
	if err != nil {
		return "", err
	}

	// Load creates the file when it does not exist yet.
	if _, err := a.store.Load(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(a.store.Path())
	if err != nil {
		return "", fmt.Errorf("reading mode store: %w", err)
	}

	if err := r.Put(ctx, remote.ModesKey, bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("pushing modes to %s: %w", r.Name(), err)
	}
	a.logger.Info("modes pushed", "remote", r.Name(), "bytes", len(data))
	return r.Name(), nil
}

// Pull downloads the mode file from a remote and merges it into the local
// store. Remote modes replace local modes with the same name. It returns the
// number of modes merged.
func (a *CathodeApp) Pull(ctx context.Context, remoteName string) (int, error) {
	r, err := a.openRemote(ctx, remoteName)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := r.Get(ctx, remote.ModesKey, &buf); err != nil {
		return 0, fmt.Errorf("pulling modes from %s: %w", r.Name(), err)
	}
	modes, err := store.Decode(buf.Bytes())
	if err != nil {
		return 0, fmt.Errorf("pulling modes from %s: %w", r.Name(), err)
	}

	n, err := a.store.Merge(modes)
	if err != nil {
		return 0, err
	}
	a.logger.Info("modes pulled", "remote", r.Name(), "modes", n)
	return n, nil
}

// Close closes the history and the log file.
func (a *CathodeApp) Close() error {
	var firstErr error
	if err := a.history.Close(); err != nil {
		firstErr = fmt.Errorf("closing history: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
