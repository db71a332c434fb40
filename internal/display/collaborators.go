package display

import "context"

// StatusReader queries the display server for the active or default mode of
// every connected output.
type StatusReader interface {
	Query(ctx context.Context, kind ModeKind) (*Status, error)
}

// Generator computes the timing parameters for a fully specified request.
type Generator interface {
	Generate(ctx context.Context, req Request) (TimingMode, error)
}

// Applier mutates the live display configuration.
type Applier interface {
	// Register defines mode on the display server and makes it available
	// to output. A failure after the definition step leaves the definition
	// in place.
	Register(ctx context.Context, mode TimingMode, output string) error

	// Switch activates the mode called name on output.
	Switch(ctx context.Context, name, output string) error
}

// ModeStore holds saved modes keyed by name.
type ModeStore interface {
	// Find returns the mode with the given name, or ErrNotFound.
	Find(name string) (TimingMode, error)

	// Save stores mode, replacing any existing mode with the same name.
	Save(mode TimingMode) error

	// List returns all stored modes in store order.
	List() ([]TimingMode, error)
}

// Profile makes an applied mode take effect again at the next login.
type Profile interface {
	Persist(mode TimingMode, output string) error
}

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}
