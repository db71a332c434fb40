package display

import "time"

// Activation outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeDiscarded = "discarded"
)

// Activation operations.
const (
	OperationAdd   = "add"
	OperationApply = "apply"
	OperationTest  = "test"
)

// Activation records one add, apply or test of a mode on an output.
type Activation struct {
	ID          string
	OperationID string
	Operation   string
	ModeName    string
	Output      string
	Outcome     string
	Detail      string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns how long the activation took.
func (a *Activation) Duration() time.Duration {
	return a.FinishedAt.Sub(a.StartedAt)
}

// History stores activation records.
type History interface {
	// RecordActivation appends a record.
	RecordActivation(a *Activation) error

	// RecentActivations returns up to limit records, newest first.
	RecentActivations(limit int) ([]*Activation, error)

	// Close releases the underlying storage.
	Close() error
}
