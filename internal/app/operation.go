package app

import (
	"time"

	"cathode/internal/display"
)

// Operation identifies one CLI invocation. Its ID tags every log line and
// every activation recorded during the invocation.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
}

// NewOperation creates an operation named after the CLI command being run
// (e.g. "AddMode", "ApplyMode").
func NewOperation(name string, idgen display.IDGenerator, clock display.Clock) *Operation {
	return &Operation{
		ID:        idgen.New(),
		Name:      name,
		StartedAt: clock.Now(),
	}
}

// ShortID returns the first eight characters of the ID for log lines.
func (op *Operation) ShortID() string {
	if len(op.ID) <= 8 {
		return op.ID
	}
	return op.ID[:8]
}
