package testutil

import (
	"strconv"
	"sync/atomic"
	"time"

	"cathode/internal/display"
)

// TestTime is the instant reported by FixedClock.
var TestTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// StubClock reports the same instant on every call, so activation start and
// finish times are equal in tests.
type StubClock struct {
	At time.Time
}

// FixedClock returns a StubClock stopped at TestTime.
func FixedClock() StubClock {
	return StubClock{At: TestTime}
}

func (c StubClock) Now() time.Time { return c.At }

// SequentialIDs numbers operations and activations "id-1", "id-2", ... in
// the order they are requested.
type SequentialIDs struct {
	n atomic.Int64
}

func NewStubIDGenerator() *SequentialIDs {
	return &SequentialIDs{}
}

func (g *SequentialIDs) New() string {
	return "id-" + strconv.FormatInt(g.n.Add(1), 10)
}

var (
	_ display.Clock       = StubClock{}
	_ display.IDGenerator = (*SequentialIDs)(nil)
)
