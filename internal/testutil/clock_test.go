package testutil

import "testing"

func TestSequentialIDs(t *testing.T) {
	g := NewStubIDGenerator()
	for _, want := range []string{"id-1", "id-2", "id-3"} {
		if got := g.New(); got != want {
			t.Errorf("New() = %q, want %q", got, want)
		}
	}
}

func TestFixedClock(t *testing.T) {
	c := FixedClock()
	if !c.Now().Equal(TestTime) || !c.Now().Equal(c.Now()) {
		t.Errorf("Now() = %v, want %v on every call", c.Now(), TestTime)
	}
}
