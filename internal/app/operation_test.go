package app

import (
	"testing"
	"time"

	"cathode/internal/testutil"
)

func TestNewOperation(t *testing.T) {
	clock := testutil.FixedClock()
	idgen := testutil.NewStubIDGenerator()

	op := NewOperation("AddMode", idgen, clock)

	if op.Name != "AddMode" {
		t.Errorf("Name = %q, want %q", op.Name, "AddMode")
	}
	if op.ID != "id-1" {
		t.Errorf("ID = %q, want %q", op.ID, "id-1")
	}
	if !op.StartedAt.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("StartedAt = %v", op.StartedAt)
	}
}

func TestOperation_ShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "uuid is truncated", id: "3f2b9c1e-8d4a-4f7b-9e61-0a5c2d7b8e90", want: "3f2b9c1e"},
		{name: "short id kept", id: "id-1", want: "id-1"},
		{name: "exactly eight", id: "abcdefgh", want: "abcdefgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &Operation{ID: tt.id}
			if got := op.ShortID(); got != tt.want {
				t.Errorf("ShortID() = %q, want %q", got, tt.want)
			}
		})
	}
}
