package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cathode/internal/display"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(testMode("a", "100.00"), testMode("a", "110.00"))

	modes, err := s.List()
	require.NoError(t, err)
	require.Len(t, modes, 1, "names are unique")
	assert.Equal(t, "110.00", modes[0].PixelClock)

	require.NoError(t, s.Save(testMode("b", "120.00")))
	got, err := s.Find("b")
	require.NoError(t, err)
	assert.Equal(t, "120.00", got.PixelClock)

	_, err = s.Find("missing")
	assert.ErrorIs(t, err, display.ErrNotFound)
}
