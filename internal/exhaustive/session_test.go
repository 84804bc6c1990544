package exhaustive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_FirstRunUsesEmptyPath(t *testing.T) {
	s := NewSession(3)

	r, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, 3, r.ChoicesLeft())
	assert.Empty(t, s.Path())
	assert.Equal(t, 1, s.Attempts())
}

func TestSession_NoChoicesMeansSingleAttempt(t *testing.T) {
	s := NewSession(5)

	_, ok := s.Next()
	require.True(t, ok)

	// Nothing was recorded, so the walk is already over.
	_, ok = s.Next()
	assert.False(t, ok)
	assert.True(t, s.Done())
}

func TestSession_BacktrackIncrementsLastOpenPosition(t *testing.T) {
	s := NewSession(3)

	r, _ := s.Next()
	for i := 0; i < 3; i++ {
		_, err := r.Choice(2)
		require.NoError(t, err)
	}
	assert.Equal(t, []Position{{0, 1}, {0, 1}, {0, 1}}, s.Path())

	_, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, []Position{{0, 1}, {0, 1}, {1, 1}}, s.Path())

	_, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, []Position{{0, 1}, {1, 1}}, s.Path())
}

func TestSession_ExhaustionIsSticky(t *testing.T) {
	s := NewSession(2)
	for r, ok := s.Next(); ok; r, ok = s.Next() {
		_, _ = boolGen.Generate(r)
	}
	assert.True(t, s.Done())

	for i := 0; i < 5; i++ {
		r, ok := s.Next()
		assert.False(t, ok)
		assert.Nil(t, r)
	}
	assert.Empty(t, s.Path())
}

func TestSession_ZeroBudget(t *testing.T) {
	// Every real choice fails, so nothing but the empty attempt exists.
	assert.Empty(t, collectAll(0, boolGen))
	assert.Equal(t, []struct{}{{}}, collectAll(0, unitGen))
}

func TestNewSession_NegativeBudgetPanics(t *testing.T) {
	assert.Panics(t, func() { NewSession(-1) })
}

func TestSession_NextInvalidatesPreviousRun(t *testing.T) {
	s := NewSession(2)
	r1, _ := s.Next()
	_, err := r1.Choice(2)
	require.NoError(t, err)

	_, ok := s.Next()
	require.True(t, ok)

	assert.PanicsWithValue(t, "exhaustive: Run used after its Session moved on", func() {
		_, _ = r1.Choice(2)
	})
	assert.Panics(t, func() { r1.Reset(2) })
}

func TestSession_Deterministic(t *testing.T) {
	first := collectAll(5, sliceGen[bool](boolGen))
	second := collectAll(5, sliceGen[bool](boolGen))
	assert.Equal(t, first, second)
}
