package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSelectToggleWithinLimit(t *testing.T) {
	e := NewMultiSelectEngine(multiSelectQuestion(2), MultiSelectAnswer{})

	require.NoError(t, e.Toggle("o1"))
	require.NoError(t, e.Toggle("o3"))
	assert.Equal(t, []string{"o1", "o3"}, e.Selected())

	// Toggling off always succeeds, even at the limit.
	require.NoError(t, e.Toggle("o1"))
	assert.Equal(t, []string{"o3"}, e.Selected())
}

func TestMultiSelectLimitEnforced(t *testing.T) {
	e := NewMultiSelectEngine(multiSelectQuestion(2), MultiSelectAnswer{})
	require.NoError(t, e.Toggle("o1"))
	require.NoError(t, e.Toggle("o2"))

	err := e.Toggle("o3")
	assert.ErrorIs(t, err, ErrSelectionLimit)
	assert.Equal(t, []string{"o1", "o2"}, e.Selected(), "failed toggle must not change the selection")

	// Free a slot, then the rejected option fits.
	require.NoError(t, e.Toggle("o2"))
	require.NoError(t, e.Toggle("o3"))
	assert.Equal(t, []string{"o1", "o3"}, e.Selected())
}

func TestMultiSelectZeroLimitMeansUnbounded(t *testing.T) {
	e := NewMultiSelectEngine(multiSelectQuestion(0), MultiSelectAnswer{})
	for _, id := range []string{"o1", "o2", "o3", "o4"} {
		require.NoError(t, e.Toggle(id))
	}
	assert.Len(t, e.Selected(), 4)
}

func TestMultiSelectUnknownOptionIgnored(t *testing.T) {
	e := NewMultiSelectEngine(multiSelectQuestion(2), MultiSelectAnswer{})
	require.NoError(t, e.Toggle("nope"))
	assert.Empty(t, e.Selected())
}

func TestMultiSelectRestoreFromSavedAnswer(t *testing.T) {
	saved := MultiSelectAnswer{Selected: []string{"o2", "o9", "o2", "o4", "o1"}}
	e := NewMultiSelectEngine(multiSelectQuestion(2), saved)

	// Unknown and duplicate ids dropped, then capped at the limit.
	assert.Equal(t, []string{"o2", "o4"}, e.Selected())
}

func TestMultiSelectEmptySelectionIsValidAnswer(t *testing.T) {
	q := multiSelectQuestion(2)
	e := NewMultiSelectEngine(q, MultiSelectAnswer{})

	a := e.Answer()
	assert.True(t, a.Empty())
	assert.True(t, IsComplete(q, a))
}
