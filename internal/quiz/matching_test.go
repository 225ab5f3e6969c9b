package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOneToOne(t *testing.T, pairs []Pair) {
	t.Helper()
	lefts := make(map[string]bool)
	rights := make(map[string]bool)
	for _, p := range pairs {
		assert.False(t, lefts[p.LeftID], "left %s matched twice", p.LeftID)
		assert.False(t, rights[p.RightID], "right %s matched twice", p.RightID)
		lefts[p.LeftID] = true
		rights[p.RightID] = true
	}
}

func TestMatchingFullFlow(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})

	e.SelectLeft("l1")
	assert.Equal(t, "l1", e.SelectedLeft())
	e.SelectRight("r2")
	assert.Equal(t, "", e.SelectedLeft())
	assert.Equal(t, []Pair{{LeftID: "l1", RightID: "r2"}}, e.Pairs())

	_, emitted := e.Answer()
	assert.False(t, emitted, "partial match set must not emit")

	e.SelectLeft("l2")
	e.SelectRight("r1")
	e.SelectLeft("l3")
	e.SelectRight("r3")

	assert.True(t, e.Complete())
	a, emitted := e.Answer()
	require.True(t, emitted)
	assert.Len(t, a.Pairs, 3)
	assertOneToOne(t, a.Pairs)
}

func TestMatchingRepairEvictsBothSides(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})

	e.SelectLeft("l1")
	e.SelectRight("r1")
	e.SelectLeft("l2")
	e.SelectRight("r2")

	// l3 takes r1 away from l1; l1 ends up unmatched.
	e.SelectLeft("l3")
	e.SelectRight("r1")

	pairs := e.Pairs()
	assertOneToOne(t, pairs)
	assert.Contains(t, pairs, Pair{LeftID: "l3", RightID: "r1"})
	assert.Contains(t, pairs, Pair{LeftID: "l2", RightID: "r2"})
	assert.Len(t, pairs, 2)
}

func TestMatchingClickMatchedItemUnmatches(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})
	e.SelectLeft("l1")
	e.SelectRight("r1")

	t.Run("via left side", func(t *testing.T) {
		e.SelectLeft("l1")
		assert.Empty(t, e.Pairs())
		assert.Equal(t, "", e.SelectedLeft())
	})

	e.SelectLeft("l1")
	e.SelectRight("r1")

	t.Run("via right side", func(t *testing.T) {
		e.SelectRight("r1")
		assert.Empty(t, e.Pairs())
	})
}

func TestMatchingUnmatchAfterCompleteBlocksEmission(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})

	e.SelectLeft("l1")
	e.SelectRight("r1")
	e.SelectLeft("l2")
	e.SelectRight("r2")
	e.SelectLeft("l3")
	e.SelectRight("r3")
	_, emitted := e.Answer()
	require.True(t, emitted)

	// Removing a single pair drops the set back to partial.
	e.SelectRight("r2")
	assert.False(t, e.Complete())
	_, emitted = e.Answer()
	assert.False(t, emitted, "answer must not emit after a pair is removed")

	e.SelectLeft("l2")
	e.SelectRight("r2")
	a, emitted := e.Answer()
	require.True(t, emitted)
	assert.Len(t, a.Pairs, 3)
	assertOneToOne(t, a.Pairs)
}

func TestMatchingEdgeClicks(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})

	// Right click with nothing pending does nothing.
	e.SelectRight("r1")
	assert.Empty(t, e.Pairs())
	assert.Equal(t, "", e.SelectedLeft())

	// Clicking the pending left item again deselects it.
	e.SelectLeft("l1")
	e.SelectLeft("l1")
	assert.Equal(t, "", e.SelectedLeft())

	// Switching the pending selection does not create a pair.
	e.SelectLeft("l1")
	e.SelectLeft("l2")
	assert.Equal(t, "l2", e.SelectedLeft())
	assert.Empty(t, e.Pairs())
}

func TestMatchingRestoreFromSavedAnswer(t *testing.T) {
	saved := MatchingAnswer{Pairs: []Pair{
		{LeftID: "l1", RightID: "r3"},
		{LeftID: "l2", RightID: "r3"}, // conflicts with the first, dropped
		{LeftID: "l3", RightID: "r1"},
	}}
	e := NewMatchingEngine(matchingQuestion(), saved)

	pairs := e.Pairs()
	assertOneToOne(t, pairs)
	assert.Equal(t, []Pair{{LeftID: "l1", RightID: "r3"}, {LeftID: "l3", RightID: "r1"}}, pairs)
}

func TestMatchingColorIndexStable(t *testing.T) {
	e := NewMatchingEngine(matchingQuestion(), MatchingAnswer{})
	e.SelectLeft("l2")
	e.SelectRight("r1")

	p := e.Pairs()[0]
	assert.Equal(t, 1, e.ColorIndex(p))

	// Re-pairing l2 elsewhere keeps its color slot.
	e.SelectRight("r1") // unmatch
	e.SelectLeft("l2")
	e.SelectRight("r3")
	assert.Equal(t, 1, e.ColorIndex(e.Pairs()[0]))

	assert.Equal(t, -1, e.ColorIndex(Pair{LeftID: "nope", RightID: "r1"}))
}
