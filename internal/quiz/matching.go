package quiz

// MatchingEngine drives the left/right pairing interaction of a matching
// question. The match set is a one-to-one partial bijection: no left id and
// no right id ever appears in more than one pair.
//
// Click semantics, identical on both sides: clicking an item that is already
// part of a match removes that match (and clears any pending left selection).
// Clicking the pending left item again deselects it. A right click with no
// pending left selection is a no-op.
type MatchingEngine struct {
	question     *Question
	selectedLeft string
	pairs        []Pair
}

// NewMatchingEngine builds an engine for q, restoring any previously saved
// answer so revisiting a question shows its pairs again.
func NewMatchingEngine(q *Question, saved MatchingAnswer) *MatchingEngine {
	e := &MatchingEngine{question: q}
	for _, p := range saved.Pairs {
		if e.findByLeft(p.LeftID) == -1 && e.findByRight(p.RightID) == -1 {
			e.pairs = append(e.pairs, p)
		}
	}
	return e
}

// SelectLeft handles a click on a left-side item.
func (e *MatchingEngine) SelectLeft(id string) {
	if i := e.findByLeft(id); i != -1 {
		e.removePair(i)
		e.selectedLeft = ""
		return
	}
	if e.selectedLeft == id {
		e.selectedLeft = ""
		return
	}
	e.selectedLeft = id
}

// SelectRight handles a click on a right-side item.
func (e *MatchingEngine) SelectRight(id string) {
	if i := e.findByRight(id); i != -1 {
		e.removePair(i)
		e.selectedLeft = ""
		return
	}
	if e.selectedLeft == "" {
		return
	}
	// The relation is one-to-one, so pairing evicts whatever the pending left
	// item was previously matched to. The right item cannot be matched here:
	// the guard above already handled that case.
	if i := e.findByLeft(e.selectedLeft); i != -1 {
		e.removePair(i)
	}
	e.pairs = append(e.pairs, Pair{LeftID: e.selectedLeft, RightID: id})
	e.selectedLeft = ""
}

// SelectedLeft returns the pending left selection, or "" if none.
func (e *MatchingEngine) SelectedLeft() string { return e.selectedLeft }

// Pairs returns the current matches in creation order.
func (e *MatchingEngine) Pairs() []Pair {
	out := make([]Pair, len(e.pairs))
	copy(out, e.pairs)
	return out
}

// Complete reports whether every left item is matched.
func (e *MatchingEngine) Complete() bool {
	return len(e.pairs) == len(e.question.Left)
}

// Answer returns the aggregated answer and whether it is eligible for
// emission. Partial match sets stay internal: they render as connecting
// lines but are not recorded as the question's response.
func (e *MatchingEngine) Answer() (MatchingAnswer, bool) {
	if !e.Complete() {
		return MatchingAnswer{}, false
	}
	return MatchingAnswer{Pairs: e.Pairs()}, true
}

// ColorIndex returns a stable per-pair color slot derived from the left
// item's position in its group, so a pair keeps its visual identity across
// re-renders. Returns -1 for a pair whose left id is not in the question.
func (e *MatchingEngine) ColorIndex(p Pair) int {
	for i, it := range e.question.Left {
		if it.ID == p.LeftID {
			return i
		}
	}
	return -1
}

func (e *MatchingEngine) findByLeft(id string) int {
	for i, p := range e.pairs {
		if p.LeftID == id {
			return i
		}
	}
	return -1
}

func (e *MatchingEngine) findByRight(id string) int {
	for i, p := range e.pairs {
		if p.RightID == id {
			return i
		}
	}
	return -1
}

func (e *MatchingEngine) removePair(i int) {
	e.pairs = append(e.pairs[:i], e.pairs[i+1:]...)
}
