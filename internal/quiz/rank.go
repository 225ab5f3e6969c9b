package quiz

import "strconv"

// RankLabelMode selects how a rank row is labelled.
type RankLabelMode int

const (
	// LabelPosition labels a row by its current 1-based position.
	LabelPosition RankLabelMode = iota
	// LabelOriginalLetter labels a row by the item's letter in the question's
	// original option enumeration, regardless of where it has been dragged.
	LabelOriginalLetter
)

// RankEngine drives a drag-to-reorder list. Dragging reorders live: as the
// dragged row passes over another row the list is rearranged immediately, not
// previewed. The answer (the id sequence in final order) is emitted when the
// drag ends.
type RankEngine struct {
	question  *Question
	order     []Item
	dragged   int
	labelMode RankLabelMode
}

// NewRankEngine builds an engine for q in the given label mode, restoring a
// saved ordering. A saved order whose id set does not match the question's
// items is discarded in favor of the canonical order.
func NewRankEngine(q *Question, saved RankAnswer, mode RankLabelMode) *RankEngine {
	e := &RankEngine{question: q, dragged: -1, labelMode: mode}
	e.order = restoreOrder(q.Items, saved.Order)
	return e
}

// BeginDrag records the row being picked up. Out-of-range indexes are ignored.
func (e *RankEngine) BeginDrag(index int) {
	if index < 0 || index >= len(e.order) {
		return
	}
	e.dragged = index
}

// DragOver moves the dragged row to target, shifting the rows in between.
// No-op when no drag is in progress or target equals the dragged index.
func (e *RankEngine) DragOver(target int) {
	if e.dragged == -1 || target == e.dragged || target < 0 || target >= len(e.order) {
		return
	}
	item := e.order[e.dragged]
	e.order = append(e.order[:e.dragged], e.order[e.dragged+1:]...)
	rest := append([]Item{}, e.order[target:]...)
	e.order = append(append(e.order[:target], item), rest...)
	e.dragged = target
}

// EndDrag finishes the drag and returns the emitted answer. Without a drag in
// progress it returns the current order without claiming an emission.
func (e *RankEngine) EndDrag() (RankAnswer, bool) {
	emitted := e.dragged != -1
	e.dragged = -1
	return RankAnswer{Order: e.ids()}, emitted
}

// Order returns the items in their current arrangement.
func (e *RankEngine) Order() []Item {
	out := make([]Item, len(e.order))
	copy(out, e.order)
	return out
}

// Dragging returns the index of the row being dragged, or -1.
func (e *RankEngine) Dragging() int { return e.dragged }

// Label returns the display label for the row currently at index.
func (e *RankEngine) Label(index int) string {
	if index < 0 || index >= len(e.order) {
		return ""
	}
	if e.labelMode == LabelOriginalLetter {
		for i, it := range e.question.Items {
			if it.ID == e.order[index].ID {
				return "(" + string(rune('A'+i)) + ")"
			}
		}
		return ""
	}
	return strconv.Itoa(index + 1)
}

func (e *RankEngine) ids() []string {
	ids := make([]string, len(e.order))
	for i, it := range e.order {
		ids[i] = it.ID
	}
	return ids
}

func restoreOrder(items []Item, saved []string) []Item {
	canonical := make([]Item, len(items))
	copy(canonical, items)
	if len(saved) == 0 || !sameIDSet(saved, items) {
		return canonical
	}
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]Item, 0, len(saved))
	for _, id := range saved {
		out = append(out, byID[id])
	}
	return out
}
