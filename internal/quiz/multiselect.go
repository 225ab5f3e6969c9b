package quiz

import "errors"

// ErrSelectionLimit is returned when toggling on an option would exceed the
// question's selection limit. The selection is left unchanged.
var ErrSelectionLimit = errors.New("selection limit reached")

// MultiSelectEngine is a bounded toggle set over a question's options.
type MultiSelectEngine struct {
	question *Question
	selected []string
}

// NewMultiSelectEngine builds an engine for q, restoring a saved selection.
// Restored ids beyond the limit or not present in the options are dropped.
func NewMultiSelectEngine(q *Question, saved MultiSelectAnswer) *MultiSelectEngine {
	e := &MultiSelectEngine{question: q}
	for _, id := range saved.Selected {
		if e.hasOption(id) && !e.isSelected(id) && len(e.selected) < q.Limit() {
			e.selected = append(e.selected, id)
		}
	}
	return e
}

// Toggle flips the selection state of an option. Removing always succeeds;
// adding fails with ErrSelectionLimit once the limit is reached, leaving the
// selection untouched so the caller can surface a notice.
func (e *MultiSelectEngine) Toggle(id string) error {
	if !e.hasOption(id) {
		return nil
	}
	for i, sel := range e.selected {
		if sel == id {
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			return nil
		}
	}
	if len(e.selected) >= e.question.Limit() {
		return ErrSelectionLimit
	}
	e.selected = append(e.selected, id)
	return nil
}

// Selected returns the selected ids in selection order.
func (e *MultiSelectEngine) Selected() []string {
	out := make([]string, len(e.selected))
	copy(out, e.selected)
	return out
}

// Answer returns the current selection as an answer value. Multi-select has
// no completion gate beyond the limit, so the current state always stands.
func (e *MultiSelectEngine) Answer() MultiSelectAnswer {
	return MultiSelectAnswer{Selected: e.Selected()}
}

func (e *MultiSelectEngine) isSelected(id string) bool {
	for _, sel := range e.selected {
		if sel == id {
			return true
		}
	}
	return false
}

func (e *MultiSelectEngine) hasOption(id string) bool {
	for _, o := range e.question.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
