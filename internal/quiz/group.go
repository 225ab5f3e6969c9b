package quiz

// GroupEngine tracks one selection per sub-group of a group question. The
// aggregated answer is emitted only once every group has a selection; until
// then whatever was last recorded for the question stands.
type GroupEngine struct {
	question   *Question
	selections []GroupSelection
}

// NewGroupEngine builds an engine for q, restoring saved selections so that
// navigating back to an answered group question preserves progress.
func NewGroupEngine(q *Question, saved GroupAnswer) *GroupEngine {
	e := &GroupEngine{question: q}
	for _, s := range saved.Selections {
		if e.question.group(s.GroupID) != nil {
			e.choose(s.GroupID, s.SubItemID)
		}
	}
	return e
}

// Choose records sub-item subID as the selection for group groupID,
// overwriting any prior selection for that group. Unknown groups are ignored.
func (e *GroupEngine) Choose(groupID, subID string) {
	if e.question.group(groupID) == nil {
		return
	}
	e.choose(groupID, subID)
}

func (e *GroupEngine) choose(groupID, subID string) {
	for i, s := range e.selections {
		if s.GroupID == groupID {
			e.selections[i].SubItemID = subID
			return
		}
	}
	e.selections = append(e.selections, GroupSelection{GroupID: groupID, SubItemID: subID})
}

// Selection returns the current choice for a group, if any.
func (e *GroupEngine) Selection(groupID string) (string, bool) {
	for _, s := range e.selections {
		if s.GroupID == groupID {
			return s.SubItemID, true
		}
	}
	return "", false
}

// Complete reports whether every group has a selection.
func (e *GroupEngine) Complete() bool {
	return len(e.selections) == len(e.question.Groups)
}

// Answer returns the aggregated answer and whether all groups are chosen.
func (e *GroupEngine) Answer() (GroupAnswer, bool) {
	if !e.Complete() {
		return GroupAnswer{}, false
	}
	out := make([]GroupSelection, len(e.selections))
	copy(out, e.selections)
	return GroupAnswer{Selections: out}, true
}

func (q *Question) group(id string) *ItemGroup {
	for i := range q.Groups {
		if q.Groups[i].ID == id {
			return &q.Groups[i]
		}
	}
	return nil
}
