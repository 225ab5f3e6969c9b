package quiz

// Answer is the closed set of structured answer values, one variant per
// question shape. String (de)serialization lives in the codec; everything
// else works with these types directly.
type Answer interface {
	answerType() QuestionType

	// Empty reports whether the answer carries no user input at all.
	Empty() bool
}

// ChoiceAnswer is the answer to a text or text-image question.
type ChoiceAnswer struct {
	OptionID string
}

// Pair is one left-to-right match.
type Pair struct {
	LeftID  string
	RightID string
}

// MatchingAnswer holds matches in creation order. Order is preserved for a
// stable wire form but carries no meaning.
type MatchingAnswer struct {
	Pairs []Pair
}

// GroupSelection records the chosen sub-item for one group.
type GroupSelection struct {
	GroupID   string
	SubItemID string
}

// GroupAnswer holds per-group selections in the order they were made.
type GroupAnswer struct {
	Selections []GroupSelection
}

// RankAnswer is the final ordering; position in Order is the rank.
type RankAnswer struct {
	Order []string
}

// MultiSelectAnswer holds selected option ids in selection order; semantically
// a set.
type MultiSelectAnswer struct {
	Selected []string
}

func (ChoiceAnswer) answerType() QuestionType      { return TypeText }
func (MatchingAnswer) answerType() QuestionType    { return TypeMatching }
func (GroupAnswer) answerType() QuestionType       { return TypeGroup }
func (RankAnswer) answerType() QuestionType        { return TypeRank }
func (MultiSelectAnswer) answerType() QuestionType { return TypeMultiSelect }

func (a ChoiceAnswer) Empty() bool      { return a.OptionID == "" }
func (a MatchingAnswer) Empty() bool    { return len(a.Pairs) == 0 }
func (a GroupAnswer) Empty() bool       { return len(a.Selections) == 0 }
func (a RankAnswer) Empty() bool        { return len(a.Order) == 0 }
func (a MultiSelectAnswer) Empty() bool { return len(a.Selected) == 0 }

// Selection returns the chosen sub-item for a group, if any.
func (a GroupAnswer) Selection(groupID string) (string, bool) {
	for _, s := range a.Selections {
		if s.GroupID == groupID {
			return s.SubItemID, true
		}
	}
	return "", false
}

// Has reports whether the option is part of the multi-select answer.
func (a MultiSelectAnswer) Has(optionID string) bool {
	for _, id := range a.Selected {
		if id == optionID {
			return true
		}
	}
	return false
}

// IsComplete reports whether the answer satisfies the question's completion
// predicate, i.e. whether it is eligible to be recorded as the question's
// response. Partial matching/group answers restore UI state but do not count.
func IsComplete(q *Question, a Answer) bool {
	switch q.Type {
	case TypeText, TypeTextImage:
		ca, ok := a.(ChoiceAnswer)
		return ok && ca.OptionID != ""
	case TypeMatching:
		ma, ok := a.(MatchingAnswer)
		return ok && len(ma.Pairs) == len(q.Left)
	case TypeGroup:
		ga, ok := a.(GroupAnswer)
		return ok && len(ga.Selections) == len(q.Groups)
	case TypeRank:
		ra, ok := a.(RankAnswer)
		return ok && len(ra.Order) == len(q.Items)
	case TypeMultiSelect:
		// Any selection, including none, is an acceptable response; only the
		// limit bounds it.
		_, ok := a.(MultiSelectAnswer)
		return ok
	}
	return false
}
