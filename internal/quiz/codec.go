package quiz

import (
	"fmt"
	"strings"
)

// Wire format delimiters. The entry separator joins list entries, the pair
// separator joins the two halves of a matching or group entry. Both are kept
// out of identifier alphabets by the backend.
const (
	EntrySeparator = ";"
	PairSeparator  = "->"
)

// Encode serializes a structured answer into its flat wire string. An empty
// answer encodes to the empty string for every variant.
func Encode(a Answer) string {
	switch v := a.(type) {
	case ChoiceAnswer:
		return v.OptionID
	case MatchingAnswer:
		entries := make([]string, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			entries = append(entries, p.LeftID+PairSeparator+p.RightID)
		}
		return strings.Join(entries, EntrySeparator)
	case GroupAnswer:
		entries := make([]string, 0, len(v.Selections))
		for _, s := range v.Selections {
			entries = append(entries, s.GroupID+PairSeparator+s.SubItemID)
		}
		return strings.Join(entries, EntrySeparator)
	case RankAnswer:
		return strings.Join(v.Order, EntrySeparator)
	case MultiSelectAnswer:
		return strings.Join(v.Selected, EntrySeparator)
	}
	return ""
}

// Decode reconstructs the structured answer for q from its wire string. An
// empty string yields the typed "no answer yet" value. Partial matching and
// group strings decode as-is so in-progress state can be restored; a rank
// string whose id set does not match the question's items falls back to the
// canonical order. Malformed entries are dropped, never fatal: reconstructing
// a view from stored state must not fail on bad data.
func Decode(q *Question, raw string) (Answer, error) {
	switch q.Type {
	case TypeText, TypeTextImage:
		return ChoiceAnswer{OptionID: raw}, nil
	case TypeMatching:
		a := MatchingAnswer{}
		for _, entry := range splitEntries(raw) {
			left, right, ok := strings.Cut(entry, PairSeparator)
			if !ok || left == "" || right == "" {
				continue
			}
			a.Pairs = append(a.Pairs, Pair{LeftID: left, RightID: right})
		}
		return a, nil
	case TypeGroup:
		a := GroupAnswer{}
		for _, entry := range splitEntries(raw) {
			group, sub, ok := strings.Cut(entry, PairSeparator)
			if !ok || group == "" || sub == "" {
				continue
			}
			a.Selections = append(a.Selections, GroupSelection{GroupID: group, SubItemID: sub})
		}
		return a, nil
	case TypeRank:
		order := splitEntries(raw)
		if len(order) == 0 {
			return RankAnswer{}, nil
		}
		if !sameIDSet(order, q.Items) {
			// Corrupted or stale ordering: render the canonical list instead
			// of a partial one.
			canonical := make([]string, len(q.Items))
			for i, it := range q.Items {
				canonical[i] = it.ID
			}
			return RankAnswer{Order: canonical}, nil
		}
		return RankAnswer{Order: order}, nil
	case TypeMultiSelect:
		return MultiSelectAnswer{Selected: splitEntries(raw)}, nil
	}
	return nil, fmt.Errorf("decode: unknown question type %q", q.Type)
}

// ParseRankOrder splits a rank wire string and reports whether it is an exact
// permutation of q's items. Unlike Decode it never falls back to the canonical
// order, so callers that grade submissions can reject garbage, duplicate, or
// partial id lists instead of silently accepting them.
func ParseRankOrder(q *Question, raw string) ([]string, bool) {
	order := splitEntries(raw)
	if !sameIDSet(order, q.Items) {
		return nil, false
	}
	return order, true
}

func splitEntries(raw string) []string {
	if raw == "" {
		return nil
	}
	var entries []string
	for _, e := range strings.Split(raw, EntrySeparator) {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func sameIDSet(order []string, items []Item) bool {
	if len(order) != len(items) {
		return false
	}
	want := make(map[string]bool, len(items))
	for _, it := range items {
		want[it.ID] = true
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if !want[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
