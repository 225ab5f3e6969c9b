package quiz

import "fmt"

type QuestionType string

const (
	TypeText        QuestionType = "text"
	TypeTextImage   QuestionType = "text-image"
	TypeMatching    QuestionType = "matching"
	TypeGroup       QuestionType = "group"
	TypeRank        QuestionType = "rank"
	TypeMultiSelect QuestionType = "multi-select"
)

// Valid reports whether t is one of the supported question variants.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeText, TypeTextImage, TypeMatching, TypeGroup, TypeRank, TypeMultiSelect:
		return true
	}
	return false
}

// Option is a selectable choice for text, text-image and multi-select questions.
type Option struct {
	ID    string `json:"_id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Item is a single entry in a matching side or a rank list.
type Item struct {
	ID    string `json:"_id"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// ItemGroup is one named sub-group of a group question. Exactly one of its
// items can be selected at a time.
type ItemGroup struct {
	ID    string `json:"groupId"`
	Name  string `json:"groupName"`
	Items []Item `json:"items"`
}

// Question is the tagged union over all supported question shapes. The Type
// discriminant decides which payload fields are meaningful:
//
//	text, text-image    Options
//	matching            Left, Right
//	group               Groups
//	rank                Items
//	multi-select        Options, SelectLimit
//
// Every consumer dispatches on Type exhaustively; an unknown type is an error,
// never a silent default.
type Question struct {
	ID           string       `json:"_id"`
	Type         QuestionType `json:"type"`
	Prompt       string       `json:"question"`
	Description  string       `json:"description,omitempty"`
	Instruction  string       `json:"optionInstruction,omitempty"`
	Media        string       `json:"image,omitempty"`
	DisplayOrder int          `json:"displayOrder"`

	Options     []Option    `json:"options,omitempty"`
	Left        []Item      `json:"leftSide,omitempty"`
	Right       []Item      `json:"rightSide,omitempty"`
	Groups      []ItemGroup `json:"itemGroups,omitempty"`
	Items       []Item      `json:"items,omitempty"`
	SelectLimit int         `json:"selectLimit,omitempty"`
}

// Validate checks structural invariants: a known type, a non-empty payload for
// that type, and identifier uniqueness within the question.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}

	seen := make(map[string]bool)
	unique := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("question %s: %s with empty id", q.ID, kind)
		}
		if seen[id] {
			return fmt.Errorf("question %s: duplicate %s id %q", q.ID, kind, id)
		}
		seen[id] = true
		return nil
	}

	switch q.Type {
	case TypeText, TypeTextImage:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: %s question without options", q.ID, q.Type)
		}
		for _, o := range q.Options {
			if err := unique("option", o.ID); err != nil {
				return err
			}
		}
	case TypeMatching:
		if len(q.Left) == 0 || len(q.Right) == 0 {
			return fmt.Errorf("question %s: matching question needs both sides", q.ID)
		}
		for _, it := range q.Left {
			if err := unique("left item", it.ID); err != nil {
				return err
			}
		}
		for _, it := range q.Right {
			if err := unique("right item", it.ID); err != nil {
				return err
			}
		}
	case TypeGroup:
		if len(q.Groups) == 0 {
			return fmt.Errorf("question %s: group question without groups", q.ID)
		}
		for _, g := range q.Groups {
			if err := unique("group", g.ID); err != nil {
				return err
			}
			for _, it := range g.Items {
				if err := unique("group item", it.ID); err != nil {
					return err
				}
			}
		}
	case TypeRank:
		if len(q.Items) == 0 {
			return fmt.Errorf("question %s: rank question without items", q.ID)
		}
		for _, it := range q.Items {
			if err := unique("rank item", it.ID); err != nil {
				return err
			}
		}
	case TypeMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: multi-select question without options", q.ID)
		}
		if q.SelectLimit < 0 {
			return fmt.Errorf("question %s: negative selection limit", q.ID)
		}
		for _, o := range q.Options {
			if err := unique("option", o.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Limit returns the effective multi-select limit. A zero limit means
// "unbounded", which in practice equals the option count.
func (q *Question) Limit() int {
	if q.SelectLimit <= 0 {
		return len(q.Options)
	}
	return q.SelectLimit
}
