package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionValidate(t *testing.T) {
	cases := []struct {
		name    string
		q       Question
		wantErr string
	}{
		{
			name: "valid text",
			q:    Question{ID: "q", Type: TypeText, Options: []Option{{ID: "o1"}, {ID: "o2"}}},
		},
		{
			name:    "missing id",
			q:       Question{Type: TypeText, Options: []Option{{ID: "o1"}}},
			wantErr: "no id",
		},
		{
			name:    "unknown type",
			q:       Question{ID: "q", Type: "essay"},
			wantErr: "unknown type",
		},
		{
			name:    "text without options",
			q:       Question{ID: "q", Type: TypeText},
			wantErr: "without options",
		},
		{
			name:    "duplicate option id",
			q:       Question{ID: "q", Type: TypeMultiSelect, Options: []Option{{ID: "o1"}, {ID: "o1"}}},
			wantErr: "duplicate",
		},
		{
			name:    "matching with one side empty",
			q:       Question{ID: "q", Type: TypeMatching, Left: []Item{{ID: "l1"}}},
			wantErr: "both sides",
		},
		{
			name: "duplicate id across matching sides",
			q: Question{ID: "q", Type: TypeMatching,
				Left: []Item{{ID: "x"}}, Right: []Item{{ID: "x"}}},
			wantErr: "duplicate",
		},
		{
			name: "duplicate item across groups",
			q: Question{ID: "q", Type: TypeGroup, Groups: []ItemGroup{
				{ID: "g1", Items: []Item{{ID: "i1"}}},
				{ID: "g2", Items: []Item{{ID: "i1"}}},
			}},
			wantErr: "duplicate",
		},
		{
			name:    "negative select limit",
			q:       Question{ID: "q", Type: TypeMultiSelect, Options: []Option{{ID: "o1"}}, SelectLimit: -1},
			wantErr: "negative",
		},
		{
			name: "valid rank",
			q:    Question{ID: "q", Type: TypeRank, Items: []Item{{ID: "a"}, {ID: "b"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestQuestionLimit(t *testing.T) {
	q := multiSelectQuestion(2)
	assert.Equal(t, 2, q.Limit())

	q = multiSelectQuestion(0)
	assert.Equal(t, len(q.Options), q.Limit())
}
