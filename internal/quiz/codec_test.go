package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchingQuestion() *Question {
	return &Question{
		ID:   "q-match",
		Type: TypeMatching,
		Left: []Item{
			{ID: "l1", Text: "Designing"},
			{ID: "l2", Text: "Building"},
			{ID: "l3", Text: "Testing"},
		},
		Right: []Item{
			{ID: "r1", Text: "Architect"},
			{ID: "r2", Text: "Engineer"},
			{ID: "r3", Text: "Analyst"},
		},
	}
}

func groupQuestion() *Question {
	return &Question{
		ID:   "q-group",
		Type: TypeGroup,
		Groups: []ItemGroup{
			{ID: "g1", Name: "Indoors", Items: []Item{{ID: "g1a"}, {ID: "g1b"}}},
			{ID: "g2", Name: "Outdoors", Items: []Item{{ID: "g2a"}, {ID: "g2b"}}},
		},
	}
}

func rankQuestion() *Question {
	return &Question{
		ID:   "q-rank",
		Type: TypeRank,
		Items: []Item{
			{ID: "a", Text: "Creativity"},
			{ID: "b", Text: "Stability"},
			{ID: "c", Text: "Income"},
		},
	}
}

func multiSelectQuestion(limit int) *Question {
	return &Question{
		ID:          "q-multi",
		Type:        TypeMultiSelect,
		SelectLimit: limit,
		Options: []Option{
			{ID: "o1"}, {ID: "o2"}, {ID: "o3"}, {ID: "o4"},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		question *Question
		answer   Answer
		wire     string
	}{
		{
			name:     "text choice",
			question: &Question{ID: "q1", Type: TypeText, Options: []Option{{ID: "o1"}}},
			answer:   ChoiceAnswer{OptionID: "o1"},
			wire:     "o1",
		},
		{
			name:     "text image choice",
			question: &Question{ID: "q2", Type: TypeTextImage, Options: []Option{{ID: "o2"}}},
			answer:   ChoiceAnswer{OptionID: "o2"},
			wire:     "o2",
		},
		{
			name:     "matching pairs",
			question: matchingQuestion(),
			answer: MatchingAnswer{Pairs: []Pair{
				{LeftID: "l1", RightID: "r2"},
				{LeftID: "l2", RightID: "r1"},
				{LeftID: "l3", RightID: "r3"},
			}},
			wire: "l1->r2;l2->r1;l3->r3",
		},
		{
			name:     "group selections",
			question: groupQuestion(),
			answer: GroupAnswer{Selections: []GroupSelection{
				{GroupID: "g1", SubItemID: "g1b"},
				{GroupID: "g2", SubItemID: "g2a"},
			}},
			wire: "g1->g1b;g2->g2a",
		},
		{
			name:     "rank order",
			question: rankQuestion(),
			answer:   RankAnswer{Order: []string{"b", "c", "a"}},
			wire:     "b;c;a",
		},
		{
			name:     "multi select",
			question: multiSelectQuestion(3),
			answer:   MultiSelectAnswer{Selected: []string{"o3", "o1"}},
			wire:     "o3;o1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wire, Encode(tc.answer))

			decoded, err := Decode(tc.question, tc.wire)
			require.NoError(t, err)
			assert.Equal(t, tc.answer, decoded)
		})
	}
}

func TestCodecEmptyString(t *testing.T) {
	questions := []*Question{
		{ID: "q1", Type: TypeText, Options: []Option{{ID: "o1"}}},
		matchingQuestion(),
		groupQuestion(),
		rankQuestion(),
		multiSelectQuestion(2),
	}

	for _, q := range questions {
		a, err := Decode(q, "")
		require.NoError(t, err, "type %s", q.Type)
		assert.True(t, a.Empty(), "type %s", q.Type)
		assert.Equal(t, "", Encode(a), "type %s", q.Type)
	}
}

func TestDecodePartialMatching(t *testing.T) {
	a, err := Decode(matchingQuestion(), "l1->r1;l3->r2")
	require.NoError(t, err)

	ma, ok := a.(MatchingAnswer)
	require.True(t, ok)
	assert.Equal(t, []Pair{{LeftID: "l1", RightID: "r1"}, {LeftID: "l3", RightID: "r2"}}, ma.Pairs)
	assert.False(t, IsComplete(matchingQuestion(), ma))
}

func TestDecodeMalformedEntriesDropped(t *testing.T) {
	a, err := Decode(matchingQuestion(), "l1->r1;garbage;->r2;l2->;;l3->r3")
	require.NoError(t, err)

	ma := a.(MatchingAnswer)
	assert.Equal(t, []Pair{{LeftID: "l1", RightID: "r1"}, {LeftID: "l3", RightID: "r3"}}, ma.Pairs)
}

func TestDecodeRankFallsBackToCanonicalOrder(t *testing.T) {
	q := rankQuestion()

	cases := []struct {
		name string
		wire string
	}{
		{"unknown id", "b;c;x"},
		{"missing id", "b;c"},
		{"duplicate id", "b;b;c"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Decode(q, tc.wire)
			require.NoError(t, err)
			assert.Equal(t, RankAnswer{Order: []string{"a", "b", "c"}}, a)
		})
	}
}

func TestParseRankOrderRejectsNonPermutations(t *testing.T) {
	q := rankQuestion()

	order, ok := ParseRankOrder(q, "b;c;a")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "a"}, order)

	for _, wire := range []string{"", "b;c;x", "b;c", "b;b;c", "x;y;z"} {
		_, ok := ParseRankOrder(q, wire)
		assert.False(t, ok, "wire %q must not parse as a full ranking", wire)
	}
}

func TestDecodeUnknownTypeFails(t *testing.T) {
	_, err := Decode(&Question{ID: "q", Type: QuestionType("essay")}, "anything")
	assert.Error(t, err)
}
