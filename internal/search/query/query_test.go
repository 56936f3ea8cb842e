package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Query
	}{
		{
			name:     "empty input",
			raw:      "",
			expected: Query{},
		},
		{
			name:     "whitespace only",
			raw:      "   \t  ",
			expected: Query{},
		},
		{
			name:     "single bare term",
			raw:      "jazz",
			expected: Query{Required: []string{"jazz"}},
		},
		{
			name:     "multiple bare terms",
			raw:      "true crime stories",
			expected: Query{Required: []string{"true", "crime", "stories"}},
		},
		{
			name:     "quoted phrase",
			raw:      `"true crime"`,
			expected: Query{ExactPhrases: []string{"true crime"}},
		},
		{
			name:     "phrase mixed with bare terms",
			raw:      `daily "morning news" brief`,
			expected: Query{ExactPhrases: []string{"morning news"}, Required: []string{"daily", "brief"}},
		},
		{
			name:     "unterminated quote captures the rest",
			raw:      `jazz "smooth evening`,
			expected: Query{ExactPhrases: []string{"smooth evening"}, Required: []string{"jazz"}},
		},
		{
			name:     "empty quotes ignored",
			raw:      `jazz ""`,
			expected: Query{Required: []string{"jazz"}},
		},
		{
			name:     "excluded term",
			raw:      "historie -sport",
			expected: Query{Exclude: []string{"sport"}, Required: []string{"historie"}},
		},
		{
			name:     "bare dash ignored",
			raw:      "jazz -",
			expected: Query{Required: []string{"jazz"}},
		},
		{
			name:     "simple OR group",
			raw:      "jazz OR blues",
			expected: Query{OrGroups: [][]string{{"jazz", "blues"}}},
		},
		{
			name:     "chained OR group",
			raw:      "jazz OR blues OR soul",
			expected: Query{OrGroups: [][]string{{"jazz", "blues", "soul"}}},
		},
		{
			name:     "OR group with trailing required term",
			raw:      "jazz OR blues radio",
			expected: Query{OrGroups: [][]string{{"jazz", "blues"}}, Required: []string{"radio"}},
		},
		{
			name:     "lowercase or is a bare term",
			raw:      "jazz or blues",
			expected: Query{Required: []string{"jazz", "or", "blues"}},
		},
		{
			name:     "leading OR is noise",
			raw:      "OR jazz",
			expected: Query{Required: []string{"jazz"}},
		},
		{
			name:     "trailing OR is noise",
			raw:      "jazz OR",
			expected: Query{Required: []string{"jazz"}},
		},
		{
			name: "everything combined",
			raw:  `"deep dive" science OR history -politics weekly`,
			expected: Query{
				ExactPhrases: []string{"deep dive"},
				Exclude:      []string{"politics"},
				OrGroups:     [][]string{{"science", "history"}},
				Required:     []string{"weekly"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.raw))
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Parse("").IsEmpty())
	assert.True(t, Parse("  ").IsEmpty())
	assert.False(t, Parse("jazz").IsEmpty())
	assert.False(t, Parse(`""  -x`).IsEmpty())
}
