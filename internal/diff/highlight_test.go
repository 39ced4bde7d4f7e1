package diff

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternHighlights(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pattern  string
		expected []Highlight
	}{
		{
			name:    "no capture groups highlights whole match",
			text:    "file12.txt",
			pattern: `\d+`,
			expected: []Highlight{
				{Text: "file", Group: GroupNone},
				{Text: "12", Group: 0},
				{Text: ".txt", Group: GroupNone},
			},
		},
		{
			name:    "single group",
			text:    "file12.txt",
			pattern: `(\d+)`,
			expected: []Highlight{
				{Text: "file", Group: GroupNone},
				{Text: "12", Group: 1},
				{Text: ".txt", Group: GroupNone},
			},
		},
		{
			name:    "multiple groups with text between",
			text:    "img_12.png",
			pattern: `(\w+)_(\d+)`,
			expected: []Highlight{
				{Text: "img", Group: 1},
				{Text: "_", Group: GroupNone},
				{Text: "12", Group: 2},
				{Text: ".png", Group: GroupNone},
			},
		},
		{
			name:    "repeated matches",
			text:    "a1b2",
			pattern: `(\d)`,
			expected: []Highlight{
				{Text: "a", Group: GroupNone},
				{Text: "1", Group: 1},
				{Text: "b", Group: GroupNone},
				{Text: "2", Group: 1},
			},
		},
		{
			name:    "nested group overlapping outer is skipped",
			text:    "ab",
			pattern: `((a)b)`,
			expected: []Highlight{
				{Text: "ab", Group: 1},
			},
		},
		{
			name:    "unmatched optional group",
			text:    "b1",
			pattern: `(a)?(\d)`,
			expected: []Highlight{
				{Text: "b", Group: GroupNone},
				{Text: "1", Group: 2},
			},
		},
		{
			name:     "no match leaves text plain",
			text:     "notes.md",
			pattern:  `\d+`,
			expected: []Highlight{{Text: "notes.md", Group: GroupNone}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			assert.Equal(t, tt.expected, PatternHighlights(tt.text, re))
		})
	}
}

func TestPatternHighlights_NilPattern(t *testing.T) {
	assert.Equal(t, []Highlight{{Text: "file.txt", Group: GroupNone}}, PatternHighlights("file.txt", nil))
}

func TestPatternHighlights_EmptyText(t *testing.T) {
	assert.Empty(t, PatternHighlights("", regexp.MustCompile(`\d`)))
}

func TestPatternHighlights_Reconstruction(t *testing.T) {
	text := "IMG_2041 copy (3).jpeg"
	re := regexp.MustCompile(`([A-Z]+)_(\d+)`)

	var rebuilt string
	for _, h := range PatternHighlights(text, re) {
		rebuilt += h.Text
	}
	assert.Equal(t, text, rebuilt)
}

func TestHasCaptureGroups(t *testing.T) {
	assert.True(t, HasCaptureGroups(regexp.MustCompile(`(\d+)`)))
	assert.False(t, HasCaptureGroups(regexp.MustCompile(`\d+`)))
	assert.False(t, HasCaptureGroups(nil))
}
