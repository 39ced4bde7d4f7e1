package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	opts := NumberingOptions{StartAt: 1, Increment: 1, Padding: 3}
	for i, expected := range []string{"001", "002", "003"} {
		assert.Equal(t, expected, opts.Number(i))
	}
}

func TestNumber_WiderThanPadding(t *testing.T) {
	opts := NumberingOptions{StartAt: 1234, Increment: 1, Padding: 2}
	assert.Equal(t, "1234", opts.Number(0))
}

func TestNumber_StartAndIncrement(t *testing.T) {
	opts := NumberingOptions{StartAt: 10, Increment: 5}
	assert.Equal(t, "10", opts.Number(0))
	assert.Equal(t, "25", opts.Number(3))
}

func TestApplyNumbering(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		text     string
		ordinal  int
		expected string
		span     Span
	}{
		{
			name:     "disabled passes through",
			opts:     Options{Numbering: DefaultNumbering()},
			text:     "file.txt",
			expected: "file.txt",
		},
		{
			name: "suffix goes before the extension",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 1, Increment: 1, Padding: 2, Separator: "_",
			}},
			text:     "file.txt",
			expected: "file_01.txt",
			span:     Span{Start: 5, End: 7},
		},
		{
			name: "suffix at the very end when the extension is included",
			opts: Options{IncludeExtension: true, Numbering: NumberingOptions{
				Enabled: true, StartAt: 1, Increment: 1, Separator: "-",
			}},
			text:     "file.txt",
			expected: "file.txt-1",
			span:     Span{Start: 9, End: 10},
		},
		{
			name: "prefix",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 1, Increment: 1, Padding: 3, Position: Prefix, Separator: " ",
			}},
			text:     "file.txt",
			ordinal:  1,
			expected: "002 file.txt",
			span:     Span{Start: 0, End: 3},
		},
		{
			name: "insert at rune index",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 7, Increment: 1, Position: Insert, InsertAt: 4, Separator: "_",
			}},
			text:     "file.txt",
			expected: "file_7.txt",
			span:     Span{Start: 5, End: 6},
		},
		{
			name: "insert clamps past the end",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 7, Increment: 1, Position: Insert, InsertAt: 99, Separator: "_",
			}},
			text:     "file.txt",
			expected: "file.txt_7",
			span:     Span{Start: 9, End: 10},
		},
		{
			name: "insert at zero acts as prefix",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 7, Increment: 1, Position: Insert, Separator: "_",
			}},
			text:     "file.txt",
			expected: "7_file.txt",
			span:     Span{Start: 0, End: 1},
		},
		{
			name: "insert counts runes not bytes",
			opts: Options{Numbering: NumberingOptions{
				Enabled: true, StartAt: 5, Increment: 1, Position: Insert, InsertAt: 1,
			}},
			text:     "日本語.txt",
			expected: "日5本語.txt",
			span:     Span{Start: 3, End: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Compile(tt.opts)
			newName, span := cfg.ApplyNumbering(tt.text, tt.ordinal)
			assert.Equal(t, tt.expected, newName)
			assert.Equal(t, tt.span, span)
		})
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "suffix", Suffix.String())
	assert.Equal(t, "prefix", Prefix.String())
	assert.Equal(t, "insert", Insert.String())
}
