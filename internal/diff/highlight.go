package diff

import "regexp"

// GroupNone marks a highlight that sits outside every match.
const GroupNone = -1

// Highlight is one piece of a text segmented by a find pattern. Group is the
// capture group index the text belongs to, 0 for a whole match of a pattern
// without explicit groups, or GroupNone for text between matches.
type Highlight struct {
	Text  string
	Group int
}

// PatternHighlights segments text by the matches of re, walking them left to
// right. Inside a match with explicit capture groups each group is emitted
// with its index; groups overlapping an earlier one are skipped and the text
// between groups stays plain. Zero-length pieces are dropped.
func PatternHighlights(text string, re *regexp.Regexp) []Highlight {
	if re == nil {
		return appendHighlight(nil, text, GroupNone)
	}
	var out []Highlight
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		out = appendHighlight(out, text[last:start], GroupNone)
		if re.NumSubexp() == 0 {
			out = appendHighlight(out, text[start:end], 0)
			last = end
			continue
		}
		inner := start
		for g := 1; g <= re.NumSubexp(); g++ {
			gs, ge := m[2*g], m[2*g+1]
			if gs < 0 || gs < inner {
				continue
			}
			out = appendHighlight(out, text[inner:gs], GroupNone)
			out = appendHighlight(out, text[gs:ge], g)
			inner = ge
		}
		out = appendHighlight(out, text[inner:end], GroupNone)
		last = end
	}
	return appendHighlight(out, text[last:], GroupNone)
}

// HasCaptureGroups reports whether re declares at least one explicit capture
// group, which switches replacement previews to group-level coloring.
func HasCaptureGroups(re *regexp.Regexp) bool {
	return re != nil && re.NumSubexp() > 0
}

func appendHighlight(out []Highlight, text string, group int) []Highlight {
	if text == "" {
		return out
	}
	return append(out, Highlight{Text: text, Group: group})
}
