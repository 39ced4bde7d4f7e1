package rename

import "strings"

// A Span is a half-open [Start, End) byte range within a name.
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.End <= s.Start }

// stem returns name up to its last dot. A dot at index zero is part of the
// name, so dotfiles stay extension-less.
func stem(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// FindMatches locates the non-overlapping pattern matches within name, first
// match only under ReplaceFirstOnly. With IncludeExtension unset, matching
// stops at the extension; the returned offsets are valid for the full name
// either way.
func (c Config) FindMatches(name string) []Span {
	if c.re == nil {
		return nil
	}
	subject := name
	if !c.IncludeExtension {
		subject = stem(name)
	}
	var spans []Span
	for _, m := range c.re.FindAllStringIndex(subject, c.matchLimit()) {
		spans = append(spans, Span{Start: m[0], End: m[1]})
	}
	return spans
}
