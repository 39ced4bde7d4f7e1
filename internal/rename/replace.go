package rename

import (
	"regexp"
	"strings"

	"github.com/SymphonyNineth/batchren/internal/diff"
)

// Result is the outcome of find/replace on a single name. Segments classify
// every character of the transformation: text outside matches is unchanged,
// matched text is removed, substituted text is added. Concatenating the
// unchanged and removed segments reproduces the input name, unchanged and
// added the new one.
type Result struct {
	Name     string
	Segments []diff.Segment
}

var templateRef = regexp.MustCompile(`\$(\d+)`)

// expandTemplate rewrites $1 style backreferences into ${1} so a digit or
// word character right after the reference cannot extend the group name.
func expandTemplate(template string) string {
	return templateRef.ReplaceAllStringFunc(template, func(ref string) string {
		return "${" + ref[1:] + "}"
	})
}

// Replace applies the compiled find pattern and the replacement template to
// name. Without a pattern the name passes through as a single unchanged
// segment.
func (c Config) Replace(name string) Result {
	if c.re == nil {
		return Result{Name: name, Segments: appendSegment(nil, diff.Unchanged, name)}
	}
	subject, rest := name, ""
	if !c.IncludeExtension {
		subject = stem(name)
		rest = name[len(subject):]
	}
	template := expandTemplate(c.ReplaceText)
	var segments []diff.Segment
	var out strings.Builder
	last := 0
	for _, m := range c.re.FindAllStringSubmatchIndex(subject, c.matchLimit()) {
		start, end := m[0], m[1]
		substituted := string(c.re.ExpandString(nil, template, subject, m))
		segments = appendSegment(segments, diff.Unchanged, subject[last:start])
		segments = appendSegment(segments, diff.Removed, subject[start:end])
		segments = appendSegment(segments, diff.Added, substituted)
		out.WriteString(subject[last:start])
		out.WriteString(substituted)
		last = end
	}
	out.WriteString(subject[last:])
	out.WriteString(rest)
	segments = appendSegment(segments, diff.Unchanged, subject[last:])
	segments = appendSegment(segments, diff.Unchanged, rest)
	return Result{Name: out.String(), Segments: segments}
}

// appendSegment drops empty text and merges runs of the same kind, keeping
// segment sequences maximal.
func appendSegment(segments []diff.Segment, kind diff.Kind, text string) []diff.Segment {
	if text == "" {
		return segments
	}
	if n := len(segments); n > 0 && segments[n-1].Kind == kind {
		segments[n-1].Text += text
		return segments
	}
	return append(segments, diff.Segment{Kind: kind, Text: text})
}
