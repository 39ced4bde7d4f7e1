// Package diff computes character-level differences between two strings as
// an ordered sequence of unchanged/added/removed segments, used to highlight
// exactly which parts of a file name a rename changes.
package diff

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a segment of a diff.
type Kind int

const (
	// Unchanged text appears in both strings.
	Unchanged Kind = iota
	// Added text appears only in the modified string.
	Added
	// Removed text appears only in the original string.
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Segment is one maximal run of a diff. Concatenating the Unchanged and
// Removed segments of a diff reproduces the original string; Unchanged and
// Added reproduce the modified one. Adjacent segments never share a kind.
type Segment struct {
	Kind Kind
	Text string
}

// Beyond this combined length the exact LCS table would cost too much for
// interactive recomputation, so Diff falls back to a linear prefix/suffix
// approximation.
const fallbackThreshold = 500

// charStarts returns the byte offset of every character of s, plus len(s).
// Invalid UTF-8 bytes count as one character each; segment text always
// slices s directly, so file names that are not valid UTF-8 round-trip
// byte for byte.
func charStarts(s string) []int {
	starts := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		starts = append(starts, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(starts, len(s))
}

// Diff compares original and modified character by character.
func Diff(original, modified string) []Segment {
	if original == modified {
		return []Segment{{Kind: Unchanged, Text: original}}
	}
	o := charStarts(original)
	m := charStarts(modified)
	if len(o)+len(m)-2 > fallbackThreshold {
		return boundedDiff(original, modified, o, m)
	}
	return lcsDiff(original, modified, o, m)
}

// boundedDiff emits at most four segments: the longest common prefix, the
// differing middles of both sides, and the longest common suffix that does
// not overlap the prefix. O(n) time and memory.
func boundedDiff(original, modified string, ob, mb []int) []Segment {
	n, k := len(ob)-1, len(mb)-1
	prefix := 0
	for prefix < n && prefix < k && original[ob[prefix]:ob[prefix+1]] == modified[mb[prefix]:mb[prefix+1]] {
		prefix++
	}
	suffix := 0
	for suffix < n-prefix && suffix < k-prefix &&
		original[ob[n-1-suffix]:ob[n-suffix]] == modified[mb[k-1-suffix]:mb[k-suffix]] {
		suffix++
	}

	segments := make([]Segment, 0, 4)
	if prefix > 0 {
		segments = append(segments, Segment{Kind: Unchanged, Text: original[:ob[prefix]]})
	}
	if mid := original[ob[prefix]:ob[n-suffix]]; mid != "" {
		segments = append(segments, Segment{Kind: Removed, Text: mid})
	}
	if mid := modified[mb[prefix]:mb[k-suffix]]; mid != "" {
		segments = append(segments, Segment{Kind: Added, Text: mid})
	}
	if suffix > 0 {
		segments = append(segments, Segment{Kind: Unchanged, Text: original[ob[n-suffix]:]})
	}
	return segments
}

// lcsDiff builds the full longest-common-subsequence table and backtracks
// from the bottom-right cell. When both directions carry the same LCS value
// the modified-side character is consumed first, so a differing character is
// classified as added before removed.
func lcsDiff(original, modified string, ob, mb []int) []Segment {
	n, k := len(ob)-1, len(mb)-1
	oAt := func(i int) string { return original[ob[i]:ob[i+1]] }
	mAt := func(j int) string { return modified[mb[j]:mb[j+1]] }

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, k+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= k; j++ {
			switch {
			case oAt(i-1) == mAt(j-1):
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] > dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	type step struct {
		kind Kind
		text string
	}
	steps := make([]step, 0, n+k)
	i, j := n, k
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oAt(i-1) == mAt(j-1):
			steps = append(steps, step{kind: Unchanged, text: oAt(i - 1)})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			steps = append(steps, step{kind: Added, text: mAt(j - 1)})
			j--
		default:
			steps = append(steps, step{kind: Removed, text: oAt(i - 1)})
			i--
		}
	}

	// steps hold the diff back to front; walk them in reverse merging
	// consecutive runs of the same kind into maximal segments
	var segments []Segment
	var run strings.Builder
	current := Unchanged
	for idx := len(steps) - 1; idx >= 0; idx-- {
		st := steps[idx]
		if run.Len() > 0 && st.kind != current {
			segments = append(segments, Segment{Kind: current, Text: run.String()})
			run.Reset()
		}
		current = st.kind
		run.WriteString(st.text)
	}
	if run.Len() > 0 {
		segments = append(segments, Segment{Kind: current, Text: run.String()})
	}
	return segments
}
