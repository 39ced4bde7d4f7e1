package fsops

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/SymphonyNineth/batchren/internal/pathutil"
	"github.com/SymphonyNineth/batchren/internal/rename"
)

// MatchMode selects how MatchNames interprets its pattern.
type MatchMode int

const (
	MatchSubstring MatchMode = iota
	MatchExtension
	MatchRegex
)

// NameMatch is one file whose name matched, with the byte spans that hit.
type NameMatch struct {
	Path  string
	Name  string
	Spans []rename.Span
}

// MatchNames filters paths whose file name matches pattern under mode.
// Substring mode finds every non-overlapping occurrence, extension mode takes
// a comma separated list of extensions, regex mode compiles the pattern as
// written. Matching is case-insensitive unless caseSensitive is set. An
// invalid regex returns a rename.PatternError.
func MatchNames(paths []string, pattern string, mode MatchMode, caseSensitive bool) ([]NameMatch, error) {
	if pattern == "" {
		return nil, nil
	}
	var matcher func(name string) []rename.Span
	switch mode {
	case MatchExtension:
		exts := splitExtensions(pattern)
		if len(exts) == 0 {
			return nil, nil
		}
		matcher = func(name string) []rename.Span {
			return matchExtension(name, exts, caseSensitive)
		}
	case MatchRegex:
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, &rename.PatternError{Pattern: pattern, Err: err}
		}
		matcher = regexpMatcher(pattern, caseSensitive)
	default:
		matcher = regexpMatcher(regexp.QuoteMeta(pattern), caseSensitive)
	}
	var matches []NameMatch
	for _, path := range paths {
		name := pathutil.FileName(path)
		spans := matcher(name)
		if len(spans) == 0 {
			continue
		}
		matches = append(matches, NameMatch{Path: path, Name: name, Spans: spans})
	}
	return matches, nil
}

func regexpMatcher(expr string, caseSensitive bool) func(name string) []rename.Span {
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re := regexp.MustCompile(expr)
	return func(name string) []rename.Span {
		var spans []rename.Span
		for _, m := range re.FindAllStringIndex(name, -1) {
			spans = append(spans, rename.Span{Start: m[0], End: m[1]})
		}
		return spans
	}
}

// matchExtension spans from the extension dot to the end of the name.
// Dotfiles have no extension.
func matchExtension(name string, exts []string, caseSensitive bool) []rename.Span {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return nil
	}
	ext := name[idx+1:]
	for _, want := range exts {
		if ext == want || !caseSensitive && strings.EqualFold(ext, want) {
			return []rename.Span{{Start: idx, End: len(name)}}
		}
	}
	return nil
}

func splitExtensions(pattern string) []string {
	var exts []string
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), ".")
		if part != "" {
			exts = append(exts, part)
		}
	}
	return exts
}

// DeleteFailure is one file the batch could not remove.
type DeleteFailure struct {
	Path string
	Err  error
}

// DeleteResult reports a batch delete.
type DeleteResult struct {
	Deleted     []string
	Failed      []DeleteFailure
	DeletedDirs []string
}

// DeleteFiles removes the given files one by one; a failure does not stop
// the batch. A non-empty cleanupRoot removes directories beneath it that the
// deletions left empty, deepest first, climbing while parents keep emptying;
// cleanupRoot itself is never removed. Once ctx is cancelled the remaining
// files are marked failed without being touched.
func DeleteFiles(ctx context.Context, paths []string, cleanupRoot string) DeleteResult {
	var result DeleteResult
	parents := make(map[string]bool)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, DeleteFailure{Path: path, Err: err})
			continue
		}
		if err := os.Remove(path); err != nil {
			result.Failed = append(result.Failed, DeleteFailure{Path: path, Err: err})
			continue
		}
		result.Deleted = append(result.Deleted, path)
		parents[filepath.Dir(path)] = true
	}
	if cleanupRoot != "" {
		result.DeletedDirs = removeEmptyDirs(parents, cleanupRoot)
	}
	return result
}

func removeEmptyDirs(dirs map[string]bool, root string) []string {
	queue := make([]string, 0, len(dirs))
	for dir := range dirs {
		queue = append(queue, dir)
	}
	sort.Slice(queue, func(i, j int) bool {
		return strings.Count(queue[i], string(os.PathSeparator)) > strings.Count(queue[j], string(os.PathSeparator))
	})
	inside := root + string(os.PathSeparator)
	var deleted []string
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		if !strings.HasPrefix(dir, inside) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			continue
		}
		deleted = append(deleted, dir)
		queue = append(queue, filepath.Dir(dir))
	}
	return deleted
}
