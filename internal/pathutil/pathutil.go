// Package pathutil decomposes and rebuilds file paths without touching the
// filesystem. Paths are opaque strings using either / or \ as separator; the
// separator style is inferred per string and preserved on re-join, never
// normalized or mixed.
package pathutil

import "strings"

// FileName returns the component after the last separator of either style.
// A path ending in a separator and an empty path both yield "".
func FileName(path string) string {
	if path == "" {
		return ""
	}
	idx := strings.LastIndex(path, "/")
	if backslash := strings.LastIndex(path, `\`); backslash > idx {
		idx = backslash
	}
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Directory returns everything before the last occurrence of the path's
// separator. Backslash wins when both styles appear. A path without a
// separator yields "".
func Directory(path string) string {
	idx := strings.LastIndex(path, Separator(path))
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Separator reports the separator style of path: `\` when present anywhere,
// `/` otherwise.
func Separator(path string) string {
	if strings.Contains(path, `\`) {
		return `\`
	}
	return "/"
}

// Join concatenates directory, the directory's separator, and name. No
// normalization and no trailing-separator handling; the result is
// byte-for-byte reproducible.
func Join(directory, name string) string {
	return directory + Separator(directory) + name
}
