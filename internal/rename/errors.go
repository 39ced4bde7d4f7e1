package rename

import (
	"errors"
	"fmt"
)

// ErrNoChange blocks applying a plan in which every computed name equals its
// original.
var ErrNoChange = errors.New("no file names would change")

// PatternError reports a find pattern that does not compile in regex mode.
// Callers keep showing the last valid plan while one is active.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regex %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// CollisionError blocks applying a plan in which two or more items resolve to
// the same target path. Paths holds each duplicated target once, in list
// order.
type CollisionError struct {
	Items int
	Paths []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%d files collide on %d target paths", e.Items, len(e.Paths))
}
