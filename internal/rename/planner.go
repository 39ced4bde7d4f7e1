package rename

import (
	"strings"

	"github.com/SymphonyNineth/batchren/internal/diff"
	"github.com/SymphonyNineth/batchren/internal/pathutil"
)

// A RenameItem is one list entry's computed outcome. Items are rebuilt from
// scratch on every plan and never mutated by the planner afterwards; Err is
// set by the caller when the rename service fails for the item.
type RenameItem struct {
	Path         string
	Name         string
	NewName      string
	NewPath      string
	MatchSpans   []Span
	Segments     []diff.Segment
	NumberSpan   Span
	HasCollision bool
	Err          error
}

// Changed reports whether applying the plan would rename the item.
func (it RenameItem) Changed() bool { return it.NewName != it.Name }

// Pair is one rename handed to the rename service.
type Pair struct {
	OldPath string
	NewPath string
}

// Plan is the full computed outcome for a list of paths under one
// configuration. A plan whose pattern failed to compile carries PatternErr
// and no items; callers keep the previous valid plan on screen until the
// pattern is fixed.
type Plan struct {
	Items      []RenameItem
	PatternErr error

	changed    int
	collisions int
}

// Build computes the plan for paths under cfg: find/replace when a find text
// is set, then numbering, then collision detection over the whole list.
func Build(paths []string, cfg Config) *Plan {
	plan := &Plan{}
	if err := cfg.PatternErr(); err != nil {
		plan.PatternErr = err
		return plan
	}
	owners := make(map[string][]int, len(paths))
	for i, path := range paths {
		name := pathutil.FileName(path)
		item := RenameItem{Path: path, Name: name, NewName: name}
		if cfg.FindText != "" {
			result := cfg.Replace(name)
			item.NewName = result.Name
			item.Segments = result.Segments
			item.MatchSpans = cfg.FindMatches(name)
		}
		item.NewName, item.NumberSpan = cfg.ApplyNumbering(item.NewName, i)
		item.NewPath = candidatePath(path, item.NewName)
		if item.Changed() {
			plan.changed++
		}
		owners[item.NewPath] = append(owners[item.NewPath], i)
		plan.Items = append(plan.Items, item)
	}
	for _, group := range owners {
		if len(group) < 2 {
			continue
		}
		for _, idx := range group {
			plan.Items[idx].HasCollision = true
			plan.collisions++
		}
	}
	return plan
}

// candidatePath rebuilds the target path from the original path's directory
// instead of substituting the old name inside the old path, which would
// misfire when a directory is named like the file. Bare names stay bare.
func candidatePath(path, newName string) string {
	if !strings.ContainsAny(path, `/\`) {
		return newName
	}
	return pathutil.Join(pathutil.Directory(path), newName)
}

// CanApply reports whether the plan may be handed to the rename service,
// surfacing exactly one blocking reason: an invalid pattern, then a no-op
// plan, then collisions.
func (p *Plan) CanApply() error {
	if p.PatternErr != nil {
		return p.PatternErr
	}
	if p.changed == 0 {
		return ErrNoChange
	}
	if p.collisions > 0 {
		seen := make(map[string]bool, p.collisions)
		var paths []string
		for _, it := range p.Items {
			if it.HasCollision && !seen[it.NewPath] {
				seen[it.NewPath] = true
				paths = append(paths, it.NewPath)
			}
		}
		return &CollisionError{Items: p.collisions, Paths: paths}
	}
	return nil
}

// Pairs returns the renames for items whose name actually changes, in list
// order. Unchanged items are omitted.
func (p *Plan) Pairs() []Pair {
	var pairs []Pair
	for _, it := range p.Items {
		if !it.Changed() {
			continue
		}
		pairs = append(pairs, Pair{OldPath: it.Path, NewPath: it.NewPath})
	}
	return pairs
}

// ChangedCount is the number of items whose name would change.
func (p *Plan) ChangedCount() int { return p.changed }

// CollisionCount is the number of items flagged as colliding.
func (p *Plan) CollisionCount() int { return p.collisions }
