package fsops

import (
	"context"
	"fmt"
	"os"

	"github.com/SymphonyNineth/batchren/internal/rename"
)

// Result is the outcome for one rename pair. A nil Err means the file now
// lives at NewPath.
type Result struct {
	OldPath string
	NewPath string
	Err     error
}

// BatchRename renames the pairs in order. A failed pair does not stop the
// batch and nothing is rolled back; every pair reports its own outcome.
func BatchRename(pairs []rename.Pair) []Result {
	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		results = append(results, renameOne(pair))
	}
	return results
}

// BatchRenameStream renames the pairs in order while emitting progress on
// events, which is closed when the batch ends. Once ctx is cancelled the
// remaining pairs are marked failed without being touched.
func BatchRenameStream(ctx context.Context, pairs []rename.Pair, events chan<- RenameEvent) []Result {
	defer close(events)
	events <- RenameEvent{Phase: Started, Total: len(pairs)}
	results := make([]Result, 0, len(pairs))
	successful, failed := 0, 0
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			for _, rest := range pairs[i:] {
				results = append(results, Result{OldPath: rest.OldPath, NewPath: rest.NewPath, Err: err})
				failed++
			}
			break
		}
		events <- RenameEvent{Phase: Progress, Current: i + 1, Total: len(pairs), CurrentPath: pair.OldPath}
		result := renameOne(pair)
		if result.Err != nil {
			failed++
		} else {
			successful++
		}
		results = append(results, result)
	}
	events <- RenameEvent{Phase: Completed, Total: len(pairs), Successful: successful, Failed: failed}
	return results
}

func renameOne(pair rename.Pair) Result {
	result := Result{OldPath: pair.OldPath, NewPath: pair.NewPath}
	if err := os.Rename(pair.OldPath, pair.NewPath); err != nil {
		result.Err = fmt.Errorf("rename %q: %w", pair.OldPath, err)
	}
	return result
}
