package fsops

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// A scanning event is emitted when the walk enters a new directory and again
// every scanEventStride files in between, so huge flat directories still
// show movement.
const scanEventStride = 50

// ListFiles returns every file beneath dir, recursively, in walk order.
func ListFiles(dir string) ([]string, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}
	return files, nil
}

// ListFilesStream walks dir like ListFiles while emitting progress on
// events, which is closed when the walk ends. Cancelling ctx aborts the walk
// with the context's error.
func ListFilesStream(ctx context.Context, dir string, events chan<- ListEvent) ([]string, error) {
	defer close(events)
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	events <- ListEvent{Phase: Started, Base: dir}
	var files []string
	lastDir := ""
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		parent := filepath.Dir(path)
		if parent != lastDir || len(files)%scanEventStride == 0 {
			lastDir = parent
			events <- ListEvent{Phase: Progress, Base: dir, CurrentDir: parent, FilesFound: len(files)}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}
	events <- ListEvent{Phase: Completed, Base: dir, FilesFound: len(files)}
	return files, nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("list %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("list %q: not a directory", dir)
	}
	return nil
}
