package fsops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SymphonyNineth/batchren/internal/rename"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestBatchRename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"))
	writeFile(t, filepath.Join(dir, "b.txt"))

	results := BatchRename([]rename.Pair{
		{OldPath: filepath.Join(dir, "a.txt"), NewPath: filepath.Join(dir, "x.txt")},
		{OldPath: filepath.Join(dir, "b.txt"), NewPath: filepath.Join(dir, "y.txt")},
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.FileExists(t, filepath.Join(dir, "x.txt"))
	assert.FileExists(t, filepath.Join(dir, "y.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

func TestBatchRename_FailureDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"))

	results := BatchRename([]rename.Pair{
		{OldPath: filepath.Join(dir, "missing.txt"), NewPath: filepath.Join(dir, "x.txt")},
		{OldPath: filepath.Join(dir, "b.txt"), NewPath: filepath.Join(dir, "y.txt")},
	})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.FileExists(t, filepath.Join(dir, "y.txt"))
}

func TestBatchRenameStream_Events(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"))
	writeFile(t, filepath.Join(dir, "b.txt"))
	pairs := []rename.Pair{
		{OldPath: filepath.Join(dir, "a.txt"), NewPath: filepath.Join(dir, "x.txt")},
		{OldPath: filepath.Join(dir, "b.txt"), NewPath: filepath.Join(dir, "y.txt")},
	}
	events := make(chan RenameEvent, 16)

	results := BatchRenameStream(context.Background(), pairs, events)

	var collected []RenameEvent
	for ev := range events {
		collected = append(collected, ev)
	}
	require.Len(t, results, 2)
	require.Len(t, collected, 4)
	assert.Equal(t, RenameEvent{Phase: Started, Total: 2}, collected[0])
	assert.Equal(t, Progress, collected[1].Phase)
	assert.Equal(t, 1, collected[1].Current)
	assert.Equal(t, pairs[0].OldPath, collected[1].CurrentPath)
	assert.Equal(t, RenameEvent{Phase: Completed, Total: 2, Successful: 2}, collected[3])
}

func TestBatchRenameStream_CancelledContextMarksRemainingFailed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	events := make(chan RenameEvent, 16)

	results := BatchRenameStream(ctx, []rename.Pair{
		{OldPath: filepath.Join(dir, "a.txt"), NewPath: filepath.Join(dir, "x.txt")},
	}, events)

	for range events {
	}
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "started", Started.String())
	assert.Equal(t, "progress", Progress.String())
	assert.Equal(t, "completed", Completed.String())
}
