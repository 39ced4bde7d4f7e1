package fsops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755))
	writeFile(t, filepath.Join(dir, "a.txt"))
	writeFile(t, filepath.Join(dir, "sub", "b.txt"))
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.txt"))
	return dir
}

func TestListFiles(t *testing.T) {
	dir := makeTree(t)

	files, err := ListFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
		filepath.Join(dir, "sub", "deep", "c.txt"),
	}, files)
}

func TestListFiles_MissingDir(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListFiles_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file)

	_, err := ListFiles(file)

	assert.ErrorContains(t, err, "not a directory")
}

func TestListFilesStream_Events(t *testing.T) {
	dir := makeTree(t)
	events := make(chan ListEvent, 64)

	files, err := ListFilesStream(context.Background(), dir, events)

	require.NoError(t, err)
	assert.Len(t, files, 3)

	var collected []ListEvent
	for ev := range events {
		collected = append(collected, ev)
	}
	require.NotEmpty(t, collected)
	assert.Equal(t, ListEvent{Phase: Started, Base: dir}, collected[0])
	last := collected[len(collected)-1]
	assert.Equal(t, Completed, last.Phase)
	assert.Equal(t, 3, last.FilesFound)
	for _, ev := range collected[1 : len(collected)-1] {
		assert.Equal(t, Progress, ev.Phase)
	}
}

func TestListFilesStream_Cancelled(t *testing.T) {
	dir := makeTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	events := make(chan ListEvent, 64)

	_, err := ListFilesStream(ctx, dir, events)

	for range events {
	}
	assert.ErrorIs(t, err, context.Canceled)
}
