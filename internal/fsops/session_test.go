package fsops

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_SetAndGet(t *testing.T) {
	s := NewSession()
	assert.Zero(t, s.Len())

	files := []string{"/d/a.txt", "/d/b.txt"}
	s.SetFiles(files)

	assert.Equal(t, 2, s.Len())
	got := s.Files()
	assert.Equal(t, files, got)

	// stored and returned lists are copies
	files[0] = "mutated"
	got[1] = "mutated"
	assert.Equal(t, []string{"/d/a.txt", "/d/b.txt"}, s.Files())
}

func TestSession_Clear(t *testing.T) {
	s := NewSession()
	s.SetFiles([]string{"/d/a.txt"})

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Files())
}

func TestSession_RenameMovesOnlySuccessfulPairs(t *testing.T) {
	s := NewSession()
	s.SetFiles([]string{"/d/a.txt", "/d/b.txt", "/d/c.txt"})

	s.Rename([]Result{
		{OldPath: "/d/a.txt", NewPath: "/d/x.txt"},
		{OldPath: "/d/b.txt", NewPath: "/d/y.txt", Err: errors.New("denied")},
	})

	assert.Equal(t, []string{"/d/x.txt", "/d/b.txt", "/d/c.txt"}, s.Files())
}

func TestSession_Remove(t *testing.T) {
	s := NewSession()
	s.SetFiles([]string{"/d/a.txt", "/d/b.txt", "/d/c.txt"})

	s.Remove([]string{"/d/b.txt"})

	assert.Equal(t, []string{"/d/a.txt", "/d/c.txt"}, s.Files())
}
