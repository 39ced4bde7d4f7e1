package fsops

import "sync"

// Session holds the file list currently loaded into the app. It is guarded
// because streamed scans and the UI touch it from different goroutines.
type Session struct {
	mu    sync.RWMutex
	files []string
}

func NewSession() *Session {
	return &Session{}
}

// SetFiles replaces the session list with a copy of files.
func (s *Session) SetFiles(files []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append([]string(nil), files...)
}

// Files returns a copy of the current list.
func (s *Session) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.files...)
}

// Len is the number of files in the session.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Clear empties the session.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

// Rename moves every successfully renamed path to its new location, leaving
// failed pairs at their old path.
func (s *Session) Rename(results []Result) {
	moves := make(map[string]string, len(results))
	for _, r := range results {
		if r.Err == nil {
			moves[r.OldPath] = r.NewPath
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if to, ok := moves[f]; ok {
			s.files[i] = to
		}
	}
}

// Remove drops the given paths from the session list, keeping order.
func (s *Session) Remove(paths []string) {
	gone := make(map[string]bool, len(paths))
	for _, p := range paths {
		gone[p] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.files[:0]
	for _, f := range s.files {
		if !gone[f] {
			kept = append(kept, f)
		}
	}
	s.files = kept
}
