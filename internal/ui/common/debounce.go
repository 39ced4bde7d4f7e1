package common

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	debounceMu  sync.Mutex
	generations = map[string]uint64{}
)

// Debounce waits for duration before running cmd. A newer call with the same
// identifier supersedes older pending ones, whose cmd never runs.
func Debounce(identifier string, duration time.Duration, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	debounceMu.Lock()
	generations[identifier]++
	mine := generations[identifier]
	debounceMu.Unlock()

	return func() tea.Msg {
		time.Sleep(duration)

		debounceMu.Lock()
		latest := generations[identifier]
		debounceMu.Unlock()
		if latest != mine {
			return nil
		}
		return cmd()
	}
}
