package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusClearedMsg clears the status banner if no newer status replaced it.
type statusClearedMsg struct {
	seq int
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusClearedMsg{seq: seq}
	})
}
