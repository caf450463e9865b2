package tui

import tea "github.com/charmbracelet/bubbletea"

// Command is what a key press asks the watch view to do.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdPause
	CmdRestart
	CmdStep // Advance a single frame while paused
)

// MapKey translates a key message into a watch command.
func MapKey(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "ctrl+c", "q":
		return CmdQuit
	case "p", " ":
		return CmdPause
	case "r":
		return CmdRestart
	case "n", "right":
		return CmdStep
	}
	return CmdNone
}
