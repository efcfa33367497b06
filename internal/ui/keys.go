package ui

import tea "github.com/charmbracelet/bubbletea"

// keyAction is a logical UI action decoupled from the physical key.
type keyAction int

const (
	keyNone keyAction = iota
	keyQuit
	keyUp
	keyDown
	keyEnter
	keyEsc
	keyHelp
	keyPause
	keyReset
	keyInject
	keyIntervalUp
	keyIntervalDown
)

// matchKey maps a key message to its action.
func matchKey(msg tea.KeyMsg) keyAction {
	switch msg.String() {
	case "q", "ctrl+c":
		return keyQuit
	case "up", "k":
		return keyUp
	case "down", "j":
		return keyDown
	case "enter":
		return keyEnter
	case "esc":
		return keyEsc
	case "?":
		return keyHelp
	case "p", " ":
		return keyPause
	case "r":
		return keyReset
	case "i":
		return keyInject
	case "+", "=":
		return keyIntervalUp
	case "-":
		return keyIntervalDown
	}
	return keyNone
}
