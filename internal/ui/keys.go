package ui

import tea "github.com/charmbracelet/bubbletea"

type action int

const (
	actionNone action = iota
	actionQuit
	actionSave
	actionCycle
	actionCycleBack
	actionConfirm
	actionRefresh
	actionUp
	actionDown
	actionPageUp
	actionPageDown
	actionHome
	actionEnd
)

var keyActions = map[string]action{
	"ctrl+q":    actionQuit,
	"ctrl+c":    actionQuit,
	"ctrl+s":    actionSave,
	"tab":       actionCycle,
	"shift+tab": actionCycleBack,
	"enter":     actionConfirm,
	"ctrl+r":    actionRefresh,
	"up":        actionUp,
	"ctrl+p":    actionUp,
	"down":      actionDown,
	"ctrl+n":    actionDown,
	"pgup":      actionPageUp,
	"pgdown":    actionPageDown,
	"home":      actionHome,
	"end":       actionEnd,
}

func actionFor(msg tea.KeyMsg) action {
	return keyActions[msg.String()]
}

const footerHint = "tab mode  ↑/↓ move  enter confirm  ctrl+r refresh  ctrl+s save  ctrl+q quit"
