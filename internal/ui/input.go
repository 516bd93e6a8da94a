package ui

import (
	"unicode"

	"github.com/atomicstack/composetag/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const editingHint = "Editing repository, enter fetches tags"

func (m *Model) updateRepoCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.repoCursor, cmd = m.repoCursor.Update(msg)
	return cmd
}

func (m *Model) noteRepoCursorChange(before int) {
	if before != m.repoEntry.CursorPos() {
		m.repoCursorDirty = true
	}
}

// handleTextInput routes editing keys to the repository entry. Only the
// entry ever receives characters.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	entry := m.repoEntry
	before := entry.CursorPos()
	var changed, edited bool
	switch msg.String() {
	case "ctrl+u":
		changed = entry.Clear()
		edited = changed
	case "ctrl+w", "alt+backspace":
		changed = entry.DeleteWordBackward()
		edited = changed
	case "ctrl+a", "home":
		changed = entry.MoveStart()
	case "ctrl+e", "end":
		changed = entry.MoveEnd()
	case "alt+b":
		changed = entry.MoveWordBackward()
	case "alt+f":
		changed = entry.MoveWordForward()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = entry.DeleteBackward()
			edited = changed
		case tea.KeyLeft:
			changed = entry.MoveRuneBackward()
		case tea.KeyRight:
			changed = entry.MoveRuneForward()
		case tea.KeySpace:
			changed = entry.Insert(" ")
			edited = changed
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			changed = entry.Insert(string(msg.Runes))
			edited = changed
		default:
			return false
		}
	}
	m.noteRepoCursorChange(before)
	if edited {
		m.info.SetText(editingHint)
		events.Repo.Edit(entry.Value(), entry.CursorPos())
	}
	return true
}

func (m *Model) repoPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "repo » "
	if styles.EntryPrompt != nil {
		prompt = styles.EntryPrompt.Render(prompt)
	}
	if styles.Cursor != nil {
		m.repoCursor.Style = styles.Cursor.Copy()
	}
	if styles.Entry != nil {
		m.repoCursor.TextStyle = styles.Entry.Copy()
	} else {
		m.repoCursor.TextStyle = lipgloss.Style{}
	}
	focused := m.mode == ModeEditRepo
	text := m.repoEntry.Value()
	if text == "" {
		placeholder := "(type a repository, e.g. nginx)"
		if !focused {
			return prompt + render(styles.EntryPlaceholder, placeholder)
		}
		runes := []rune(placeholder)
		if styles.EntryPlaceholder != nil {
			m.repoCursor.TextStyle = styles.EntryPlaceholder.Copy()
		}
		return prompt + m.renderRepoCursor(string(runes[0])) + render(styles.EntryPlaceholder, string(runes[1:]))
	}
	if !focused {
		return prompt + render(styles.Entry, text)
	}
	runes := []rune(text)
	pos := m.repoEntry.CursorPos()
	before := render(styles.Entry, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Entry, string(runes[pos+1:]))
	}
	return prompt + before + m.renderRepoCursor(caretRune) + after
}

func (m *Model) renderRepoCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.repoCursor.SetChar(char)

	base := m.repoCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.repoCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
