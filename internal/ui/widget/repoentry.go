package widget

import (
	"strings"
	"unicode"
)

// RepoEntry is the editable repository buffer with a rune cursor.
type RepoEntry struct {
	value     string
	cursor    int
	committed string
}

// NewRepoEntry returns an entry holding initial with the cursor at the end.
// initial is also the committed value.
func NewRepoEntry(initial string) *RepoEntry {
	e := &RepoEntry{}
	e.Set(initial)
	e.committed = strings.TrimSpace(initial)
	return e
}

// Value returns the buffer text.
func (e *RepoEntry) Value() string { return e.value }

// Committed returns the last confirmed repository.
func (e *RepoEntry) Committed() string { return e.committed }

// Set replaces the buffer and moves the cursor to the end.
func (e *RepoEntry) Set(text string) {
	e.value = text
	e.cursor = len([]rune(text))
}

// Confirm commits the trimmed buffer and returns it.
func (e *RepoEntry) Confirm() string {
	e.committed = strings.TrimSpace(e.value)
	return e.committed
}

// CursorPos returns the rune offset of the cursor.
func (e *RepoEntry) CursorPos() int {
	runes := []rune(e.value)
	if e.cursor < 0 {
		return 0
	}
	if e.cursor > len(runes) {
		return len(runes)
	}
	return e.cursor
}

func (e *RepoEntry) setValue(value string, cursor int) {
	e.value = value
	n := len([]rune(value))
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n {
		cursor = n
	}
	e.cursor = cursor
}

// Insert inserts text at the cursor.
func (e *RepoEntry) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(e.value)
	pos := e.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	e.setValue(string(updated), pos+len(insert))
	return true
}

// DeleteBackward deletes the rune before the cursor.
func (e *RepoEntry) DeleteBackward() bool {
	runes := []rune(e.value)
	pos := e.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	e.setValue(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor. Slashes and
// colons separate words so "library/nginx" loses "nginx" first.
func (e *RepoEntry) DeleteWordBackward() bool {
	runes := []rune(e.value)
	pos := e.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	e.setValue(string(updated), i)
	return true
}

// Clear empties the buffer.
func (e *RepoEntry) Clear() bool {
	if e.value == "" {
		return false
	}
	e.setValue("", 0)
	return true
}

// MoveStart moves the cursor to the start.
func (e *RepoEntry) MoveStart() bool {
	if e.CursorPos() == 0 {
		return false
	}
	e.cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (e *RepoEntry) MoveEnd() bool {
	end := len([]rune(e.value))
	if e.CursorPos() == end {
		return false
	}
	e.cursor = end
	return true
}

// MoveRuneBackward moves the cursor one rune left.
func (e *RepoEntry) MoveRuneBackward() bool {
	if e.CursorPos() == 0 {
		return false
	}
	e.cursor = e.CursorPos() - 1
	return true
}

// MoveRuneForward moves the cursor one rune right.
func (e *RepoEntry) MoveRuneForward() bool {
	pos := e.CursorPos()
	if pos >= len([]rune(e.value)) {
		return false
	}
	e.cursor = pos + 1
	return true
}

// MoveWordBackward moves the cursor to the start of the previous word.
func (e *RepoEntry) MoveWordBackward() bool {
	runes := []rune(e.value)
	pos := e.CursorPos()
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	e.cursor = i
	return true
}

// MoveWordForward moves the cursor past the next word.
func (e *RepoEntry) MoveWordForward() bool {
	runes := []rune(e.value)
	pos := e.CursorPos()
	i := pos
	for i < len(runes) && isWordBreak(runes[i]) {
		i++
	}
	for i < len(runes) && !isWordBreak(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	e.cursor = i
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && isWordBreak(runes[i-1]) {
		i--
	}
	for i > 0 && !isWordBreak(runes[i-1]) {
		i--
	}
	return i
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '/' || r == ':'
}
