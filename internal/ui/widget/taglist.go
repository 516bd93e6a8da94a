package widget

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/composetag/internal/registry"
)

var (
	// ErrNextPageSelected reports that a pagination row, not a tag, is highlighted.
	ErrNextPageSelected = errors.New("page row selected")
	// ErrNoSelection reports that no tag row is highlighted.
	ErrNoSelection = errors.New("no tag selected")
)

// PageSelectedError carries the cursor of the highlighted pagination row.
type PageSelectedError struct {
	Cursor   string
	Backward bool
}

func (e *PageSelectedError) Error() string {
	if e.Backward {
		return "previous page selected"
	}
	return "next page selected"
}

func (e *PageSelectedError) Is(target error) bool { return target == ErrNextPageSelected }

// RowKind classifies TagList rows.
type RowKind int

const (
	RowStatus RowKind = iota
	RowError
	RowTag
	RowPrevPage
	RowNextPage
)

// Row is one line of the tag list.
type Row struct {
	Kind   RowKind
	Text   string
	Entry  registry.TagEntry
	Cursor string
}

// TagList holds the rows of the current listing and a bounded cursor.
type TagList struct {
	Repo           string
	Rows           []Row
	Cursor         int
	ViewportOffset int
}

// NewStatus returns a list showing a single status line.
func NewStatus(text string) *TagList {
	return &TagList{Rows: []Row{{Kind: RowStatus, Text: text}}}
}

// NewError returns a list showing a single error line.
func NewError(err error) *TagList {
	text := "unknown error"
	if err != nil {
		text = err.Error()
	}
	return &TagList{Rows: []Row{{Kind: RowError, Text: text}}}
}

// FromPage builds rows for a fetched page: an optional previous-page row,
// one row per tag, and an optional next-page row. The cursor starts on the
// first tag.
func FromPage(page registry.TagPage, now time.Time) *TagList {
	l := &TagList{Repo: page.Repo, Rows: make([]Row, 0, len(page.Rows)+2)}
	if page.Prev != "" {
		l.Rows = append(l.Rows, Row{Kind: RowPrevPage, Text: "« previous page", Cursor: page.Prev})
	}
	l.Cursor = len(l.Rows)
	if len(page.Rows) == 0 {
		l.Rows = append(l.Rows, Row{Kind: RowStatus, Text: fmt.Sprintf("no tags for %s", registry.DisplayRepo(page.Repo))})
	}
	for _, entry := range page.Rows {
		l.Rows = append(l.Rows, Row{Kind: RowTag, Text: entry.Label(now), Entry: entry})
	}
	if page.Next != "" {
		l.Rows = append(l.Rows, Row{Kind: RowNextPage, Text: "next page »", Cursor: page.Next})
	}
	return l
}

// Len returns the number of rows.
func (l *TagList) Len() int { return len(l.Rows) }

// Current returns the highlighted row.
func (l *TagList) Current() (Row, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Rows) {
		return Row{}, false
	}
	return l.Rows[l.Cursor], true
}

// Selected returns the highlighted tag name.
func (l *TagList) Selected() (string, error) {
	row, ok := l.Current()
	if !ok {
		return "", ErrNoSelection
	}
	switch row.Kind {
	case RowTag:
		return row.Entry.Name, nil
	case RowNextPage:
		return "", &PageSelectedError{Cursor: row.Cursor}
	case RowPrevPage:
		return "", &PageSelectedError{Cursor: row.Cursor, Backward: true}
	default:
		return "", ErrNoSelection
	}
}

// DetailLines projects the highlighted row for the details pane.
func (l *TagList) DetailLines() []string {
	row, ok := l.Current()
	if !ok {
		return nil
	}
	switch row.Kind {
	case RowTag:
		return row.Entry.DetailLines()
	case RowNextPage, RowPrevPage:
		return []string{"enter loads this page"}
	default:
		return nil
	}
}

// MoveUp moves the cursor one row up, stopping at the first row.
func (l *TagList) MoveUp() bool { return l.moveCursorBy(-1) }

// MoveDown moves the cursor one row down, stopping at the last row.
func (l *TagList) MoveDown() bool { return l.moveCursorBy(1) }

// MoveHome moves the cursor to the first row.
func (l *TagList) MoveHome() bool { return l.moveCursorBy(-len(l.Rows)) }

// MoveEnd moves the cursor to the last row.
func (l *TagList) MoveEnd() bool { return l.moveCursorBy(len(l.Rows)) }

// MovePageUp moves the cursor up by the visible page size.
func (l *TagList) MovePageUp(maxVisible int) bool { return l.moveCursorBy(-l.pageSize(maxVisible)) }

// MovePageDown moves the cursor down by the visible page size.
func (l *TagList) MovePageDown(maxVisible int) bool { return l.moveCursorBy(l.pageSize(maxVisible)) }

func (l *TagList) moveCursorBy(delta int) bool {
	if len(l.Rows) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = len(l.Rows) - 1
	}
	return l.Cursor != old
}

func (l *TagList) pageSize(maxVisible int) int {
	total := len(l.Rows)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *TagList) EnsureCursorVisible(maxVisible int) {
	if len(l.Rows) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = len(l.Rows) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Rows) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// Visible returns the rows inside the viewport and the index of the first.
func (l *TagList) Visible(maxVisible int) ([]Row, int) {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(l.Rows) <= maxVisible {
		return l.Rows, 0
	}
	start := l.ViewportOffset
	return l.Rows[start : start+maxVisible], start
}
