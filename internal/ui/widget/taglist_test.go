package widget

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/composetag/internal/registry"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testPage(names ...string) registry.TagPage {
	page := registry.TagPage{Repo: "library/nginx"}
	for _, name := range names {
		page.Rows = append(page.Rows, registry.TagEntry{Name: name, LastUpdated: testNow.Add(-48 * time.Hour)})
	}
	return page
}

func TestFromPageBuildsRows(t *testing.T) {
	page := testPage("latest", "1.25")
	page.Next = "https://hub.example/page2"
	page.Prev = "https://hub.example/page0"
	l := FromPage(page, testNow)

	if l.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", l.Len())
	}
	if l.Rows[0].Kind != RowPrevPage || l.Rows[3].Kind != RowNextPage {
		t.Fatalf("expected pagination rows at the edges, got %#v", l.Rows)
	}
	if l.Cursor != 1 {
		t.Fatalf("expected cursor on first tag, got %d", l.Cursor)
	}
	if l.Rows[1].Text != "latest — 2 days ago" {
		t.Fatalf("unexpected label %q", l.Rows[1].Text)
	}
	name, err := l.Selected()
	if err != nil || name != "latest" {
		t.Fatalf("expected latest selected, got %q (%v)", name, err)
	}
}

func TestFromPageWithoutRowsShowsStatus(t *testing.T) {
	l := FromPage(registry.TagPage{Repo: "library/empty"}, testNow)
	if l.Len() != 1 || l.Rows[0].Kind != RowStatus {
		t.Fatalf("expected single status row, got %#v", l.Rows)
	}
	if !strings.Contains(l.Rows[0].Text, "empty") {
		t.Fatalf("expected repo in status, got %q", l.Rows[0].Text)
	}
	if _, err := l.Selected(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestSelectedOnPaginationRow(t *testing.T) {
	page := testPage("latest")
	page.Next = "next-cursor"
	l := FromPage(page, testNow)
	l.MoveEnd()

	_, err := l.Selected()
	if !errors.Is(err, ErrNextPageSelected) {
		t.Fatalf("expected ErrNextPageSelected, got %v", err)
	}
	var pageErr *PageSelectedError
	if !errors.As(err, &pageErr) || pageErr.Cursor != "next-cursor" || pageErr.Backward {
		t.Fatalf("unexpected page error %#v", pageErr)
	}
	if lines := l.DetailLines(); len(lines) != 1 {
		t.Fatalf("expected hint line for page row, got %v", lines)
	}
}

func TestCursorMovementIsBounded(t *testing.T) {
	l := FromPage(testPage("a", "b", "c"), testNow)

	if l.MoveUp() {
		t.Fatal("expected no movement above the first row")
	}
	if !l.MoveDown() || !l.MoveDown() {
		t.Fatal("expected movement down")
	}
	if l.MoveDown() {
		t.Fatal("expected no movement past the last row")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor at home, got %d", l.Cursor)
	}
	if !l.MovePageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected page down to 2, got %d", l.Cursor)
	}
	if !l.MovePageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected page up clamped to 0, got %d", l.Cursor)
	}
}

func TestStatusListIgnoresMovement(t *testing.T) {
	l := NewStatus("Fetching tags for nginx…")
	if l.MoveDown() || l.MoveUp() {
		t.Fatal("expected single row list to stay put")
	}
	if lines := l.DetailLines(); lines != nil {
		t.Fatalf("expected no details for status row, got %v", lines)
	}
	e := NewError(errors.New("boom"))
	if e.Rows[0].Kind != RowError || e.Rows[0].Text != "boom" {
		t.Fatalf("unexpected error row %#v", e.Rows[0])
	}
}

func TestVisibleFollowsCursor(t *testing.T) {
	l := FromPage(testPage("a", "b", "c", "d", "e"), testNow)
	l.Cursor = 4
	rows, start := l.Visible(2)
	if start != 3 || len(rows) != 2 || rows[1].Entry.Name != "e" {
		t.Fatalf("expected last two rows visible, got start=%d rows=%#v", start, rows)
	}
	l.MoveHome()
	_, start = l.Visible(2)
	if start != 0 {
		t.Fatalf("expected viewport reset to 0, got %d", start)
	}
}

func TestInfoTracksErrors(t *testing.T) {
	info := NewInfo("Select an image")
	info.SetError(errors.New("save failed"))
	if !info.IsError() || info.Text() != "save failed" {
		t.Fatalf("unexpected info state %q/%v", info.Text(), info.IsError())
	}
	info.SetText("ok")
	if info.IsError() {
		t.Fatal("expected SetText to clear error flag")
	}
}
