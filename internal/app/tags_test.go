package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/composetag/internal/registry"
	"github.com/atomicstack/composetag/internal/testutil"
)

type staticSource struct {
	page   registry.TagPage
	err    error
	repo   string
	cursor string
}

func (s *staticSource) FetchTags(_ context.Context, repo, cursor string) (registry.TagPage, error) {
	s.repo, s.cursor = repo, cursor
	return s.page, s.err
}

func TestListTagsWritesTable(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	src := &staticSource{page: registry.TagPage{
		Rows: []registry.TagEntry{
			{Name: "latest", LastUpdated: now.Add(-48 * time.Hour), Images: []registry.Image{{OS: "linux", Architecture: "amd64", Size: 1500000}}},
			{Name: "alpine", LastUpdated: now.Add(-time.Hour)},
		},
		Next: "cursor-2",
	}}
	var out strings.Builder
	err := ListTags(context.Background(), &out, src, ListOptions{Repo: "nginx", Cursor: "cursor-1", Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.repo != "library/nginx" || src.cursor != "cursor-1" {
		t.Fatalf("unexpected request %q/%q", src.repo, src.cursor)
	}
	testutil.AssertGolden(t, "tags_page.golden", out.String())
}

func TestListTagsFilters(t *testing.T) {
	src := &staticSource{page: registry.TagPage{Rows: []registry.TagEntry{{Name: "1.25-alpine"}, {Name: "1.25-bookworm"}}}}
	var out strings.Builder
	if err := ListTags(context.Background(), &out, src, ListOptions{Repo: "nginx", Filter: "alp"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "1.25-alpine") || strings.Contains(out.String(), "bookworm") {
		t.Fatalf("unexpected filtered output:\n%s", out.String())
	}

	out.Reset()
	if err := ListTags(context.Background(), &out, src, ListOptions{Repo: "nginx", Filter: "zzz"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "no tags for nginx") {
		t.Fatalf("expected empty notice, got %q", out.String())
	}
}

func TestListTagsErrors(t *testing.T) {
	src := &staticSource{err: &registry.FetchError{URL: "x", Status: 404}}
	var out strings.Builder
	if err := ListTags(context.Background(), &out, src, ListOptions{Repo: "nginx"}); !errors.Is(err, registry.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if err := ListTags(context.Background(), &out, src, ListOptions{Repo: "ngïnx"}); !errors.Is(err, registry.ErrInvalidCharacter) {
		t.Fatalf("expected invalid character, got %v", err)
	}
}
