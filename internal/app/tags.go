package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atomicstack/composetag/internal/format/table"
	"github.com/atomicstack/composetag/internal/registry"
	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ListOptions selects one page of a listing for ListTags.
type ListOptions struct {
	Repo   string
	Cursor string
	Filter string
	Now    time.Time
}

// ListTags writes one page of tags for opts.Repo as a table, followed by the
// cursors of the neighbouring pages.
func ListTags(ctx context.Context, w io.Writer, src registry.Source, opts ListOptions) error {
	repo, err := registry.NormalizeRepo(strings.TrimSpace(opts.Repo))
	if err != nil {
		return err
	}
	page, err := src.FetchTags(ctx, repo, opts.Cursor)
	if err != nil {
		return err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rows := make([][]string, 0, len(page.Rows))
	for _, entry := range page.Rows {
		if opts.Filter != "" && !fuzzy.MatchNormalizedFold(opts.Filter, entry.Name) {
			continue
		}
		rows = append(rows, tagRow(entry, now))
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "no tags for %s\n", registry.DisplayRepo(repo))
	} else {
		header := []string{"TAG", "UPDATED", "PLATFORMS", "SIZE"}
		alignments := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight}
		if _, err := io.WriteString(w, table.Render(header, rows, alignments)); err != nil {
			return err
		}
	}
	if page.Prev != "" {
		fmt.Fprintf(w, "prev: %s\n", page.Prev)
	}
	if page.Next != "" {
		fmt.Fprintf(w, "next: %s\n", page.Next)
	}
	return nil
}

func tagRow(entry registry.TagEntry, now time.Time) []string {
	updated := "-"
	if !entry.LastUpdated.IsZero() {
		updated = registry.FormatAge(now, entry.LastUpdated) + " ago"
	}
	var largest int64
	for _, img := range entry.Images {
		if img.Size > largest {
			largest = img.Size
		}
	}
	size := "-"
	if largest > 0 {
		size = humanize.Bytes(uint64(largest))
	}
	return []string{entry.Name, updated, fmt.Sprintf("%d", len(entry.Images)), size}
}
