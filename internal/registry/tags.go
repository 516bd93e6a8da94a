package registry

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Image describes one platform variant of a tag.
type Image struct {
	OS           string
	Architecture string
	Size         int64
}

// TagEntry is a single tag row of a listing.
type TagEntry struct {
	Name        string
	LastUpdated time.Time
	Images      []Image
}

// TagPage is one page of a tag listing. Next and Prev are opaque cursors;
// empty means there is no such page.
type TagPage struct {
	Repo string
	Rows []TagEntry
	Next string
	Prev string
}

// Label renders "name — age ago", or just the name when the registry did not
// report a timestamp.
func (t TagEntry) Label(now time.Time) string {
	if t.LastUpdated.IsZero() {
		return t.Name
	}
	return fmt.Sprintf("%s — %s ago", t.Name, FormatAge(now, t.LastUpdated))
}

// DetailLines summarises the tag for the details pane.
func (t TagEntry) DetailLines() []string {
	lines := make([]string, 0, len(t.Images)+2)
	lines = append(lines, t.Name)
	if !t.LastUpdated.IsZero() {
		lines = append(lines, "updated "+t.LastUpdated.UTC().Format("2006-01-02 15:04"))
	}
	for _, img := range t.Images {
		platform := img.OS
		if img.Architecture != "" {
			platform += "/" + img.Architecture
		}
		if img.Size > 0 {
			lines = append(lines, fmt.Sprintf("%s  %s", platform, humanize.Bytes(uint64(img.Size))))
			continue
		}
		lines = append(lines, platform)
	}
	return lines
}
