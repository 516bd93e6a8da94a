package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0 seconds"},
		{time.Second, "1 seconds"},
		{30 * time.Second, "30 seconds"},
		{time.Minute, "1 minute"},
		{119 * time.Second, "1 minute"},
		{2 * time.Minute, "2 minutes"},
		{time.Hour, "1 hour"},
		{5 * time.Hour, "5 hours"},
		{24 * time.Hour, "1 day"},
		{47 * time.Hour, "1 day"},
		{48 * time.Hour, "2 days"},
		{51 * week, "357 days"},
		{52 * week, "1 year"},
		{53 * week, "1 year"},
		{103 * week, "1 year"},
		{103*week + 6*day, "1 year"},
		{104 * week, "2 years"},
		{156 * week, "3 years"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAge(now, now.Add(-tc.ago)), tc.ago.String())
	}
}

func TestFormatAgeClampsFutureTimestamps(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "0 seconds", FormatAge(now, now.Add(time.Hour)))
}

func TestTagEntryLabelAndDetails(t *testing.T) {
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	entry := TagEntry{
		Name:        "1.25",
		LastUpdated: now.Add(-48 * time.Hour),
		Images: []Image{
			{OS: "linux", Architecture: "amd64", Size: 70_000_000},
			{OS: "linux", Architecture: "arm64"},
		},
	}
	assert.Equal(t, "1.25 — 2 days ago", entry.Label(now))
	assert.Equal(t, []string{
		"1.25",
		"updated 2024-06-01 12:00",
		"linux/amd64  70 MB",
		"linux/arm64",
	}, entry.DetailLines())

	assert.Equal(t, "latest", TagEntry{Name: "latest"}.Label(now))
	assert.Equal(t, []string{"latest"}, TagEntry{Name: "latest"}.DetailLines())
}
