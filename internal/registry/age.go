package registry

import (
	"fmt"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// FormatAge renders the time elapsed since lastUpdated using the coarsest
// whole unit that applies. Every week count from 52 through 103 reads
// "1 year"; from 104 weeks on the year count is weeks/52.
func FormatAge(now, lastUpdated time.Time) string {
	d := now.Sub(lastUpdated)
	if d < 0 {
		d = 0
	}
	weeks := int64(d / week)
	days := int64(d / day)
	hours := int64(d / time.Hour)
	minutes := int64(d / time.Minute)
	switch {
	case weeks > 103:
		return fmt.Sprintf("%d years", weeks/52)
	case weeks >= 52:
		return "1 year"
	case days == 1:
		return "1 day"
	case days > 1:
		return fmt.Sprintf("%d days", days)
	case hours == 1:
		return "1 hour"
	case hours > 1:
		return fmt.Sprintf("%d hours", hours)
	case minutes == 1:
		return "1 minute"
	case minutes > 1:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%d seconds", int64(d/time.Second))
	}
}
