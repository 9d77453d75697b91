package cache

import (
	"time"

	"mediaforge/internal/media"
)

// Bucket labels for the date-grouped view, newest first.
const (
	BucketToday     = "Today"
	BucketYesterday = "Yesterday"
	BucketLastWeek  = "Last Week"
	BucketLastMonth = "Last Month"
	BucketOlder     = "Older"
)

// BucketOrder is the display order of the date buckets.
var BucketOrder = []string{BucketToday, BucketYesterday, BucketLastWeek, BucketLastMonth, BucketOlder}

// GroupByDate derives the read-only date-bucketed view of the current
// collection. It is recomputed on demand and never mutated in place.
func (m *Manager) GroupByDate(now time.Time) map[string][]*media.ConvertedMediaItem {
	grouped := make(map[string][]*media.ConvertedMediaItem)
	for _, it := range m.Items() {
		label := bucketLabel(it.CreatedAt, now)
		grouped[label] = append(grouped[label], it)
	}
	return grouped
}

// bucketLabel places a creation time in a display bucket relative to now:
// same calendar day, previous calendar day, then sliding windows of 7 and
// 30 days.
func bucketLabel(created, now time.Time) string {
	createdDay := startOfDay(created.In(now.Location()))
	nowDay := startOfDay(now)

	switch {
	case createdDay.Equal(nowDay):
		return BucketToday
	case createdDay.Equal(nowDay.AddDate(0, 0, -1)):
		return BucketYesterday
	case now.Sub(created) < 7*24*time.Hour:
		return BucketLastWeek
	case now.Sub(created) < 30*24*time.Hour:
		return BucketLastMonth
	default:
		return BucketOlder
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
