package domain

import "time"

// Period is the accounting window for spend aggregation and alert
// deduplication: one calendar month, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonth returns the period containing now, in now's location.
func CurrentMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{Start: start, End: end}
}

// Key is the stable identifier of the period, e.g. "2026-09".
func (p Period) Key() string {
	return p.Start.Format("2006-01")
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}
