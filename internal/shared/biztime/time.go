// Package biztime provides time utilities for the engine. All storage and
// transport use UTC; day arithmetic (warranty windows, purchase age) is done
// on UTC instants to keep behavior identical across deployments.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DaysSince returns the number of whole days elapsed between t and now.
func DaysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// AddDays returns t shifted by the given number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.Add(time.Duration(days) * 24 * time.Hour)
}
