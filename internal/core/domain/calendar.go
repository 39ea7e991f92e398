package domain

import "time"

// WeekOfMonth buckets a day-of-month into weeks of up to seven days,
// capped at 5 (days 1-7 -> 1, 8-14 -> 2, ..., 29-31 -> 5). This is an
// archive partition, not an ISO calendar week.
func WeekOfMonth(date time.Time) int {
	week := (date.Day()-1)/7 + 1
	if week > 5 {
		week = 5
	}
	return week
}
