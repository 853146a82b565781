package models

import "time"

// DayLayout is the calendar-day string format used as the day-boundary key.
// It matches the "Mon Jan 02 2006" form the stored state has always used.
const DayLayout = "Mon Jan 02 2006"

// DayString returns the calendar-day key for t
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a calendar-day key back into local midnight of that day
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, day, time.Local)
}

// MondayOfWeek returns local midnight of the Monday of t's week.
// Sunday belongs to the preceding week.
func MondayOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	monday := t.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the week-boundary key for t, the RFC3339 timestamp of
// the Monday starting t's week.
func WeekStart(t time.Time) string {
	return MondayOfWeek(t).Format(time.RFC3339)
}
