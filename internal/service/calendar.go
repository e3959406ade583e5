package service

import "time"

// Calendar turns instants into calendar dates in the application's time zone.
// Dates are represented as midnight UTC so they compare and format independently of the zone.
type Calendar struct {
	Location *time.Location
	Now      func() time.Time
}

// NewCalendar returns a Calendar on the wall clock
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Location: loc, Now: time.Now}
}

// Today returns the current calendar date
func (c Calendar) Today() time.Time {
	return DateOf(c.Now(), c.Location)
}

// DateOf returns the calendar date of t as seen in loc
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex numbers days from Monday = 0 to Sunday = 6
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekdayName returns the English weekday name of a date
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// WeekWindow returns the Monday and Sunday of the week offset weeks away from the week containing today
func WeekWindow(today time.Time, offset int) (time.Time, time.Time) {
	currentWeekStart := today.AddDate(0, 0, -WeekdayIndex(today))
	start := currentWeekStart.AddDate(0, 0, offset*7)
	return start, start.AddDate(0, 0, 6)
}
