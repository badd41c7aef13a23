package domain

import "time"

const DayLayout = "2006-01-02"

// ParseDay parses a calendar date in YYYY-MM-DD form. The result is midnight
// UTC of that date, which keeps day arithmetic free of DST shifts.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil || t.Format(DayLayout) != s {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DayLayout)
}

// DayLabel renders a date the way the progress chart labels its bars, e.g. "Mon 1".
func DayLabel(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("Mon 2")
}
