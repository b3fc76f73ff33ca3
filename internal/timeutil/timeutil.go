package timeutil

import "time"

// DateLayout is the schedule day format the Stats API expects.
const DateLayout = "2006-01-02"

// ValidDate reports whether value is a YYYY-MM-DD calendar day.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// DayIn returns the calendar day of t as seen in loc. A nil loc keeps t's own location.
func DayIn(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ScheduleDate returns date when it is a valid day, otherwise the day of now in loc.
// Games after midnight UTC still belong to the previous day in US timezones.
func ScheduleDate(date string, now time.Time, loc *time.Location) string {
	if date != "" && ValidDate(date) {
		return date
	}
	return DayIn(now, loc)
}
