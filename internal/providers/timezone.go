package providers

import "time"

// ScheduleTimezone is the zone MLB uses to decide which day a game belongs to.
const ScheduleTimezone = "America/New_York"

// ResolveTimezone loads a location by IANA name. Empty or unknown names yield nil.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

// TimezoneOrDefault resolves tz, then ScheduleTimezone, then UTC.
func TimezoneOrDefault(tz string) *time.Location {
	if loc := ResolveTimezone(tz); loc != nil {
		return loc
	}
	if loc := ResolveTimezone(ScheduleTimezone); loc != nil {
		return loc
	}
	return time.UTC
}
