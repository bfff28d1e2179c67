package schedule

import "time"

// Business hours are [09:00, 17:00) local, Monday through Friday. One
// authoritative definition; every caller goes through this package.
const (
	BusinessHoursStart = 9
	BusinessHoursEnd   = 17
)

// InBusinessHours reports whether the given UTC instant falls inside
// business hours in the zone resolved from the contact's hint. The
// second return mirrors ResolveZone's fallback flag so callers can
// record that UTC hours were assumed.
//
// The window is half-open: exactly 09:00:00 local is in hours, exactly
// 17:00:00 is not. Local Saturday and Sunday are never in hours.
func InBusinessHours(zoneHint string, instantUTC time.Time) (ok bool, fallback bool) {
	loc, fallback := ResolveZone(zoneHint)
	return inBusinessHoursAt(instantUTC.In(loc)), fallback
}

func inBusinessHoursAt(local time.Time) bool {
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	h := local.Hour()
	return h >= BusinessHoursStart && h < BusinessHoursEnd
}
