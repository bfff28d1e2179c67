package schedule

import (
	"strings"
	"time"
)

// zoneAliases maps the free-text location hints that show up in contact
// imports to IANA zone names. Hints are matched case-insensitively
// after trimming. This replaces the substring matching the old scripts
// did ("location includes Tokyo"), which misfired on hints like
// "Tokyo Bay Area startup".
var zoneAliases = map[string]string{
	"tokyo":       "Asia/Tokyo",
	"japan":       "Asia/Tokyo",
	"jst":         "Asia/Tokyo",
	"london":      "Europe/London",
	"uk":          "Europe/London",
	"paris":       "Europe/Paris",
	"berlin":      "Europe/Berlin",
	"sydney":      "Australia/Sydney",
	"singapore":   "Asia/Singapore",
	"hong kong":   "Asia/Hong_Kong",
	"india":       "Asia/Kolkata",
	"ist":         "Asia/Kolkata",
	"new york":    "America/New_York",
	"nyc":         "America/New_York",
	"boston":      "America/New_York",
	"est":         "America/New_York",
	"edt":         "America/New_York",
	"eastern":     "America/New_York",
	"chicago":     "America/Chicago",
	"cst":         "America/Chicago",
	"central":     "America/Chicago",
	"denver":      "America/Denver",
	"mst":         "America/Denver",
	"mountain":    "America/Denver",
	"los angeles": "America/Los_Angeles",
	"la":          "America/Los_Angeles",
	"san francisco": "America/Los_Angeles",
	"sf":          "America/Los_Angeles",
	"seattle":     "America/Los_Angeles",
	"pst":         "America/Los_Angeles",
	"pdt":         "America/Los_Angeles",
	"pacific":     "America/Los_Angeles",
	"utc":         "UTC",
	"gmt":         "UTC",
}

// ResolveZone maps a contact's timezone hint to a concrete location.
// It tries the hint as an IANA name first, then the alias table. If the
// hint is empty or unresolvable it falls back to UTC and reports
// fallback=true; callers surface the flag rather than treating it as an
// error, because the product behavior for unknown locations is "assume
// business hours are fine", not "never send".
func ResolveZone(hint string) (loc *time.Location, fallback bool) {
	h := strings.TrimSpace(hint)
	if h == "" {
		return time.UTC, true
	}

	if loc, err := time.LoadLocation(h); err == nil {
		return loc, false
	}

	if name, ok := zoneAliases[strings.ToLower(h)]; ok {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, false
		}
	}

	return time.UTC, true
}
