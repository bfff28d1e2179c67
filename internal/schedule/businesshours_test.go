package schedule

import (
	"testing"
	"time"
)

// mustLoc loads an IANA zone or fails the test.
func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return loc
}

func TestInBusinessHours_HalfOpenWindow(t *testing.T) {
	// 2026-03-04 is a Wednesday.
	zones := []struct {
		hint string
		iana string
	}{
		{"UTC", "UTC"},
		{"Tokyo", "Asia/Tokyo"},
		{"America/New_York", "America/New_York"},
		{"London", "Europe/London"},
	}

	for _, z := range zones {
		loc := mustLoc(t, z.iana)

		cases := []struct {
			local time.Time
			want  bool
		}{
			{time.Date(2026, 3, 4, 9, 0, 0, 0, loc), true},   // exactly open
			{time.Date(2026, 3, 4, 8, 59, 59, 0, loc), false}, // one second early
			{time.Date(2026, 3, 4, 16, 59, 59, 0, loc), true}, // last in-window second
			{time.Date(2026, 3, 4, 17, 0, 0, 0, loc), false},  // exactly close
			{time.Date(2026, 3, 4, 12, 30, 0, 0, loc), true},
			{time.Date(2026, 3, 4, 2, 0, 0, 0, loc), false},
		}

		for _, c := range cases {
			got, fallback := InBusinessHours(z.hint, c.local.UTC())
			if got != c.want {
				t.Errorf("InBusinessHours(%q, %s local) = %v, want %v", z.hint, c.local.Format("15:04:05"), got, c.want)
			}
			if fallback {
				t.Errorf("InBusinessHours(%q) unexpectedly fell back to UTC", z.hint)
			}
		}
	}
}

func TestInBusinessHours_WeekendExcluded(t *testing.T) {
	loc := mustLoc(t, "Asia/Tokyo")

	// 2026-03-07 is a Saturday, 2026-03-08 a Sunday. No hour is in-window.
	for _, day := range []int{7, 8} {
		for hour := 0; hour < 24; hour++ {
			local := time.Date(2026, 3, day, hour, 30, 0, 0, loc)
			if got, _ := InBusinessHours("Tokyo", local.UTC()); got {
				t.Errorf("weekend instant %s local reported in business hours", local.Format("Mon 15:04"))
			}
		}
	}
}

func TestInBusinessHours_UnknownZoneFallsBackToUTC(t *testing.T) {
	// Wednesday noon UTC: in-hours under the UTC fallback.
	noon := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	for _, hint := range []string{"", "Atlantis", "somewhere out there"} {
		ok, fallback := InBusinessHours(hint, noon)
		if !fallback {
			t.Errorf("hint %q should report a fallback", hint)
		}
		if !ok {
			t.Errorf("hint %q at Wednesday noon UTC should be in hours", hint)
		}
	}

	// Same instants, 3am UTC: out of hours under the fallback.
	night := time.Date(2026, 3, 4, 3, 0, 0, 0, time.UTC)
	if ok, _ := InBusinessHours("Atlantis", night); ok {
		t.Error("3am UTC under fallback should be out of hours")
	}
}

func TestResolveZone_Aliases(t *testing.T) {
	cases := []struct {
		hint string
		want string
	}{
		{"Tokyo", "Asia/Tokyo"},
		{"tokyo", "Asia/Tokyo"},
		{" New York ", "America/New_York"},
		{"PST", "America/Los_Angeles"},
		{"Europe/Paris", "Europe/Paris"},
	}

	for _, c := range cases {
		loc, fallback := ResolveZone(c.hint)
		if fallback {
			t.Errorf("ResolveZone(%q) fell back", c.hint)
			continue
		}
		if loc.String() != c.want {
			t.Errorf("ResolveZone(%q) = %s, want %s", c.hint, loc, c.want)
		}
	}
}
