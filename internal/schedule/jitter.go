package schedule

// DeriveTimeOfDay deterministically derives a local time-of-day slot
// for a (contact, step) pair. The same pair always lands on the same
// slot, so re-running the engine retargets the same wall-clock minute
// (idempotent scheduling), while different contacts spread across the
// business-hours window instead of firing in one spike.
//
// The hash is the 31-multiplier polynomial accumulated in 32 bits with
// wraparound; it must stay bit-compatible with the production processor
// so predictions made here match what actually sent.
func DeriveTimeOfDay(contactID string, stepNumber int) (hour, minute int) {
	var h int32
	for _, c := range contactID {
		h = (h << 5) - h + int32(c)
	}

	seed := (int(h) + stepNumber) % 1000
	if seed < 0 {
		seed += 1000
	}

	// Hour lands in [9,16] so the slot plus processing latency stays
	// inside the [9,17) business window.
	hour = BusinessHoursStart + seed%8
	minute = (seed * 7) % 60
	return hour, minute
}
