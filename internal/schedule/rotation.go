package schedule

// TryReserve decides whether another send fits under the daily cap and,
// if so, which sending identity takes it (round-robin over the pool).
// Pure function; the runner owns the counter and serializes increments.
// Cap exhaustion is an operational throttle, not a scheduling fact
// about the contact, which is why it lives outside the Engine.
func TryReserve(senderPoolSize, dailySentCount, dailyCap int) (reserve bool, senderIndex int) {
	if dailySentCount >= dailyCap {
		return false, 0
	}
	if senderPoolSize <= 0 {
		senderPoolSize = 1
	}
	return true, dailySentCount % senderPoolSize
}
