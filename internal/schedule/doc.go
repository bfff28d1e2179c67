// Package schedule implements the sequence send-time decision engine.
//
// Given a read-only snapshot of a contact, its campaign, the campaign's
// ordered steps and the contact's send history, the engine decides
// whether right now is the correct moment to send the contact's next
// step. The decision combines terminal-state gating, per-step delay
// offsets, a deterministic per-contact time-of-day jitter, and
// timezone-aware business-hours gating.
//
// Everything in this package is a pure function of its inputs plus an
// injectable clock: no storage, no network, no shared mutable state.
// Evaluating the same snapshot at the same instant always yields the
// same decision, which is what makes send predictions debuggable.
package schedule
