package domain

import (
	"time"
)

// ProgressStatus enumerates the delivery bookkeeping states for a step
// send attempt. The decision engine only consumes ProgressSent; the
// other states exist for the runner's audit trail.
type ProgressStatus string

const (
	ProgressSent   ProgressStatus = "sent"
	ProgressFailed ProgressStatus = "failed"
)

// ProgressRecord is an immutable fact: step StepNumber was sent to
// contact ContactID at SentAt. At most one sent record should exist per
// (contact, step); duplicates are a data-quality issue upstream and the
// engine resolves them by taking the latest SentAt.
type ProgressRecord struct {
	ID         string         `json:"id" db:"id"`
	ContactID  string         `json:"contact_id" db:"contact_id"`
	StepNumber int            `json:"step_number" db:"step_number"`
	Status     ProgressStatus `json:"status" db:"status"`
	SenderID   string         `json:"sender_id" db:"sender_id"`
	SentAt     time.Time      `json:"sent_at" db:"sent_at"`
}
