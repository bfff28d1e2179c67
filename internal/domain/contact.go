package domain

import (
	"time"
)

// ContactStatus enumerates the lifecycle states of a contact. The status
// is monotonic toward terminal states: once a contact leaves active it
// never returns (re-enrollment creates a new contact).
type ContactStatus string

const (
	ContactActive       ContactStatus = "active"
	ContactCompleted    ContactStatus = "completed"
	ContactReplied      ContactStatus = "replied"
	ContactUnsubscribed ContactStatus = "unsubscribed"
	ContactBounced      ContactStatus = "bounced"
)

// IsTerminal returns true if no further sends may happen for this status.
func (s ContactStatus) IsTerminal() bool {
	switch s {
	case ContactCompleted, ContactReplied, ContactUnsubscribed, ContactBounced:
		return true
	}
	return false
}

// Contact is a prospect enrolled in exactly one outreach campaign.
type Contact struct {
	ID         string        `json:"id" db:"id"`
	CampaignID string        `json:"campaign_id" db:"campaign_id"`
	Email      string        `json:"email" db:"email"`
	FirstName  string        `json:"first_name" db:"first_name"`
	LastName   string        `json:"last_name" db:"last_name"`
	Company    string        `json:"company" db:"company"`

	// TimezoneHint is a free-text location or IANA zone string supplied
	// at import time ("Tokyo", "America/New_York", "PST"). It may be
	// empty or unresolvable; the scheduler falls back to UTC.
	TimezoneHint string `json:"timezone_hint" db:"timezone_hint"`

	Status    ContactStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
