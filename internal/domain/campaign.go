package domain

import (
	"time"
)

// CampaignStatus enumerates the lifecycle states of a campaign.
type CampaignStatus string

const (
	CampaignDraft    CampaignStatus = "draft"
	CampaignActive   CampaignStatus = "active"
	CampaignPaused   CampaignStatus = "paused"
	CampaignArchived CampaignStatus = "archived"
)

// IsSendable returns true if the campaign may produce SEND decisions.
// Only active campaigns send.
func (s CampaignStatus) IsSendable() bool { return s == CampaignActive }

// Campaign owns an ordered sequence of outreach steps plus the sending
// limits the batch runner enforces for it.
type Campaign struct {
	ID     string         `json:"id" db:"id"`
	Name   string         `json:"name" db:"name"`
	Status CampaignStatus `json:"status" db:"status"`

	// DailyCap is the maximum number of sends per UTC day across the
	// whole campaign. SenderPool is the number of sending identities to
	// rotate through. Both are runner concerns, not engine concerns.
	DailyCap   int `json:"daily_cap" db:"daily_cap"`
	SenderPool int `json:"sender_pool" db:"sender_pool"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SequenceStep is one ordered step in a campaign's outreach plan.
// StepNumber is 1-based and strictly increasing with no gaps. DelayDays
// for step 1 is measured from the contact's created_at; for later steps
// it is measured from the previous step's send time.
type SequenceStep struct {
	CampaignID string `json:"campaign_id" db:"campaign_id"`
	StepNumber int    `json:"step_number" db:"step_number"`
	DelayDays  int    `json:"delay_days" db:"delay_days"`
	Subject    string `json:"subject" db:"subject"`
	Body       string `json:"body" db:"body"`
}
