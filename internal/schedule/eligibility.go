package schedule

import (
	"github.com/ignite/outreach-scheduler/internal/domain"
)

// Eligible decides whether the contact may receive any further sends at
// all. It runs before any timing work: a terminal contact is never
// evaluated for due time, and each terminal status maps to its own
// operator-visible reason rather than a generic "blocked".
func Eligible(contact domain.Contact, campaign domain.Campaign) (bool, domain.SkipReason) {
	if !campaign.Status.IsSendable() {
		return false, domain.SkipCampaignNotActive
	}

	switch contact.Status {
	case domain.ContactUnsubscribed:
		return false, domain.SkipUnsubscribed
	case domain.ContactBounced:
		return false, domain.SkipBounced
	case domain.ContactReplied:
		return false, domain.SkipReplied
	case domain.ContactCompleted:
		return false, domain.SkipCompletedStatus
	}

	return true, ""
}
