package sequence

import (
	"context"

	"github.com/ignite/outreach-scheduler/internal/domain"
)

// Enrollment bundles one contact with its campaign and the campaign's
// ordered steps, everything the engine needs except progress.
type Enrollment struct {
	Contact  domain.Contact
	Campaign domain.Campaign
	Steps    []domain.SequenceStep
}

// Repository defines the data access contract for sequence evaluation.
// Implementations must be safe for concurrent use.
type Repository interface {
	// GetContact returns a single contact. Returns ErrContactNotFound if
	// it doesn't exist.
	GetContact(ctx context.Context, id string) (*domain.Contact, error)

	// GetCampaign returns a single campaign. Returns ErrCampaignNotFound
	// if it doesn't exist.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)

	// ListSteps returns a campaign's steps ordered by step_number.
	ListSteps(ctx context.Context, campaignID string) ([]domain.SequenceStep, error)

	// ListProgress returns all progress records for a contact.
	ListProgress(ctx context.Context, contactID string) ([]domain.ProgressRecord, error)

	// ListActiveEnrollments returns up to limit contacts in active
	// campaigns whose contact status is active, with campaign and steps
	// attached, ordered by contact created_at.
	ListActiveEnrollments(ctx context.Context, limit int) ([]Enrollment, error)

	// RecordSend persists a new sent progress record for a contact/step.
	RecordSend(ctx context.Context, rec *domain.ProgressRecord) error
}
