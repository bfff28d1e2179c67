package sequence

import (
	"context"
	"fmt"

	"github.com/ignite/outreach-scheduler/internal/domain"
	"github.com/ignite/outreach-scheduler/internal/schedule"
)

// DefaultPageSize bounds how many enrollments one evaluation pass pulls.
const DefaultPageSize = 50

// Service assembles snapshots from the repository and evaluates them
// with the decision engine. Safe for concurrent use if the repository
// is.
type Service struct {
	repo   Repository
	engine *schedule.Engine
}

// NewService creates a sequence service. A nil engine gets a real-clock
// engine.
func NewService(repo Repository, engine *schedule.Engine) *Service {
	if engine == nil {
		engine = schedule.NewEngine(nil)
	}
	return &Service{repo: repo, engine: engine}
}

// EvaluateContact loads one contact's snapshot and returns the engine's
// decision for it.
func (s *Service) EvaluateContact(ctx context.Context, contactID string) (domain.Decision, error) {
	contact, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return domain.Decision{}, err
	}

	campaign, err := s.repo.GetCampaign(ctx, contact.CampaignID)
	if err != nil {
		return domain.Decision{}, err
	}

	steps, err := s.repo.ListSteps(ctx, campaign.ID)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("list steps: %w", err)
	}

	progress, err := s.repo.ListProgress(ctx, contactID)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("list progress: %w", err)
	}

	return s.engine.Evaluate(*contact, *campaign, steps, progress), nil
}

// EvaluatePage evaluates up to limit active enrollments and returns one
// decision per contact, in enrollment order. Snapshot loading errors
// for a single contact surface as calculation_error skips so one bad
// row cannot stall the page.
func (s *Service) EvaluatePage(ctx context.Context, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	enrollments, err := s.repo.ListActiveEnrollments(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	decisions := make([]domain.Decision, 0, len(enrollments))
	for _, e := range enrollments {
		if ctx.Err() != nil {
			return decisions, ctx.Err()
		}
		decisions = append(decisions, s.Evaluate(ctx, e))
	}
	return decisions, nil
}

// Evaluate runs the engine for one pre-loaded enrollment, fetching only
// the progress records.
func (s *Service) Evaluate(ctx context.Context, e Enrollment) domain.Decision {
	progress, err := s.repo.ListProgress(ctx, e.Contact.ID)
	if err != nil {
		return domain.Decision{
			ContactID: e.Contact.ID,
			Outcome:   domain.OutcomeSkip,
			Reason:    domain.SkipCalculationError,
		}
	}
	return s.engine.Evaluate(e.Contact, e.Campaign, e.Steps, progress)
}
