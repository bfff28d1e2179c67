package schedule

import (
	"errors"
	"time"

	"github.com/ignite/outreach-scheduler/internal/domain"
)

// Engine composes eligibility, timing and business-hours gating into a
// single per-contact decision. It holds no state besides the clock and
// is safe to share across goroutines.
type Engine struct {
	clock Clock
}

// NewEngine creates an engine. A nil clock means the real clock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	return &Engine{clock: clock}
}

// Evaluate runs the full decision chain for one contact snapshot at the
// current clock instant. See EvaluateAt for the ordering contract.
func (e *Engine) Evaluate(contact domain.Contact, campaign domain.Campaign, steps []domain.SequenceStep, progress []domain.ProgressRecord) domain.Decision {
	return e.EvaluateAt(contact, campaign, steps, progress, e.clock.Now())
}

// EvaluateAt evaluates the snapshot at an explicit instant. The gate
// ordering is deliberate: eligibility first (cheapest and most
// authoritative), then whether the next step is due at all, then
// whether *now* is an acceptable wall-clock moment to place the send.
// The business-hours gate looks at now, not the due instant, so a
// contact that became due at 3am local simply waits for the next
// in-hours tick instead of sending late-but-due.
func (e *Engine) EvaluateAt(contact domain.Contact, campaign domain.Campaign, steps []domain.SequenceStep, progress []domain.ProgressRecord, nowUTC time.Time) domain.Decision {
	nowUTC = nowUTC.UTC()
	d := domain.Decision{
		ContactID:   contact.ID,
		EvaluatedAt: nowUTC,
	}

	if ok, reason := Eligible(contact, campaign); !ok {
		d.Outcome = domain.OutcomeSkip
		d.Reason = reason
		return d
	}

	loc, fallback := ResolveZone(contact.TimezoneHint)
	d.TimezoneFallback = fallback

	dueUTC, nextStep, err := DueAt(contact, steps, progress, loc)
	if err != nil {
		d.Outcome = domain.OutcomeSkip
		if errors.Is(err, ErrSequenceComplete) {
			d.Reason = domain.SkipSequenceComplete
		} else {
			d.Reason = domain.SkipCalculationError
		}
		return d
	}
	d.DueAt = &dueUTC

	if nowUTC.Before(dueUTC) {
		d.Outcome = domain.OutcomeSkip
		d.Reason = domain.SkipNotDue
		return d
	}

	if !inBusinessHoursAt(nowUTC.In(loc)) {
		d.Outcome = domain.OutcomeSkip
		d.Reason = domain.SkipOutsideHours
		return d
	}

	d.Outcome = domain.OutcomeSend
	d.StepNumber = nextStep
	return d
}
