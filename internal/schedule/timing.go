package schedule

import (
	"errors"
	"time"

	"github.com/ignite/outreach-scheduler/internal/domain"
)

// Timing calculation errors. Both map to SKIP reasons, never to a
// failure of the evaluation itself.
var (
	// ErrSequenceComplete means every configured step has been sent.
	ErrSequenceComplete = errors.New("sequence complete")

	// ErrBadStepConfig means the campaign's step list is unusable
	// (empty, or step numbers are not a gapless 1..n run).
	ErrBadStepConfig = errors.New("inconsistent step configuration")
)

// DueAt computes the UTC instant at which the contact's next step
// becomes eligible, and which step that is.
//
// The step already sent count decides the next step. Step 1 is anchored
// on the contact's created_at; later steps on the previous step's send
// time (latest sent_at wins if duplicates exist). The delay is a
// calendar-day offset; the time-of-day is then overwritten with the
// contact's deterministic jitter slot expressed in loc and converted
// back to UTC.
func DueAt(contact domain.Contact, steps []domain.SequenceStep, progress []domain.ProgressRecord, loc *time.Location) (dueUTC time.Time, nextStep int, err error) {
	if err := validateSteps(steps); err != nil {
		return time.Time{}, 0, err
	}

	currentStep := sentCount(progress)
	if currentStep >= len(steps) {
		return time.Time{}, 0, ErrSequenceComplete
	}
	nextStep = currentStep + 1

	base := contact.CreatedAt
	if currentStep > 0 {
		sentAt, ok := latestSentAt(progress, currentStep)
		if !ok {
			// Sent count says we're past step currentStep but no record
			// for it exists. Snapshot is inconsistent.
			return time.Time{}, 0, ErrBadStepConfig
		}
		base = sentAt
	}

	due := base.UTC().AddDate(0, 0, steps[currentStep].DelayDays)

	hour, minute := DeriveTimeOfDay(contact.ID, nextStep)
	dueUTC = time.Date(due.Year(), due.Month(), due.Day(), hour, minute, 0, 0, loc).UTC()

	return dueUTC, nextStep, nil
}

func validateSteps(steps []domain.SequenceStep) error {
	if len(steps) == 0 {
		return ErrBadStepConfig
	}
	for i, s := range steps {
		if s.StepNumber != i+1 || s.DelayDays < 0 {
			return ErrBadStepConfig
		}
	}
	return nil
}

// sentCount counts distinct steps with a sent record. Distinct, so a
// duplicated record for one step (caller data bug) cannot push the
// cursor past steps that were never sent.
func sentCount(progress []domain.ProgressRecord) int {
	seen := make(map[int]bool, len(progress))
	for _, p := range progress {
		if p.Status == domain.ProgressSent {
			seen[p.StepNumber] = true
		}
	}
	return len(seen)
}

func latestSentAt(progress []domain.ProgressRecord, stepNumber int) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, p := range progress {
		if p.Status != domain.ProgressSent || p.StepNumber != stepNumber {
			continue
		}
		if !found || p.SentAt.After(latest) {
			latest = p.SentAt
			found = true
		}
	}
	return latest, found
}
