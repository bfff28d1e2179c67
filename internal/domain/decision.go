package domain

import (
	"time"
)

// DecisionOutcome is the binary result of one engine evaluation.
type DecisionOutcome string

const (
	OutcomeSend DecisionOutcome = "send"
	OutcomeSkip DecisionOutcome = "skip"
)

// SkipReason is the closed set of reasons a contact is skipped on a
// given tick. Callers must be able to distinguish "will never send
// again" (terminal reasons) from "will likely send on a later tick"
// (not_due, outside_business_hours) without string matching, so free
// text is never used here.
type SkipReason string

const (
	SkipCampaignNotActive SkipReason = "campaign_not_active"
	SkipUnsubscribed      SkipReason = "unsubscribed"
	SkipBounced           SkipReason = "bounced"
	SkipReplied           SkipReason = "replied"
	SkipCompletedStatus   SkipReason = "completed_status"
	SkipSequenceComplete  SkipReason = "sequence_complete"
	SkipNotDue            SkipReason = "not_due"
	SkipOutsideHours      SkipReason = "outside_business_hours"
	SkipCalculationError  SkipReason = "calculation_error"
)

// IsTerminal reports whether the reason means the contact will never be
// sent to again (as opposed to a transient timing skip).
func (r SkipReason) IsTerminal() bool {
	switch r {
	case SkipCampaignNotActive, SkipUnsubscribed, SkipBounced, SkipReplied,
		SkipCompletedStatus, SkipSequenceComplete, SkipCalculationError:
		return true
	}
	return false
}

// Decision is the engine's per-contact output for one evaluation. It is
// constructed fresh per call and has no identity beyond the call that
// produced it; the runner turns SEND decisions into actual sends and
// new ProgressRecords.
type Decision struct {
	ContactID string          `json:"contact_id"`
	Outcome   DecisionOutcome `json:"outcome"`

	// StepNumber is set only for SEND decisions.
	StepNumber int `json:"step_number,omitempty"`

	// Reason is set only for SKIP decisions.
	Reason SkipReason `json:"reason,omitempty"`

	// DueAt is the computed due time, populated when the timing
	// calculation ran (SEND and not_due skips). Useful detail for
	// operators chasing "why didn't this send yet".
	DueAt *time.Time `json:"due_at,omitempty"`

	// TimezoneFallback flags that the contact's timezone hint could not
	// be resolved and UTC business hours were assumed.
	TimezoneFallback bool `json:"timezone_fallback,omitempty"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}
