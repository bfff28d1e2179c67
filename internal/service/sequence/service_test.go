package sequence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ignite/outreach-scheduler/internal/domain"
	"github.com/ignite/outreach-scheduler/internal/schedule"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
)

// memRepo is an in-memory sequence repository for unit testing.
type memRepo struct {
	mu        sync.Mutex
	contacts  map[string]*domain.Contact
	campaigns map[string]*domain.Campaign
	steps     map[string][]domain.SequenceStep   // keyed by campaign id
	progress  map[string][]domain.ProgressRecord // keyed by contact id
}

func newMemRepo() *memRepo {
	return &memRepo{
		contacts:  make(map[string]*domain.Contact),
		campaigns: make(map[string]*domain.Campaign),
		steps:     make(map[string][]domain.SequenceStep),
		progress:  make(map[string][]domain.ProgressRecord),
	}
}

func (m *memRepo) GetContact(_ context.Context, id string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok {
		return nil, sequence.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, sequence.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) ListSteps(_ context.Context, campaignID string) ([]domain.SequenceStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SequenceStep(nil), m.steps[campaignID]...), nil
}

func (m *memRepo) ListProgress(_ context.Context, contactID string) ([]domain.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ProgressRecord(nil), m.progress[contactID]...), nil
}

func (m *memRepo) ListActiveEnrollments(_ context.Context, limit int) ([]sequence.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sequence.Enrollment
	for _, c := range m.contacts {
		if len(out) >= limit {
			break
		}
		if c.Status != domain.ContactActive {
			continue
		}
		camp, ok := m.campaigns[c.CampaignID]
		if !ok || camp.Status != domain.CampaignActive {
			continue
		}
		out = append(out, sequence.Enrollment{
			Contact:  *c,
			Campaign: *camp,
			Steps:    append([]domain.SequenceStep(nil), m.steps[camp.ID]...),
		})
	}
	return out, nil
}

func (m *memRepo) RecordSend(_ context.Context, rec *domain.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[rec.ContactID] = append(m.progress[rec.ContactID], *rec)
	return nil
}

// now is a Wednesday instant safely inside UTC business hours and past
// every jitter slot.
var now = time.Date(2026, 3, 4, 16, 59, 30, 0, time.UTC)

func seedRepo() *memRepo {
	repo := newMemRepo()
	repo.campaigns["camp-1"] = &domain.Campaign{
		ID: "camp-1", Status: domain.CampaignActive, DailyCap: 100, SenderPool: 2,
	}
	repo.steps["camp-1"] = []domain.SequenceStep{
		{CampaignID: "camp-1", StepNumber: 1, DelayDays: 0, Subject: "intro"},
		{CampaignID: "camp-1", StepNumber: 2, DelayDays: 3, Subject: "follow-up"},
	}
	repo.contacts["contact-1"] = &domain.Contact{
		ID: "contact-1", CampaignID: "camp-1", Email: "a@example.com",
		TimezoneHint: "UTC", Status: domain.ContactActive,
		CreatedAt: now.Add(-2 * time.Hour),
	}
	return repo
}

func fixedService(repo sequence.Repository) *sequence.Service {
	return sequence.NewService(repo, schedule.NewEngine(schedule.FixedClock{T: now}))
}

func TestEvaluateContact_Send(t *testing.T) {
	svc := fixedService(seedRepo())

	d, err := svc.EvaluateContact(context.Background(), "contact-1")
	if err != nil {
		t.Fatalf("EvaluateContact: %v", err)
	}
	if d.Outcome != domain.OutcomeSend || d.StepNumber != 1 {
		t.Errorf("got (%s, step %d, reason %s), want (send, step 1)", d.Outcome, d.StepNumber, d.Reason)
	}
}

func TestEvaluateContact_NotFound(t *testing.T) {
	svc := fixedService(seedRepo())

	if _, err := svc.EvaluateContact(context.Background(), "missing"); err != sequence.ErrContactNotFound {
		t.Errorf("err = %v, want ErrContactNotFound", err)
	}
}

func TestEvaluateContact_UsesProgress(t *testing.T) {
	repo := seedRepo()
	repo.progress["contact-1"] = []domain.ProgressRecord{{
		ContactID: "contact-1", StepNumber: 1,
		Status: domain.ProgressSent, SentAt: now.AddDate(0, 0, -4),
	}}
	svc := fixedService(repo)

	d, err := svc.EvaluateContact(context.Background(), "contact-1")
	if err != nil {
		t.Fatalf("EvaluateContact: %v", err)
	}
	if d.Outcome != domain.OutcomeSend || d.StepNumber != 2 {
		t.Errorf("got (%s, step %d, reason %s), want (send, step 2)", d.Outcome, d.StepNumber, d.Reason)
	}
}

func TestEvaluatePage(t *testing.T) {
	repo := seedRepo()
	repo.contacts["contact-2"] = &domain.Contact{
		ID: "contact-2", CampaignID: "camp-1",
		TimezoneHint: "UTC", Status: domain.ContactReplied,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	// Terminal contacts are filtered by the enrollment query, so the
	// page only carries contact-1.
	svc := fixedService(repo)

	decisions, err := svc.EvaluatePage(context.Background(), 10)
	if err != nil {
		t.Fatalf("EvaluatePage: %v", err)
	}
	if len(decisions) != 1 {
		t.Fatalf("got %d decisions, want 1", len(decisions))
	}
	if decisions[0].ContactID != "contact-1" || decisions[0].Outcome != domain.OutcomeSend {
		t.Errorf("unexpected decision %+v", decisions[0])
	}
}

func TestEvaluatePage_RespectsLimit(t *testing.T) {
	repo := seedRepo()
	for _, id := range []string{"contact-2", "contact-3", "contact-4"} {
		repo.contacts[id] = &domain.Contact{
			ID: id, CampaignID: "camp-1",
			TimezoneHint: "UTC", Status: domain.ContactActive,
			CreatedAt: now.Add(-2 * time.Hour),
		}
	}
	svc := fixedService(repo)

	decisions, err := svc.EvaluatePage(context.Background(), 2)
	if err != nil {
		t.Fatalf("EvaluatePage: %v", err)
	}
	if len(decisions) != 2 {
		t.Errorf("got %d decisions, want 2", len(decisions))
	}
}
