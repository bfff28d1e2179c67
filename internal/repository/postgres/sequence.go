package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/outreach-scheduler/internal/domain"
	"github.com/ignite/outreach-scheduler/internal/service/sequence"
)

// SequenceRepo implements sequence.Repository against PostgreSQL.
type SequenceRepo struct{ db *sql.DB }

// NewSequenceRepo creates a Postgres-backed sequence repository.
func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

func (r *SequenceRepo) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, email, COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(company,''), COALESCE(timezone_hint,''), status, created_at, updated_at
		FROM outreach_contacts
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.CampaignID, &c.Email, &c.FirstName, &c.LastName,
		&c.Company, &c.TimezoneHint, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sequence.ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *SequenceRepo) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, status, daily_cap, sender_pool, created_at, updated_at
		FROM outreach_campaigns
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Status, &c.DailyCap, &c.SenderPool, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, sequence.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *SequenceRepo) ListSteps(ctx context.Context, campaignID string) ([]domain.SequenceStep, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT campaign_id, step_number, delay_days, COALESCE(subject,''), COALESCE(body,'')
		FROM outreach_sequence_steps
		WHERE campaign_id = $1
		ORDER BY step_number ASC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var out []domain.SequenceStep
	for rows.Next() {
		var s domain.SequenceStep
		if err := rows.Scan(&s.CampaignID, &s.StepNumber, &s.DelayDays, &s.Subject, &s.Body); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SequenceRepo) ListProgress(ctx context.Context, contactID string) ([]domain.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, contact_id, step_number, status, COALESCE(sender_id,''), sent_at
		FROM outreach_progress
		WHERE contact_id = $1
		ORDER BY sent_at ASC
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []domain.ProgressRecord
	for rows.Next() {
		var p domain.ProgressRecord
		if err := rows.Scan(&p.ID, &p.ContactID, &p.StepNumber, &p.Status, &p.SenderID, &p.SentAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SequenceRepo) ListActiveEnrollments(ctx context.Context, limit int) ([]sequence.Enrollment, error) {
	if limit <= 0 {
		limit = sequence.DefaultPageSize
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.campaign_id, c.email, COALESCE(c.first_name,''), COALESCE(c.last_name,''),
		       COALESCE(c.company,''), COALESCE(c.timezone_hint,''), c.status, c.created_at, c.updated_at,
		       p.id, p.name, p.status, p.daily_cap, p.sender_pool, p.created_at, p.updated_at
		FROM outreach_contacts c
		JOIN outreach_campaigns p ON p.id = c.campaign_id
		WHERE c.status = 'active' AND p.status = 'active'
		ORDER BY c.created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []sequence.Enrollment
	stepsByCampaign := make(map[string][]domain.SequenceStep)

	for rows.Next() {
		var e sequence.Enrollment
		if err := rows.Scan(
			&e.Contact.ID, &e.Contact.CampaignID, &e.Contact.Email, &e.Contact.FirstName,
			&e.Contact.LastName, &e.Contact.Company, &e.Contact.TimezoneHint,
			&e.Contact.Status, &e.Contact.CreatedAt, &e.Contact.UpdatedAt,
			&e.Campaign.ID, &e.Campaign.Name, &e.Campaign.Status,
			&e.Campaign.DailyCap, &e.Campaign.SenderPool,
			&e.Campaign.CreatedAt, &e.Campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Steps are loaded once per campaign, not once per contact.
	for i := range out {
		campID := out[i].Campaign.ID
		steps, ok := stepsByCampaign[campID]
		if !ok {
			steps, err = r.ListSteps(ctx, campID)
			if err != nil {
				return nil, err
			}
			stepsByCampaign[campID] = steps
		}
		out[i].Steps = steps
	}

	return out, nil
}

func (r *SequenceRepo) RecordSend(ctx context.Context, rec *domain.ProgressRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outreach_progress (id, contact_id, step_number, status, sender_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.ContactID, rec.StepNumber, rec.Status, rec.SenderID, rec.SentAt)
	if err != nil {
		return fmt.Errorf("record send: %w", err)
	}
	return nil
}
