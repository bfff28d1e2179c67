package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ignite/outreach-scheduler/internal/domain"
)

// AuditExporter archives each tick's decision list to S3 as a JSON
// blob, keyed by UTC day. The archive is how operators replay "what did
// the engine decide and why" without trawling database state.
type AuditExporter struct {
	s3Client *s3.Client
	bucket   string
}

// auditBatch is the persisted shape of one tick's decisions.
type auditBatch struct {
	ExportedAt time.Time         `json:"exported_at"`
	Decisions  []domain.Decision `json:"decisions"`
}

// NewAuditExporter creates an S3-backed audit exporter.
func NewAuditExporter(ctx context.Context, bucket, region string) (*AuditExporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &AuditExporter{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucket,
	}, nil
}

// Export writes one batch of decisions. Keys look like
// audit/2026-03-04/9f1c7d2e.json.
func (a *AuditExporter) Export(ctx context.Context, decisions []domain.Decision) error {
	if len(decisions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	body, err := json.Marshal(auditBatch{ExportedAt: now, Decisions: decisions})
	if err != nil {
		return fmt.Errorf("marshal audit batch: %w", err)
	}

	key := fmt.Sprintf("audit/%s/%s.json", now.Format("2006-01-02"), uuid.New().String()[:8])
	_, err = a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put audit object %s: %w", key, err)
	}
	return nil
}
