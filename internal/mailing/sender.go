package mailing

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/ignite/outreach-scheduler/internal/config"
	"github.com/ignite/outreach-scheduler/internal/domain"
)

// SESSender dispatches rendered steps through AWS SES v2, rotating the
// From address across the configured sender pool.
type SESSender struct {
	client    *sesv2.Client
	templates *TemplateService
	fromName  string
	addresses []string
}

// NewSESSender creates an SES-backed sender from app config.
func NewSESSender(ctx context.Context, cfg appconfig.SESConfig) (*SESSender, error) {
	if len(cfg.FromAddresses) == 0 {
		return nil, fmt.Errorf("no from addresses configured")
	}

	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKey,
		cfg.SecretKey,
		"", // session token (empty for static creds)
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESSender{
		client:    sesv2.NewFromConfig(awsCfg),
		templates: NewTemplateService(),
		fromName:  cfg.FromName,
		addresses: cfg.FromAddresses,
	}, nil
}

// Send renders and dispatches one step to one contact. senderIndex
// picks the From identity; indices past the pool wrap.
func (s *SESSender) Send(ctx context.Context, contact domain.Contact, step domain.SequenceStep, senderIndex int) error {
	subject, body, err := s.templates.RenderStep(contact, step, senderIndex)
	if err != nil {
		return err
	}

	from := s.addresses[senderIndex%len(s.addresses)]
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, from)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{contact.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", contact.Email, err)
	}

	log.Printf("[SESSender] sent contact=%s step=%d message_id=%s", contact.ID, step.StepNumber, aws.ToString(out.MessageId))
	return nil
}
