// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/tracing"
)

const (
	BackendLog = "log"
	BackendSES = "ses"

	inviteSubject = "You have been invited"
	inviteBody    = "You have been invited to join your property manager's portal.\n\nSet your password here: %s\n\nThe link expires soon and can only be used once.\n"
)

var (
	_ NotifierInterface = (*LogNotifier)(nil)
	_ NotifierInterface = (*SESNotifier)(nil)
)

// LogNotifier writes invitations to the service log instead of delivering them.
type LogNotifier struct {
	logger logging.LoggerInterface
}

func (n *LogNotifier) SendInvite(_ context.Context, email, inviteURL string) error {
	n.logger.Infof("invitation for %s: %s", email, inviteURL)
	return nil
}

func NewLogNotifier(logger logging.LoggerInterface) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SESNotifier delivers invitations through Amazon SES.
type SESNotifier struct {
	client      SESClientInterface
	fromAddress string

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (n *SESNotifier) SendInvite(ctx context.Context, email, inviteURL string) error {
	ctx, span := n.tracer.Start(ctx, "notification.SESNotifier.SendInvite")
	defer span.End()

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &sestypes.Destination{
			ToAddresses: []string{email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data:    aws.String(inviteSubject),
				Charset: aws.String("UTF-8"),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data:    aws.String(fmt.Sprintf(inviteBody, inviteURL)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send invitation to %s: %w", email, err)
	}

	return nil
}

func NewSESNotifier(client SESClientInterface, fromAddress string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *SESNotifier {
	return &SESNotifier{
		client:      client,
		fromAddress: fromAddress,
		tracer:      tracer,
		logger:      logger,
	}
}

// NewNotifier picks the delivery backend. SES credentials and region come
// from the default AWS configuration chain.
func NewNotifier(ctx context.Context, backend, fromAddress string, tracer tracing.TracingInterface, logger logging.LoggerInterface) (NotifierInterface, error) {
	switch backend {
	case "", BackendLog:
		return NewLogNotifier(logger), nil
	case BackendSES:
		if fromAddress == "" {
			return nil, fmt.Errorf("ses notifier requires a sender address")
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}

		return NewSESNotifier(ses.NewFromConfig(cfg), fromAddress, tracer, logger), nil
	default:
		return nil, fmt.Errorf("unsupported notification backend %q", backend)
	}
}
