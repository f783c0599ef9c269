// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"go.uber.org/mock/gomock"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package notification -destination ./mock_interfaces.go -source=./interfaces.go

func TestSESNotifier_SendInvite(t *testing.T) {
	tests := []struct {
		name        string
		sendErr     error
		expectedErr bool
	}{
		{name: "delivered"},
		{name: "ses failure", sendErr: errors.New("throttled"), expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockSESClientInterface(ctrl)
			mockClient.EXPECT().
				SendEmail(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
					if aws.ToString(in.Source) != "noreply@example.com" {
						t.Errorf("unexpected source %q", aws.ToString(in.Source))
					}
					if len(in.Destination.ToAddresses) != 1 || in.Destination.ToAddresses[0] != "tenant@example.com" {
						t.Errorf("unexpected destination %v", in.Destination.ToAddresses)
					}
					if !strings.Contains(aws.ToString(in.Message.Body.Text.Data), "https://app.example.com/accept-invite?token=abc") {
						t.Error("expected invite url in body")
					}
					return &ses.SendEmailOutput{MessageId: aws.String("id")}, tt.sendErr
				})

			n := NewSESNotifier(mockClient, "noreply@example.com", tracing.NewNoopTracer(), logging.NewNoopLogger())

			err := n.SendInvite(context.Background(), "tenant@example.com", "https://app.example.com/accept-invite?token=abc")
			if (err != nil) != tt.expectedErr {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestNewNotifier(t *testing.T) {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()

	n, err := NewNotifier(context.Background(), BackendLog, "", tracer, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*LogNotifier); !ok {
		t.Errorf("expected log notifier, got %T", n)
	}
	if err := n.SendInvite(context.Background(), "a@example.com", "url"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := NewNotifier(context.Background(), BackendSES, "", tracer, logger); err == nil {
		t.Error("expected error without sender address")
	}

	if _, err := NewNotifier(context.Background(), "pigeon", "", tracer, logger); err == nil {
		t.Error("expected error for unknown backend")
	}
}
