// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notification

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type NotifierInterface interface {
	SendInvite(ctx context.Context, email, inviteURL string) error
}

// SESClientInterface is the subset of the SES API used to deliver mail.
type SESClientInterface interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}
