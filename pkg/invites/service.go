// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

const (
	tokenBytes        = 32
	MinPasswordLength = 8
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	tx       TxInterface
	hasher   authentication.PasswordHasherInterface
	notifier NotifierInterface

	ttl     time.Duration
	baseURL string

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateInvite attaches a fresh single use token to the organization member
// with that email, creating an inactive tenant account when there is none.
// Only inactive tenant accounts can be re-invited, replacing any outstanding
// invite; anyone else already holding the email is a Conflict.
func (s *Service) CreateInvite(ctx context.Context, p *types.Principal, email string) (*Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.CreateInvite")
	defer span.End()

	if !p.HasRole(types.RoleOwner, types.RoleManager) {
		return nil, fmt.Errorf("%w: only owners and managers can invite", types.ErrForbidden)
	}

	email = strings.ToLower(strings.TrimSpace(email))

	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.storage.GetUserByEmailInOrg(ctx, p.OrgID, email)
		switch {
		case errors.Is(err, types.ErrNotFound):
			user, err = s.createPlaceholder(ctx, p, email)
			if err != nil {
				return err
			}
		case err != nil:
			return err
		case user.IsActive || !strings.EqualFold(user.Role, types.RoleTenant):
			s.logger.Security().AuthzFailure(p.UserID, "invite:"+user.ID)
			return fmt.Errorf("%w: %s already has an account", types.ErrConflict, email)
		}

		return s.storage.SetInvite(ctx, p.OrgID, user.ID, token, s.now().Add(s.ttl))
	})
	if err != nil {
		return nil, err
	}

	inviteURL := s.inviteURL(token)

	if err := s.notifier.SendInvite(ctx, email, inviteURL); err != nil {
		s.logger.Warnf("failed to deliver invitation to %s: %v", email, err)
	}

	return &Invite{InviteURL: inviteURL, Email: email}, nil
}

func (s *Service) createPlaceholder(ctx context.Context, p *types.Principal, email string) (*types.User, error) {
	secret, err := randomToken()
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.CreateUser(ctx, &types.User{
		OrgID:        p.OrgID,
		Email:        email,
		PasswordHash: digest,
		Role:         types.RoleTenant,
		IsActive:     false,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().UserCreated(p.UserID, user.ID)

	return user, nil
}

// AcceptInvite sets the password of the invited user and activates it. The
// token is consumed atomically so it can only be redeemed once.
func (s *Service) AcceptInvite(ctx context.Context, token, password string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.AcceptInvite")
	defer span.End()

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", types.ErrInvalid, MinPasswordLength)
	}

	if token == "" {
		return "", fmt.Errorf("%w: token is required", types.ErrInvalid)
	}

	var email string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.storage.GetUserByInviteToken(ctx, token)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("%w: invite", types.ErrNotFound)
			}
			return err
		}

		if user.InviteExpiresAt == nil || s.now().After(*user.InviteExpiresAt) {
			return fmt.Errorf("%w: invite", types.ErrExpired)
		}

		digest, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		if err := s.storage.ConsumeInvite(ctx, user.ID, token, digest); err != nil {
			return err
		}

		s.logger.Security().UserUpdated(user.ID, user.ID)
		email = user.Email

		return nil
	})
	if err != nil {
		return "", err
	}

	return email, nil
}

func (s *Service) inviteURL(token string) string {
	return strings.TrimRight(s.baseURL, "/") + "/accept-invite?token=" + url.QueryEscape(token)
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func NewService(
	storage StorageInterface,
	tx TxInterface,
	hasher authentication.PasswordHasherInterface,
	notifier NotifierInterface,
	ttl time.Duration,
	baseURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		tx:       tx,
		hasher:   hasher,
		notifier: notifier,
		ttl:      ttl,
		baseURL:  baseURL,
		now:      func() time.Time { return time.Now().UTC() },
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
