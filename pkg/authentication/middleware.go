// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

// Middleware resolves the caller of every protected request to an active user.
type Middleware struct {
	tokens     TokenServiceInterface
	users      UserStorageInterface
	cookieName string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			principal, err := m.Resolve(ctx, r)
			if err != nil {
				m.logger.Debugf("identity resolution failed: %v", err)
				httptypes.WriteError(w, types.ErrNotAuthenticated, m.logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

// Resolve extracts the session token from the request and maps it to an
// active user. Every failure wraps types.ErrNotAuthenticated.
func (m *Middleware) Resolve(ctx context.Context, r *http.Request) (*types.Principal, error) {
	token, found := m.getToken(r)
	if !found {
		return nil, fmt.Errorf("%w: no session token", types.ErrNotAuthenticated)
	}

	claims, err := m.tokens.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNotAuthenticated, err)
	}

	user, err := m.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNotAuthenticated, err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %s is inactive", types.ErrNotAuthenticated, user.ID)
	}

	return &types.Principal{
		UserID: user.ID,
		OrgID:  user.OrgID,
		Role:   user.Role,
		Email:  user.Email,
	}, nil
}

// getToken looks at the Authorization header first and falls back to the
// session cookie.
func (m *Middleware) getToken(r *http.Request) (string, bool) {
	if token, found := m.getBearerToken(r.Header); found {
		return token, true
	}

	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))

	return token, token != ""
}

func NewMiddleware(tokens TokenServiceInterface, users UserStorageInterface, cookieName string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tokens:     tokens,
		users:      users,
		cookieName: cookieName,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
