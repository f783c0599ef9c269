// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer gates organization scoped operations on role membership and
// subscription status.
type Authorizer struct {
	subscriptions SubscriptionStorageInterface
	trialPeriod   time.Duration

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) CheckRole(ctx context.Context, p *types.Principal, roles ...string) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckRole")
	defer span.End()

	if p == nil {
		return types.ErrNotAuthenticated
	}

	if !p.HasRole(roles...) {
		a.logger.Security().AuthzFailure(p.UserID, "role:"+strings.Join(roles, ","))
		return fmt.Errorf("%w: role %q is not one of %v", types.ErrForbidden, p.Role, roles)
	}

	return nil
}

func (a *Authorizer) CheckSubscription(ctx context.Context, orgID int64, level GateLevel) (*types.Subscription, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckSubscription")
	defer span.End()

	sub, err := a.subscriptions.GetOrCreateSubscription(ctx, DefaultSubscription(orgID, a.now().Add(a.trialPeriod)), level == WriteGate)
	if err != nil {
		return nil, err
	}

	if !level.Allows(sub.Status) {
		a.logger.Security().AuthzFailure(fmt.Sprintf("org:%d", orgID), "subscription:"+level.String())
		return sub, fmt.Errorf("%w: status %s", types.ErrPaymentRequired, sub.Status)
	}

	return sub, nil
}

// RequireRoles rejects requests whose principal holds none of roles.
func (a *Authorizer) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := authentication.GetPrincipal(r.Context())

			if err := a.CheckRole(r.Context(), p, roles...); err != nil {
				httptypes.WriteError(w, err, a.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSubscription rejects requests whose organization subscription does
// not pass the gate level. It must run after authentication.
func (a *Authorizer) RequireSubscription(level GateLevel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := authentication.GetPrincipal(r.Context())
			if !ok {
				httptypes.WriteError(w, types.ErrNotAuthenticated, a.logger)
				return
			}

			if _, err := a.CheckSubscription(r.Context(), p.OrgID, level); err != nil {
				httptypes.WriteError(w, err, a.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func NewAuthorizer(subscriptions SubscriptionStorageInterface, trialPeriod time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.subscriptions = subscriptions
	a.trialPeriod = trialPeriod
	a.now = func() time.Time { return time.Now().UTC() }

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
