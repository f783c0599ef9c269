// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/property-service/internal/authorization"
	"github.com/canonical/property-service/internal/db"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/notification"
	"github.com/canonical/property-service/internal/ratelimit"
	"github.com/canonical/property-service/internal/storage"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/pkg/account"
	"github.com/canonical/property-service/pkg/authentication"
	"github.com/canonical/property-service/pkg/billing"
	"github.com/canonical/property-service/pkg/invites"
	"github.com/canonical/property-service/pkg/maintenance"
	"github.com/canonical/property-service/pkg/metrics"
	"github.com/canonical/property-service/pkg/resources"
	"github.com/canonical/property-service/pkg/status"
	"github.com/canonical/property-service/pkg/tenantportal"
	"github.com/canonical/property-service/pkg/users"
	"github.com/canonical/property-service/pkg/webhooks"
)

// Config holds the knobs of the HTTP surface that come from the environment.
type Config struct {
	CookieName     string
	CookieSecure   bool
	TokenLifetime  time.Duration
	TrialPeriod    time.Duration
	InviteTTL      time.Duration
	InviteBaseURL  string
	WebhookSecret  string
	AllowedOrigins []string
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	tokens authentication.TokenServiceInterface,
	hasher authentication.PasswordHasherInterface,
	notifier notification.NotifierInterface,
	limiter ratelimit.LimiterInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.AllowedOrigins),
		db.TransactionMiddleware(dbClient, logger),
	)

	router.Use(middlewares...)

	authorizer := authorization.NewAuthorizer(s, cfg.TrialPeriod, tracer, monitor, logger)
	authenticate := authentication.NewMiddleware(tokens, s, cfg.CookieName, tracer, monitor, logger).Authenticate()
	cookie := authentication.NewSessionCookie(cfg.CookieName, cfg.TokenLifetime, cfg.CookieSecure)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	account.NewAPI(
		account.NewService(s, dbClient, hasher, tokens, cfg.TrialPeriod, tracer, monitor, logger),
		cookie,
		authenticate,
		limiter.Middleware,
		logger,
	).RegisterEndpoints(router)

	invites.NewAPI(
		invites.NewService(s, dbClient, hasher, notifier, cfg.InviteTTL, cfg.InviteBaseURL, tracer, monitor, logger),
		authorizer,
		authenticate,
		limiter.Middleware,
		logger,
	).RegisterEndpoints(router)

	users.NewAPI(
		users.NewService(s, hasher, tracer, monitor, logger),
		authorizer,
		authenticate,
		logger,
	).RegisterEndpoints(router)

	billing.NewAPI(
		billing.NewService(s, cfg.TrialPeriod, tracer, monitor, logger),
		authorizer,
		authenticate,
		logger,
	).RegisterEndpoints(router)

	webhooks.NewAPI(
		webhooks.NewService(s, tracer, monitor, logger),
		cfg.WebhookSecret,
		logger,
	).RegisterEndpoints(router)

	resources.NewAPI(
		resources.NewService(s, tracer, monitor, logger),
		authorizer,
		authenticate,
		logger,
	).RegisterEndpoints(router)

	maintenance.NewAPI(
		maintenance.NewService(s, tracer, monitor, logger),
		authorizer,
		authenticate,
		logger,
	).RegisterEndpoints(router)

	tenantportal.NewAPI(
		tenantportal.NewService(s, tracer, monitor, logger),
		authorizer,
		authenticate,
		logger,
	).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
