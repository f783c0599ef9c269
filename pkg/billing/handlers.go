// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/property-service/internal/authorization"
	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

type API struct {
	service      ServiceInterface
	authz        AuthorizerInterface
	authenticate func(http.Handler) http.Handler

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Route("/billing", func(r chi.Router) {
		r.Use(a.authenticate)

		r.With(a.authz.RequireSubscription(authorization.ReadGate)).Get("/subscription", a.subscription)
		r.With(
			a.authz.RequireSubscription(authorization.ReadGate),
			a.authz.RequireRoles(types.RoleOwner, types.RoleManager),
		).Get("/usage", a.usage)
		r.With(a.authz.RequireRoles(types.RoleOwner)).Post("/plan", a.changePlan)
	})
}

func (a *API) subscription(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	sub, err := a.service.GetSubscription(r.Context(), p.OrgID)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, sub, a.logger)
}

func (a *API) usage(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	usage, err := a.service.GetUsage(r.Context(), p.OrgID)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, usage, a.logger)
}

func (a *API) changePlan(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	req := new(ChangePlanRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	sub, err := a.service.ChangePlan(r.Context(), p.OrgID, req.PlanType)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, sub, a.logger)
}

func NewAPI(service ServiceInterface, authz AuthorizerInterface, authenticate func(http.Handler) http.Handler, logger logging.LoggerInterface) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		logger:       logger,
	}
}
