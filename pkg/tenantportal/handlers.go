// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantportal

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
	mux.Route("/api/tenant", func(r chi.Router) {
		r.Use(
			a.authenticate,
			a.authz.RequireSubscription(authorization.ReadGate),
			a.authz.RequireRoles(types.RoleTenant),
		)
		r.Get("/me", a.me)
	})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	profile, err := a.service.Me(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, profile, a.logger)
}

func NewAPI(service ServiceInterface, authz AuthorizerInterface, authenticate func(http.Handler) http.Handler, logger logging.LoggerInterface) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		logger:       logger,
	}
}
