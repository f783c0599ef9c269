// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

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
	rateLimit    func(string) func(http.Handler) http.Handler

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.With(
		a.authenticate,
		a.authz.RequireSubscription(authorization.WriteGate),
		a.authz.RequireRoles(types.RoleOwner, types.RoleManager),
	).Post("/invites", a.create)

	mux.With(a.rateLimit("invites_accept")).Post("/invites/accept", a.accept)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.GetPrincipal(r.Context())
	if !ok {
		httptypes.WriteError(w, types.ErrNotAuthenticated, a.logger)
		return
	}

	req := new(CreateInviteRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	invite, err := a.service.CreateInvite(r.Context(), p, req.Email)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, invite, a.logger)
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	req := new(AcceptInviteRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	email, err := a.service.AcceptInvite(r.Context(), req.Token, req.Password)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, AcceptInviteResponse{OK: true, Email: email}, a.logger)
}

func NewAPI(
	service ServiceInterface,
	authz AuthorizerInterface,
	authenticate func(http.Handler) http.Handler,
	rateLimit func(string) func(http.Handler) http.Handler,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		rateLimit:    rateLimit,
		logger:       logger,
	}
}
