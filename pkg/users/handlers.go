// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

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
	mux.Route("/users", func(r chi.Router) {
		r.Use(a.authenticate)

		r.With(
			a.authz.RequireSubscription(authorization.ReadGate),
			a.authz.RequireRoles(types.RoleOwner, types.RoleManager),
		).Get("/", a.list)

		r.Group(func(r chi.Router) {
			r.Use(
				a.authz.RequireSubscription(authorization.WriteGate),
				a.authz.RequireRoles(types.RoleOwner),
			)
			r.Post("/", a.create)
			r.Post("/{id}/deactivate", a.deactivate)
		})
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	users, err := a.service.ListUsers(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, users, a.logger)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	req := new(CreateUserRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	user, err := a.service.CreateUser(r.Context(), p, req.Email, req.Password, req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, user, a.logger)
}

func (a *API) deactivate(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	user, err := a.service.DeactivateUser(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, user, a.logger)
}

func NewAPI(service ServiceInterface, authz AuthorizerInterface, authenticate func(http.Handler) http.Handler, logger logging.LoggerInterface) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		logger:       logger,
	}
}
