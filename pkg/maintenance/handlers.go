// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package maintenance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/property-service/internal/authorization"
	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/pkg/authentication"
)

type API struct {
	service      ServiceInterface
	authz        AuthorizerInterface
	authenticate func(http.Handler) http.Handler

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Route("/api/maintenance", func(r chi.Router) {
		r.Use(a.authenticate)

		r.With(a.authz.RequireSubscription(authorization.ReadGate)).Get("/", a.list)

		r.Group(func(r chi.Router) {
			r.Use(a.authz.RequireSubscription(authorization.WriteGate))
			r.Post("/", a.create)
			r.Put("/{id}", a.update)
			r.Delete("/{id}", a.delete)
		})
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	requests, err := a.service.List(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, requests, a.logger)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	req := new(CreateRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	mr, err := a.service.Create(r.Context(), p, req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, mr, a.logger)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	id, err := httptypes.PathID(r, "id")
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	req := new(UpdateRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	mr, err := a.service.Update(r.Context(), p, id, req)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, mr, a.logger)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	p, _ := authentication.GetPrincipal(r.Context())

	id, err := httptypes.PathID(r, "id")
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if err := a.service.Delete(r.Context(), p, id); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.OKResponse{OK: true}, a.logger)
}

func NewAPI(service ServiceInterface, authz AuthorizerInterface, authenticate func(http.Handler) http.Handler, logger logging.LoggerInterface) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		logger:       logger,
	}
}
