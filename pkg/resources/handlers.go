// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

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

// RegisterEndpoints mounts CRUD routes for every resource in All.
func (a *API) RegisterEndpoints(mux chi.Router) {
	for _, res := range All {
		mux.Route("/api/"+res.Name, func(r chi.Router) {
			r.Use(a.authenticate)

			r.Group(func(r chi.Router) {
				r.Use(
					a.authz.RequireSubscription(authorization.ReadGate),
					a.authz.RequireRoles(types.RoleOwner, types.RoleManager, types.RoleStaff),
				)
				r.Get("/", a.list(res))
				r.Get("/{id}", a.get(res))
			})

			r.Group(func(r chi.Router) {
				r.Use(
					a.authz.RequireSubscription(authorization.WriteGate),
					a.authz.RequireRoles(types.RoleOwner, types.RoleManager),
				)
				r.Post("/", a.create(res))
				r.Put("/{id}", a.update(res))
				r.Delete("/{id}", a.delete(res))
			})
		})
	}
}

func (a *API) list(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := authentication.GetPrincipal(r.Context())

		records, err := a.service.List(r.Context(), p.OrgID, res, httptypes.QueryInt(r, "page"), httptypes.QueryInt(r, "size"))
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		httptypes.WriteJSON(w, http.StatusOK, records, a.logger)
	}
}

func (a *API) get(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := authentication.GetPrincipal(r.Context())

		id, err := httptypes.PathID(r, "id")
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		record, err := a.service.Get(r.Context(), p.OrgID, res, id)
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		httptypes.WriteJSON(w, http.StatusOK, record, a.logger)
	}
}

func (a *API) create(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := authentication.GetPrincipal(r.Context())

		payload, err := httptypes.DecodeObject(r)
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		record, err := a.service.Create(r.Context(), p.OrgID, res, payload)
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		httptypes.WriteJSON(w, http.StatusCreated, record, a.logger)
	}
}

func (a *API) update(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := authentication.GetPrincipal(r.Context())

		id, err := httptypes.PathID(r, "id")
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		payload, err := httptypes.DecodeObject(r)
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		record, err := a.service.Update(r.Context(), p.OrgID, res, id, payload)
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		httptypes.WriteJSON(w, http.StatusOK, record, a.logger)
	}
}

func (a *API) delete(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := authentication.GetPrincipal(r.Context())

		id, err := httptypes.PathID(r, "id")
		if err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		if err := a.service.Delete(r.Context(), p.OrgID, res, id); err != nil {
			httptypes.WriteError(w, err, a.logger)
			return
		}

		httptypes.WriteJSON(w, http.StatusOK, httptypes.OKResponse{OK: true}, a.logger)
	}
}

func NewAPI(service ServiceInterface, authz AuthorizerInterface, authenticate func(http.Handler) http.Handler, logger logging.LoggerInterface) *API {
	return &API{
		service:      service,
		authz:        authz,
		authenticate: authenticate,
		logger:       logger,
	}
}
