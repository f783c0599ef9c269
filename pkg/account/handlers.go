// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
	"github.com/canonical/property-service/pkg/authentication"
)

const tokenType = "bearer"

type API struct {
	service      ServiceInterface
	cookie       *authentication.SessionCookie
	authenticate func(http.Handler) http.Handler
	rateLimit    func(string) func(http.Handler) http.Handler

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.With(a.rateLimit("bootstrap")).Post("/auth/bootstrap", a.bootstrap)
	mux.With(a.rateLimit("login")).Post("/auth/login", a.login)
	mux.Post("/auth/logout", a.logout)
	mux.With(a.authenticate).Get("/auth/me", a.me)
}

func (a *API) bootstrap(w http.ResponseWriter, r *http.Request) {
	req := new(BootstrapRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	token, err := a.service.Bootstrap(r.Context(), req.OrgName, req.Email, req.Password)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.cookie.Set(w, token)
	httptypes.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: tokenType}, a.logger)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	req := new(LoginRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	token, err := a.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	a.cookie.Set(w, token)
	httptypes.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: tokenType}, a.logger)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.cookie.Clear(w)
	httptypes.WriteJSON(w, http.StatusOK, httptypes.OKResponse{OK: true}, a.logger)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.GetPrincipal(r.Context())
	if !ok {
		httptypes.WriteError(w, types.ErrNotAuthenticated, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, MeResponse{ID: p.UserID, Email: p.Email, Role: p.Role, OrgID: p.OrgID}, a.logger)
}

func NewAPI(
	service ServiceInterface,
	cookie *authentication.SessionCookie,
	authenticate func(http.Handler) http.Handler,
	rateLimit func(string) func(http.Handler) http.Handler,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:      service,
		cookie:       cookie,
		authenticate: authenticate,
		rateLimit:    rateLimit,
		logger:       logger,
	}
}
