// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"time"
)

// SessionCookie writes and clears the cookie carrying the session token.
type SessionCookie struct {
	name   string
	maxAge time.Duration
	secure bool
}

func (c *SessionCookie) Name() string {
	return c.name
}

func (c *SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// NewSessionCookie configures the session cookie. Secure defaults to off so
// plain http deployments work, production setups should enable it.
func NewSessionCookie(name string, maxAge time.Duration, secure bool) *SessionCookie {
	return &SessionCookie{name: name, maxAge: maxAge, secure: secure}
}
