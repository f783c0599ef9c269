// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionCookie(t *testing.T) {
	c := NewSessionCookie("hr_token", 30*24*time.Hour, false)

	rr := httptest.NewRecorder()
	c.Set(rr, "abc")

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	got := cookies[0]
	if got.Name != "hr_token" || got.Value != "abc" {
		t.Errorf("unexpected cookie %s=%s", got.Name, got.Value)
	}
	if !got.HttpOnly || got.Secure || got.SameSite != http.SameSiteLaxMode {
		t.Errorf("unexpected cookie flags %+v", got)
	}
	if got.MaxAge != 2592000 || got.Path != "/" {
		t.Errorf("unexpected max age %d or path %q", got.MaxAge, got.Path)
	}

	rr = httptest.NewRecorder()
	c.Clear(rr)

	cleared := rr.Result().Cookies()[0]
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("expected cookie to be cleared, got %+v", cleared)
	}
}
