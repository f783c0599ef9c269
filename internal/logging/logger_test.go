// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogger(t *testing.T) {
	logger := NewLogger("DEBUG")

	if !logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestInvalidLevel(t *testing.T) {
	logger := NewLogger("invalid")

	if logger.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("expected invalid level to fall back to error")
	}
	if !logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected error level to be enabled")
	}
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newSecurityLogger(zap.New(core))

	s.SystemStartup()
	s.AuthnLoginFail("a@example.com")
	s.AuthzFailure("user-1", "invites")
	s.UserCreated("owner-1", "user-2")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	expected := []string{
		"sys_startup",
		"authn_login_fail:a@example.com",
		"authz_fail:user-1,invites",
		"user_created:owner-1,user-2",
	}

	for i, e := range entries {
		if got := e.ContextMap()["event"]; got != expected[i] {
			t.Errorf("entry %d: expected event %q, got %v", i, expected[i], got)
		}
		if got := e.ContextMap()["type"]; got != "security" {
			t.Errorf("entry %d: expected type security, got %v", i, got)
		}
	}

	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("expected login failure at warn level, got %s", entries[1].Level)
	}
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()

	logger.Infof("nothing %s", "happens")
	logger.Security().AuthnLoginSuccess("user")

	if err := logger.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}
