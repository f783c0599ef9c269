// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

const (
	eventSystemStartup     = "sys_startup"
	eventSystemShutdown    = "sys_shutdown"
	eventAuthnLoginSuccess = "authn_login_success"
	eventAuthnLoginFail    = "authn_login_fail"
	eventAuthnTokenCreated = "authn_token_created"
	eventAuthzFail         = "authz_fail"
	eventUserCreated       = "user_created"
	eventUserUpdated       = "user_updated"
)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.event(zap.InfoLevel, eventSystemStartup, "system started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event(zap.InfoLevel, eventSystemShutdown, "system shutting down")
}

func (s *SecurityLogger) AuthnLoginSuccess(user string) {
	s.event(zap.InfoLevel, fmt.Sprintf("%s:%s", eventAuthnLoginSuccess, user), "user logged in")
}

func (s *SecurityLogger) AuthnLoginFail(user string) {
	s.event(zap.WarnLevel, fmt.Sprintf("%s:%s", eventAuthnLoginFail, user), "login failed")
}

func (s *SecurityLogger) AuthnTokenCreated(user string) {
	s.event(zap.InfoLevel, fmt.Sprintf("%s:%s", eventAuthnTokenCreated, user), "session token issued")
}

func (s *SecurityLogger) AuthzFailure(user, resource string) {
	s.event(zap.WarnLevel, fmt.Sprintf("%s:%s,%s", eventAuthzFail, user, resource), "authorization denied")
}

func (s *SecurityLogger) UserCreated(actor, user string) {
	s.event(zap.InfoLevel, fmt.Sprintf("%s:%s,%s", eventUserCreated, actor, user), "user created")
}

func (s *SecurityLogger) UserUpdated(actor, user string) {
	s.event(zap.InfoLevel, fmt.Sprintf("%s:%s,%s", eventUserUpdated, actor, user), "user updated")
}

func (s *SecurityLogger) event(level zapcore.Level, event, description string) {
	if ce := s.l.Check(level, description); ce != nil {
		ce.Write(zap.String("event", event))
	}
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l.With(zap.String("type", "security"))}
}
