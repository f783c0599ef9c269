// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Security() SecurityLoggerInterface
	Sync() error
}

// SecurityLoggerInterface records security relevant events using the OWASP
// logging vocabulary, e.g. authn_login_fail:<user>.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthnLoginSuccess(user string)
	AuthnLoginFail(user string)
	AuthnTokenCreated(user string)
	AuthzFailure(user, resource string)
	UserCreated(actor, user string)
	UserUpdated(actor, user string)
}
