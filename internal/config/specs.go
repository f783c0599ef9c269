// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port               int      `envconfig:"port" default:"8080"`
	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DBDriver       string `envconfig:"db_driver" default:"postgres"`
	DSN            string `envconfig:"DSN" required:"true"`
	MigrateOnStart bool   `envconfig:"migrate_on_start" default:"false"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	JWTSecret    string `envconfig:"jwt_secret" required:"true"`
	JWTAlg       string `envconfig:"jwt_alg" default:"HS256"`
	JWTExpireMin int    `envconfig:"jwt_expire_min" default:"43200"`

	CookieName   string `envconfig:"cookie_name" default:"hr_token"`
	CookieSecure bool   `envconfig:"cookie_secure" default:"false"`

	InviteTTL     time.Duration `envconfig:"invite_ttl" default:"72h"`
	InviteBaseURL string        `envconfig:"invite_base_url" default:""`
	TrialDays     int           `envconfig:"trial_days" default:"14"`

	RedisAddr       string        `envconfig:"redis_addr"`
	RedisPassword   string        `envconfig:"redis_password"`
	RedisDB         int           `envconfig:"redis_db" default:"0"`
	LoginRateLimit  int           `envconfig:"login_rate_limit" default:"10"`
	LoginRateWindow time.Duration `envconfig:"login_rate_window" default:"1m"`
	TrustedProxies  []string      `envconfig:"trusted_proxies"`

	NotifyBackend  string `envconfig:"notify_backend" default:"log"`
	SESFromAddress string `envconfig:"ses_from_address"`

	BillingWebhookSecret string `envconfig:"billing_webhook_secret"`
}

// TokenLifetime is the validity of issued session tokens.
func (e *EnvSpec) TokenLifetime() time.Duration {
	return time.Duration(e.JWTExpireMin) * time.Minute
}

// TrialPeriod is the trial horizon given to newly bootstrapped organizations.
func (e *EnvSpec) TrialPeriod() time.Duration {
	return time.Duration(e.TrialDays) * 24 * time.Hour
}
