// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/property-service/internal/config"
	"github.com/canonical/property-service/internal/db"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring/prometheus"
	"github.com/canonical/property-service/internal/notification"
	"github.com/canonical/property-service/internal/ratelimit"
	"github.com/canonical/property-service/internal/storage"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/migrations"
	"github.com/canonical/property-service/pkg/authentication"
	"github.com/canonical/property-service/pkg/web"
)

const serviceName = "property-service"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %s", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("starting with log level %s, db driver %s", specs.LogLevel, specs.DBDriver)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, serviceName, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		Driver:          specs.DBDriver,
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	if specs.MigrateOnStart {
		results, err := migrations.Up(context.Background(), dbClient.DB(), specs.DBDriver)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %v", err)
		}
		logger.Infof("applied %d migrations", len(results))
	}

	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	tokens, err := authentication.NewTokenService(specs.JWTSecret, specs.JWTAlg, specs.TokenLifetime())
	if err != nil {
		return fmt.Errorf("invalid token configuration: %v", err)
	}

	notifier, err := notification.NewNotifier(context.Background(), specs.NotifyBackend, specs.SESFromAddress, tracer, logger)
	if err != nil {
		return fmt.Errorf("failed to create notifier: %v", err)
	}

	var limiter ratelimit.LimiterInterface = ratelimit.NewNoopLimiter()
	if specs.RedisAddr != "" {
		client, err := ratelimit.NewRedisClient(specs.RedisAddr, specs.RedisPassword, specs.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %v", err)
		}
		defer client.Close()

		proxies, err := ratelimit.ParseTrustedProxies(specs.TrustedProxies)
		if err != nil {
			return err
		}

		limiter = ratelimit.NewLimiter(client, specs.LoginRateLimit, specs.LoginRateWindow, proxies, tracer, monitor, logger)
		logger.Info("Rate limiting is enabled")
	} else {
		logger.Info("Using noop rate limiter")
	}

	router := web.NewRouter(
		web.Config{
			CookieName:     specs.CookieName,
			CookieSecure:   specs.CookieSecure,
			TokenLifetime:  specs.TokenLifetime(),
			TrialPeriod:    specs.TrialPeriod(),
			InviteTTL:      specs.InviteTTL,
			InviteBaseURL:  specs.InviteBaseURL,
			WebhookSecret:  specs.BillingWebhookSecret,
			AllowedOrigins: specs.CORSAllowedOrigins,
		},
		s,
		dbClient,
		tokens,
		authentication.NewPasswordHasher(bcrypt.DefaultCost),
		notifier,
		limiter,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
