// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/canonical/property-service/internal/logging"
)

var errRequestFailed = errors.New("request failed")

// safeMethods never write, so they run on the shared connection.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// TransactionMiddleware runs every mutating request, gates included, inside one
// lazily started transaction. It commits when the handler answers with a status
// below 400 and rolls back otherwise.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethods[r.Method] {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rec, r.WithContext(txCtx))

				if rec.status() >= http.StatusBadRequest {
					return fmt.Errorf("%w: %s %s answered %d", errRequestFailed, r.Method, r.URL.Path, rec.status())
				}

				return nil
			})

			switch {
			case err == nil:
			case errors.Is(err, errRequestFailed):
				logger.Debugf("transaction rolled back: %v", err)
			default:
				logger.Errorf("transaction for %s %s not committed: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}

// statusRecorder remembers the first status code sent to the client.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.code == 0 {
		rec.code = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.code == 0 {
		rec.code = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *statusRecorder) status() int {
	if rec.code == 0 {
		return http.StatusOK
	}
	return rec.code
}
