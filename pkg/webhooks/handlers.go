// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/property-service/internal/http/types"
	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/types"
)

const maxPayloadBytes = 1 << 20

type API struct {
	service ServiceInterface
	secret  []byte
	now     func() time.Time
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, secret string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		secret:  []byte(secret),
		now:     time.Now,
		logger:  logger,
	}
}

// RegisterEndpoints exposes the billing webhook. Without a shared secret
// the endpoint is not mounted at all.
func (a *API) RegisterEndpoints(mux chi.Router) {
	if len(a.secret) == 0 {
		return
	}

	mux.Post("/webhooks/billing", a.billing)
}

func (a *API) billing(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		a.logger.Errorf("failed to read webhook payload: %v", err)
		httptypes.WriteError(w, fmt.Errorf("%w: unreadable payload", types.ErrInvalid), a.logger)
		return
	}

	if !a.verify(payload, r.Header.Get(TimestampHeader), r.Header.Get(SignatureHeader)) {
		a.logger.Security().AuthzFailure("billing-webhook", r.URL.Path)
		httptypes.WriteError(w, types.ErrNotAuthenticated, a.logger)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(payload))

	event := new(BillingEvent)
	if err := httptypes.DecodeJSON(r, event); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	sub, err := a.service.HandleBillingEvent(r.Context(), event)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, sub, a.logger)
}

// verify checks a "sha256=<hex>" HMAC over "<timestamp>.<payload>" in
// constant time, and that the unix timestamp is within SignatureTolerance.
func (a *API) verify(payload []byte, timestamp, header string) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	skew := a.now().Sub(time.Unix(ts, 0))
	if skew > SignatureTolerance || skew < -SignatureTolerance {
		a.logger.Debugf("webhook timestamp %d outside tolerance", ts)
		return false
	}

	sig, found := strings.CutPrefix(header, signaturePrefix)
	if !found {
		return false
	}

	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	return hmac.Equal(got, Sign(a.secret, ts, payload))
}

// Sign computes the HMAC-SHA256 of "<timestamp>.<payload>" with secret.
func Sign(secret []byte, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
