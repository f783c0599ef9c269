// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

// MonitorInterface records service metrics. Label maps are keyed by metric
// label name; a label the metric does not declare is an error.
type MonitorInterface interface {
	GetService() string
	// SetResponseTimeMetric observes one request duration in seconds,
	// labelled by route and status.
	SetResponseTimeMetric(map[string]string, float64) error
	// SetDependencyAvailability reports 1 or 0 for a backing service such as
	// the database or redis.
	SetDependencyAvailability(map[string]string, float64) error
}
