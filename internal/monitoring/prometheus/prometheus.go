// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	h, err := m.responseTime.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	h.Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return fmt.Errorf("metric not instantiated")
	}

	g, err := m.dependencyAvailability.GetMetricWith(m.labels(tags))
	if err != nil {
		return err
	}

	g.Set(value)

	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		l[k] = v
	}
	return l
}

func (m *Monitor) registerHistograms(r prometheus.Registerer) {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)

	if err := r.Register(m.responseTime); err != nil {
		m.logger.Debugf("response time histogram already registered: %v", err)
	}
}

func (m *Monitor) registerGauges(r prometheus.Registerer) {
	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)

	if err := r.Register(m.dependencyAvailability); err != nil {
		m.logger.Debugf("dependency gauge already registered: %v", err)
	}
}

// NewMonitor registers the service metrics on the default prometheus registry.
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	return NewMonitorWithRegisterer(service, prometheus.DefaultRegisterer, logger)
}

func NewMonitorWithRegisterer(service string, r prometheus.Registerer, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms(r)
	m.registerGauges(r)

	return m
}
