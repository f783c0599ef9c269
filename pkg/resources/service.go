// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"fmt"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
	"github.com/canonical/property-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) List(ctx context.Context, orgID int64, res *Resource, page, size int64) ([]types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.List")
	defer span.End()

	return s.storage.ListRecords(ctx, res.Name, res.Columns(), orgID, page, size)
}

func (s *Service) Get(ctx context.Context, orgID int64, res *Resource, id int64) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Get")
	defer span.End()

	return s.storage.GetRecord(ctx, res.Name, res.Columns(), orgID, id)
}

func (s *Service) Create(ctx context.Context, orgID int64, res *Resource, payload map[string]any) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Create")
	defer span.End()

	values, err := res.Coerce(payload, true)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, orgID, res, values); err != nil {
		return nil, err
	}

	return s.storage.CreateRecord(ctx, res.Name, res.Columns(), orgID, values)
}

func (s *Service) Update(ctx context.Context, orgID int64, res *Resource, id int64, payload map[string]any) (types.Record, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Update")
	defer span.End()

	values, err := res.Coerce(payload, false)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.GetRecord(ctx, res.Name, res.Columns(), orgID, id); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, orgID, res, values); err != nil {
		return nil, err
	}

	return s.storage.UpdateRecord(ctx, res.Name, res.Columns(), orgID, id, values)
}

func (s *Service) Delete(ctx context.Context, orgID int64, res *Resource, id int64) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Delete")
	defer span.End()

	return s.storage.DeleteRecord(ctx, res.Name, orgID, id)
}

// checkReferences rejects ids pointing outside the caller's organization.
func (s *Service) checkReferences(ctx context.Context, orgID int64, res *Resource, values map[string]any) error {
	for name, id := range res.References(values) {
		f, _ := res.field(name)

		ok, err := s.storage.RecordExists(ctx, f.Ref, orgID, id)
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debugf("%s %d of org %d does not exist", f.Ref, id, orgID)
			return fmt.Errorf("%w: %s does not reference an existing record", types.ErrInvalid, name)
		}
	}

	return nil
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
