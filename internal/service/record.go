package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

// RecordService reads the materialized borehole records.
type RecordService struct {
	store store.Store
}

func NewRecordService(store store.Store) *RecordService {
	return &RecordService{store: store}
}

type BoreholeFilter struct {
	Project   string
	Structure string
}

func (s *RecordService) ListBoreholes(ctx context.Context, filter *BoreholeFilter) (model.BoreholeList, error) {
	storeFilter := store.NewBoreholeQueryFilter()
	if filter != nil {
		if filter.Project != "" {
			storeFilter = storeFilter.ByProject(filter.Project)
		}
		if filter.Structure != "" {
			storeFilter = storeFilter.ByStructure(filter.Structure)
		}
	}
	return s.store.Borehole().List(ctx, storeFilter)
}

func (s *RecordService) GetBorehole(ctx context.Context, id uuid.UUID) (*model.Borehole, error) {
	borehole, err := s.store.Borehole().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrBoreholeNotFound(id)
		}
		return nil, err
	}
	return borehole, nil
}

func (s *RecordService) GetBorelog(ctx context.Context, id uuid.UUID) (*model.Borelog, error) {
	borelog, err := s.store.Borelog().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrBorelogNotFound(id)
		}
		return nil, err
	}
	return borelog, nil
}
