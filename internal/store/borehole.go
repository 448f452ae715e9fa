package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"gorm.io/gorm"
)

type Borehole interface {
	Create(ctx context.Context, borehole *model.Borehole) (*model.Borehole, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Borehole, error)
	List(ctx context.Context, filter *BoreholeQueryFilter) (model.BoreholeList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoreholeStore struct {
	db *gorm.DB
}

// Make sure we conform to Borehole interface
var _ Borehole = (*BoreholeStore)(nil)

func NewBoreholeStore(db *gorm.DB) Borehole {
	return &BoreholeStore{db: db}
}

func (s *BoreholeStore) Create(ctx context.Context, borehole *model.Borehole) (*model.Borehole, error) {
	if result := s.getDB(ctx).Create(borehole); result.Error != nil {
		return nil, result.Error
	}
	return borehole, nil
}

func (s *BoreholeStore) Get(ctx context.Context, id uuid.UUID) (*model.Borehole, error) {
	var borehole model.Borehole
	result := s.getDB(ctx).Preload("Borelogs").First(&borehole, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &borehole, nil
}

func (s *BoreholeStore) List(ctx context.Context, filter *BoreholeQueryFilter) (model.BoreholeList, error) {
	var boreholes model.BoreholeList
	tx := s.getDB(ctx).Model(&boreholes).Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&boreholes); result.Error != nil {
		return nil, result.Error
	}
	return boreholes, nil
}

func (s *BoreholeStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.Borehole{}, "id = ?", id)
	return result.Error
}

func (s *BoreholeStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
