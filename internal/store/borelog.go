package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"gorm.io/gorm"
)

type Borelog interface {
	Create(ctx context.Context, borelog *model.Borelog) (*model.Borelog, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Borelog, error)
	GetByPendingUpload(ctx context.Context, pendingUploadID uuid.UUID) (*model.Borelog, error)
	ListByBorehole(ctx context.Context, boreholeID uuid.UUID) (model.BorelogList, error)
	RecordSubmission(ctx context.Context, audit *model.SubmissionAudit) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BorelogStore struct {
	db *gorm.DB
}

// Make sure we conform to Borelog interface
var _ Borelog = (*BorelogStore)(nil)

func NewBorelogStore(db *gorm.DB) Borelog {
	return &BorelogStore{db: db}
}

// Create persists the borelog together with its stratum layers and their
// sample points in one association write.
func (s *BorelogStore) Create(ctx context.Context, borelog *model.Borelog) (*model.Borelog, error) {
	result := s.getDB(ctx).Create(borelog)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return borelog, nil
}

func (s *BorelogStore) Get(ctx context.Context, id uuid.UUID) (*model.Borelog, error) {
	var borelog model.Borelog
	result := s.getDB(ctx).
		Preload("Layers", func(db *gorm.DB) *gorm.DB { return db.Order("layer_order") }).
		Preload("Layers.SamplePoint").
		First(&borelog, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &borelog, nil
}

func (s *BorelogStore) GetByPendingUpload(ctx context.Context, pendingUploadID uuid.UUID) (*model.Borelog, error) {
	var borelog model.Borelog
	result := s.getDB(ctx).First(&borelog, "pending_upload_id = ?", pendingUploadID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &borelog, nil
}

func (s *BorelogStore) ListByBorehole(ctx context.Context, boreholeID uuid.UUID) (model.BorelogList, error) {
	var borelogs model.BorelogList
	result := s.getDB(ctx).Order("created_at").Find(&borelogs, "borehole_id = ?", boreholeID)
	if result.Error != nil {
		return nil, result.Error
	}
	return borelogs, nil
}

func (s *BorelogStore) RecordSubmission(ctx context.Context, audit *model.SubmissionAudit) error {
	result := s.getDB(ctx).Create(audit)
	return result.Error
}

func (s *BorelogStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.Borelog{}, "id = ?", id)
	return result.Error
}

func (s *BorelogStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
