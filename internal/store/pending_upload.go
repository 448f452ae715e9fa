package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"gorm.io/gorm"
)

type PendingUpload interface {
	Create(ctx context.Context, upload *model.PendingUpload) (*model.PendingUpload, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PendingUpload, error)
	List(ctx context.Context, filter *PendingUploadQueryFilter) (model.PendingUploadList, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status, decidedBy, notes string, createdRecordID *uuid.UUID) (*model.PendingUpload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PendingUploadStore struct {
	db *gorm.DB
}

// Make sure we conform to PendingUpload interface
var _ PendingUpload = (*PendingUploadStore)(nil)

func NewPendingUploadStore(db *gorm.DB) PendingUpload {
	return &PendingUploadStore{db: db}
}

func (s *PendingUploadStore) Create(ctx context.Context, upload *model.PendingUpload) (*model.PendingUpload, error) {
	if result := s.getDB(ctx).Create(upload); result.Error != nil {
		return nil, result.Error
	}
	return upload, nil
}

func (s *PendingUploadStore) Get(ctx context.Context, id uuid.UUID) (*model.PendingUpload, error) {
	var upload model.PendingUpload
	result := s.getDB(ctx).First(&upload, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &upload, nil
}

func (s *PendingUploadStore) List(ctx context.Context, filter *PendingUploadQueryFilter) (model.PendingUploadList, error) {
	var uploads model.PendingUploadList
	tx := s.getDB(ctx).Model(&uploads).Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&uploads); result.Error != nil {
		return nil, result.Error
	}
	return uploads, nil
}

// UpdateDecision stamps the reviewer's verdict on a still-pending upload. The
// status guard in the WHERE clause makes a second decision a no-op at the
// storage level; callers surface that as an invalid state transition.
func (s *PendingUploadStore) UpdateDecision(ctx context.Context, id uuid.UUID, status, decidedBy, notes string, createdRecordID *uuid.UUID) (*model.PendingUpload, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":         status,
		"decided_by":     decidedBy,
		"decided_at":     &now,
		"decision_notes": notes,
	}
	if createdRecordID != nil {
		updates["created_record_id"] = createdRecordID
	}

	result := s.getDB(ctx).Model(&model.PendingUpload{}).
		Where("id = ? AND status = ?", id, model.UploadStatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(ctx, id)
}

func (s *PendingUploadStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.PendingUpload{}, "id = ?", id)
	return result.Error
}

func (s *PendingUploadStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
