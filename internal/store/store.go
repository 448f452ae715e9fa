package store

import (
	"context"

	"github.com/soilworks/borelog-registry/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Borehole() Borehole
	Borelog() Borelog
	PendingUpload() PendingUpload
	InitialMigration() error
	Close() error
}

type DataStore struct {
	borehole      Borehole
	borelog       Borelog
	pendingUpload PendingUpload
	db            *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		borehole:      NewBoreholeStore(db),
		borelog:       NewBorelogStore(db),
		pendingUpload: NewPendingUploadStore(db),
		db:            db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Borehole() Borehole {
	return s.borehole
}

func (s *DataStore) Borelog() Borelog {
	return s.borelog
}

func (s *DataStore) PendingUpload() PendingUpload {
	return s.pendingUpload
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Borehole{},
		&model.Borelog{},
		&model.StratumLayer{},
		&model.StratumSamplePoint{},
		&model.SubmissionAudit{},
		&model.PendingUpload{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
