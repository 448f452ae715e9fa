package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/soilworks/borelog-registry/internal/parser"
)

// PendingUpload statuses. Every decision is terminal: a returned upload is not
// reopened, the uploader submits a new one.
const (
	UploadStatusPending  = "pending"
	UploadStatusApproved = "approved"
	UploadStatusRejected = "rejected"
	UploadStatusReturned = "returned_for_revision"
)

// PendingUpload is an uploaded, parsed report awaiting reviewer decision. It is
// created on upload, mutated exactly once by a reviewer and never deleted except
// by administrative purge.
type PendingUpload struct {
	ID               uuid.UUID `gorm:"primaryKey"`
	CreatedAt        time.Time `gorm:"not null"`
	ProjectCode      string    `gorm:"not null"`
	StructureCode    string    `gorm:"not null"`
	SubstructureCode string
	UploadedBy       string                      `gorm:"not null"`
	Payload          *JSONField[parser.Document] `gorm:"type:jsonb;not null"`
	Status           string                      `gorm:"not null;index"`

	DecidedBy       string
	DecidedAt       *time.Time
	DecisionNotes   string
	CreatedRecordID *uuid.UUID
}

type PendingUploadList []PendingUpload

func (p PendingUpload) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}
