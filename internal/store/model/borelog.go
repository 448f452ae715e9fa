package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/soilworks/borelog-registry/internal/parser"
)

// Sample point depth modes.
const (
	DepthModeSingle = "single"
	DepthModeRange  = "range"
)

// Borelog is one versioned log aggregate under a borehole. PendingUploadID is
// the idempotency key: materializing the same approved upload twice yields the
// same borelog instead of a duplicate.
type Borelog struct {
	ID              uuid.UUID `gorm:"primaryKey"`
	CreatedAt       time.Time `gorm:"not null"`
	BoreholeID      uuid.UUID  `gorm:"not null;index"`
	PendingUploadID *uuid.UUID `gorm:"uniqueIndex"`
	CreatedBy       string

	BoringMethod       string
	HoleDiameterMM     *float64
	TerminationDepth   *float64
	StandingWaterLevel *float64
	CommencementDate   string
	CompletionDate     string
	// Combined SPT and vane shear test counts, encoded "<spt>&<vs>".
	LabTestCount string

	Layers []StratumLayer    `gorm:"foreignKey:BorelogID;references:ID;constraint:OnDelete:CASCADE;"`
	Audits []SubmissionAudit `gorm:"foreignKey:BorelogID;references:ID;constraint:OnDelete:CASCADE;"`
}

type BorelogList []Borelog

func (b Borelog) String() string {
	val, _ := json.Marshal(b)
	return string(val)
}

// StratumLayer is one depth interval of a borelog; LayerOrder preserves the
// report's insertion order, which is the depth order.
type StratumLayer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	BorelogID   uuid.UUID `gorm:"not null;index"`
	LayerOrder  int       `gorm:"not null"`
	DepthFrom   float64   `gorm:"not null"`
	DepthTo     float64   `gorm:"not null"`
	Thickness   float64   `gorm:"not null"`
	Description string

	SamplePoint *StratumSamplePoint `gorm:"foreignKey:StratumLayerID;references:ID;constraint:OnDelete:CASCADE;"`
}

// StratumSamplePoint records a sample taken within a layer, with the derived
// strength and core-recovery figures.
type StratumSamplePoint struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	StratumLayerID uint   `gorm:"not null;uniqueIndex"`
	SampleID       string
	SampleType     string
	DepthMode      string `gorm:"not null"`
	SampleDepth    *float64
	RunLength      *float64
	NValue         *float64
	TCRPercent     *float64
	RQDPercent     *float64
}

// SubmissionAudit captures the full original parsed payload of a materialized
// submission for traceability.
type SubmissionAudit struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt       time.Time `gorm:"not null"`
	BorelogID       uuid.UUID `gorm:"not null;index"`
	PendingUploadID uuid.UUID `gorm:"not null"`
	Version         int       `gorm:"not null"`
	SubmittedBy     string
	Payload         *JSONField[parser.Document] `gorm:"type:jsonb;not null"`
}
