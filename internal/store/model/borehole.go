package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Borehole is the durable identity of one drilled investigation point. It is
// created at most once per (project, structure, borehole number) tuple; the
// lookup is a scan-and-match since there is no unique index on the tuple.
type Borehole struct {
	ID             uuid.UUID `gorm:"primaryKey"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      *time.Time
	ProjectCode    string `gorm:"not null;index:boreholes_project_structure_idx"`
	StructureCode  string `gorm:"not null;index:boreholes_project_structure_idx"`
	BoreholeNumber string
	JobCode        string `gorm:"not null"`
	Location       string
	Borelogs       []Borelog `gorm:"foreignKey:BoreholeID;references:ID;constraint:OnDelete:CASCADE;"`
}

type BoreholeList []Borehole

func (b Borehole) String() string {
	val, _ := json.Marshal(b)
	return string(val)
}
