package v1alpha1

import (
	"time"

	"github.com/google/uuid"

	"github.com/soilworks/borelog-registry/internal/parser"
)

// Reviewer decisions accepted by the upload decision endpoint.
const (
	DecisionApprove           = "approve"
	DecisionReject            = "reject"
	DecisionReturnForRevision = "return_for_revision"
)

type SubmitUploadRequest struct {
	ProjectCode      string `json:"project_code" validate:"required"`
	StructureCode    string `json:"structure_code" validate:"required"`
	SubstructureCode string `json:"substructure_code,omitempty"`
	ReportText       string `json:"report_text" validate:"required"`
}

type DecideUploadRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject return_for_revision"`
	Notes    string `json:"notes,omitempty"`
}

type PendingUpload struct {
	Id               uuid.UUID  `json:"id"`
	ProjectCode      string     `json:"project_code"`
	StructureCode    string     `json:"structure_code"`
	SubstructureCode string     `json:"substructure_code,omitempty"`
	UploadedBy       string     `json:"uploaded_by"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	DecidedBy        string     `json:"decided_by,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	DecisionNotes    string     `json:"decision_notes,omitempty"`
	CreatedRecordId  *uuid.UUID `json:"created_record_id,omitempty"`
}

type PendingUploadList []PendingUpload

type Borehole struct {
	Id             uuid.UUID `json:"id"`
	ProjectCode    string    `json:"project_code"`
	StructureCode  string    `json:"structure_code"`
	BoreholeNumber string    `json:"borehole_number,omitempty"`
	JobCode        string    `json:"job_code"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Borelogs       []Borelog `json:"borelogs,omitempty"`
}

type BoreholeList []Borehole

type Borelog struct {
	Id               uuid.UUID  `json:"id"`
	BoreholeId       uuid.UUID  `json:"borehole_id"`
	PendingUploadId  *uuid.UUID `json:"pending_upload_id,omitempty"`
	CreatedBy        string     `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	BoringMethod     string     `json:"boring_method,omitempty"`
	TerminationDepth *float64   `json:"termination_depth,omitempty"`
	LabTestCount     string     `json:"lab_test_count,omitempty"`
}

type VersionMeta struct {
	Version   int       `json:"version"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type VersionList struct {
	LatestVersion   int           `json:"latest_version"`
	ApprovedVersion *int          `json:"approved_version,omitempty"`
	Versions        []VersionMeta `json:"versions"`
}

type BorelogVersion struct {
	Meta     VersionMeta     `json:"meta"`
	Document parser.Document `json:"document"`
}

type Error struct {
	Message string `json:"message"`
}
