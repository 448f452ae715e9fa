package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrUploadNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "upload")
}

func NewErrBoreholeNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "borehole")
}

func NewErrBorelogNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "borelog")
}

type ErrVersionNotFound struct {
	error
}

func NewErrVersionNotFound(ref string, version int) *ErrVersionNotFound {
	return &ErrVersionNotFound{fmt.Errorf("version %d of %s not found", version, ref)}
}

func NewErrDocumentNotFound(ref string) *ErrVersionNotFound {
	return &ErrVersionNotFound{fmt.Errorf("document %s not found", ref)}
}

type ErrInvalidState struct {
	error
}

func NewErrUploadAlreadyDecided(id uuid.UUID, status string) *ErrInvalidState {
	return &ErrInvalidState{fmt.Errorf("upload %s already decided: status is %q", id, status)}
}

type ErrInvalidDecision struct {
	error
}

func NewErrInvalidDecision(decision string) *ErrInvalidDecision {
	return &ErrInvalidDecision{fmt.Errorf("unknown decision %q", decision)}
}

type ErrReportCorrupted struct {
	error
}

func NewErrReportCorrupted(message string) *ErrReportCorrupted {
	return &ErrReportCorrupted{fmt.Errorf("the uploaded report could not be parsed: %s", message)}
}
