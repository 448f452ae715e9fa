package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type BoreholeQueryFilter BaseQuerier

func NewBoreholeQueryFilter() *BoreholeQueryFilter {
	return &BoreholeQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *BoreholeQueryFilter) ByProject(projectCode string) *BoreholeQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("project_code = ?", projectCode)
	})
	return qf
}

func (qf *BoreholeQueryFilter) ByStructure(structureCode string) *BoreholeQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("structure_code = ?", structureCode)
	})
	return qf
}

func (qf *BoreholeQueryFilter) ByBoreholeNumber(number string) *BoreholeQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("borehole_number = ?", number)
	})
	return qf
}

type PendingUploadQueryFilter BaseQuerier

func NewPendingUploadQueryFilter() *PendingUploadQueryFilter {
	return &PendingUploadQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *PendingUploadQueryFilter) ByStatus(status string) *PendingUploadQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *PendingUploadQueryFilter) ByProject(projectCode string) *PendingUploadQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("project_code = ?", projectCode)
	})
	return qf
}

func (qf *PendingUploadQueryFilter) ByUploader(username string) *PendingUploadQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("uploaded_by = ?", username)
	})
	return qf
}
