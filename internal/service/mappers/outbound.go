package mappers

import (
	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

func PendingUploadToApi(u model.PendingUpload) api.PendingUpload {
	return api.PendingUpload{
		Id:               u.ID,
		ProjectCode:      u.ProjectCode,
		StructureCode:    u.StructureCode,
		SubstructureCode: u.SubstructureCode,
		UploadedBy:       u.UploadedBy,
		Status:           u.Status,
		CreatedAt:        u.CreatedAt,
		DecidedBy:        u.DecidedBy,
		DecidedAt:        u.DecidedAt,
		DecisionNotes:    u.DecisionNotes,
		CreatedRecordId:  u.CreatedRecordID,
	}
}

func PendingUploadListToApi(uploads model.PendingUploadList) api.PendingUploadList {
	result := make(api.PendingUploadList, 0, len(uploads))
	for _, u := range uploads {
		result = append(result, PendingUploadToApi(u))
	}
	return result
}

func BoreholeToApi(b model.Borehole) api.Borehole {
	borehole := api.Borehole{
		Id:             b.ID,
		ProjectCode:    b.ProjectCode,
		StructureCode:  b.StructureCode,
		BoreholeNumber: b.BoreholeNumber,
		JobCode:        b.JobCode,
		Location:       b.Location,
		CreatedAt:      b.CreatedAt,
	}
	for _, l := range b.Borelogs {
		borehole.Borelogs = append(borehole.Borelogs, BorelogToApi(l))
	}
	return borehole
}

func BoreholeListToApi(boreholes model.BoreholeList) api.BoreholeList {
	result := make(api.BoreholeList, 0, len(boreholes))
	for _, b := range boreholes {
		result = append(result, BoreholeToApi(b))
	}
	return result
}

func BorelogToApi(b model.Borelog) api.Borelog {
	return api.Borelog{
		Id:               b.ID,
		BoreholeId:       b.BoreholeID,
		PendingUploadId:  b.PendingUploadID,
		CreatedBy:        b.CreatedBy,
		CreatedAt:        b.CreatedAt,
		BoringMethod:     b.BoringMethod,
		TerminationDepth: b.TerminationDepth,
		LabTestCount:     b.LabTestCount,
	}
}

func VersionMetaToApi(m docstore.VersionMeta) api.VersionMeta {
	return api.VersionMeta{
		Version:   m.Version,
		Status:    m.Status,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func VersionListToApi(metas []docstore.VersionMeta, index *docstore.VersionIndex) api.VersionList {
	list := api.VersionList{
		LatestVersion:   index.LatestVersion,
		ApprovedVersion: index.ApprovedVersion,
		Versions:        make([]api.VersionMeta, 0, len(metas)),
	}
	for _, m := range metas {
		list.Versions = append(list.Versions, VersionMetaToApi(m))
	}
	return list
}
