package mappers

import (
	"github.com/google/uuid"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

func PendingUploadFromApi(id uuid.UUID, username string, resource *api.SubmitUploadRequest, doc *parser.Document) model.PendingUpload {
	return model.PendingUpload{
		ID:               id,
		ProjectCode:      resource.ProjectCode,
		StructureCode:    resource.StructureCode,
		SubstructureCode: resource.SubstructureCode,
		UploadedBy:       username,
		Payload:          model.MakeJSONField(*doc),
		Status:           model.UploadStatusPending,
	}
}
