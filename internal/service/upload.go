package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/service/mappers"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"github.com/soilworks/borelog-registry/pkg/metrics"
)

type UploadService struct {
	store store.Store
}

func NewUploadService(store store.Store) *UploadService {
	return &UploadService{store: store}
}

// SubmitUpload parses the raw report text and queues the structured document
// for reviewer decision. A report that fails to parse is rejected outright and
// nothing is stored.
func (s *UploadService) SubmitUpload(ctx context.Context, username string, form *api.SubmitUploadRequest) (*model.PendingUpload, error) {
	doc, err := parser.Parse(form.ReportText)
	if err != nil {
		metrics.IncreaseReportsParsedMetric("error")
		var missingErr *parser.MissingMetadataError
		if errors.As(err, &missingErr) {
			return nil, NewErrReportCorrupted(missingErr.Error())
		}
		return nil, NewErrReportCorrupted(err.Error())
	}
	metrics.IncreaseReportsParsedMetric("ok")

	upload := mappers.PendingUploadFromApi(uuid.New(), username, form, doc)
	created, err := s.store.PendingUpload().Create(ctx, &upload)
	if err != nil {
		return nil, err
	}

	zap.S().Named("upload").Infow("report queued for review",
		"upload_id", created.ID,
		"project", created.ProjectCode,
		"structure", created.StructureCode,
		"uploaded_by", username,
	)
	return created, nil
}

func (s *UploadService) GetUpload(ctx context.Context, id uuid.UUID) (*model.PendingUpload, error) {
	upload, err := s.store.PendingUpload().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUploadNotFound(id)
		}
		return nil, err
	}
	return upload, nil
}

type UploadFilter struct {
	Status   string
	Project  string
	Uploader string
}

func (s *UploadService) ListUploads(ctx context.Context, filter *UploadFilter) (model.PendingUploadList, error) {
	storeFilter := store.NewPendingUploadQueryFilter()
	if filter != nil {
		if filter.Status != "" {
			storeFilter = storeFilter.ByStatus(filter.Status)
		}
		if filter.Project != "" {
			storeFilter = storeFilter.ByProject(filter.Project)
		}
		if filter.Uploader != "" {
			storeFilter = storeFilter.ByUploader(filter.Uploader)
		}
	}
	return s.store.PendingUpload().List(ctx, storeFilter)
}
