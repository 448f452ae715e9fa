package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/service"
)

// Handler exposes the upload, review and record-reading endpoints. The caller
// identity comes from the X-User header; authentication happens upstream.
type Handler struct {
	uploads   *service.UploadService
	approvals *service.ApprovalService
	versions  *service.VersionService
	records   *service.RecordService
	validate  *validator.Validate
}

func NewHandler(
	uploads *service.UploadService,
	approvals *service.ApprovalService,
	versions *service.VersionService,
	records *service.RecordService,
) *Handler {
	return &Handler{
		uploads:   uploads,
		approvals: approvals,
		versions:  versions,
		records:   records,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(router chi.Router) {
	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Post("/uploads", h.SubmitUpload)
		r.Get("/uploads", h.ListUploads)
		r.Get("/uploads/{id}", h.GetUpload)
		r.Post("/uploads/{id}/decision", h.DecideUpload)

		r.Get("/boreholes", h.ListBoreholes)
		r.Get("/boreholes/{id}", h.GetBorehole)
		r.Get("/borelogs/{id}", h.GetBorelog)

		r.Route("/projects/{project}/structures/{structure}/borelogs/{borelog}", func(r chi.Router) {
			r.Get("/versions", h.ListVersions)
			r.Get("/versions/{version}", h.GetVersion)
			r.Get("/versions/{version}/export", h.ExportVersion)
		})
	})
	router.Get("/health", h.Health)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func username(r *http.Request) string {
	if user := r.Header.Get("X-User"); user != "" {
		return user
	}
	return "anonymous"
}

// badRequestError marks client mistakes detected at the handler level, like an
// unparseable path parameter.
type badRequestError struct {
	error
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var (
		notFound        *service.ErrResourceNotFound
		versionNotFound *service.ErrVersionNotFound
		invalidState    *service.ErrInvalidState
		invalidDecision *service.ErrInvalidDecision
		corrupted       *service.ErrReportCorrupted
		badRequest      *badRequestError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &versionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &invalidState):
		status = http.StatusConflict
	case errors.As(err, &invalidDecision), errors.As(err, &corrupted), errors.As(err, &badRequest):
		status = http.StatusBadRequest
	}

	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: err.Error()})
}
