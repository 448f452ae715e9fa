package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/service/mappers"
)

func (h *Handler) SubmitUpload(w http.ResponseWriter, r *http.Request) {
	var form api.SubmitUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "malformed request body"})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: err.Error()})
		return
	}

	upload, err := h.uploads.SubmitUpload(r.Context(), username(r), &form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.PendingUploadToApi(*upload))
}

func (h *Handler) GetUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid upload id"})
		return
	}

	upload, err := h.uploads.GetUpload(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.PendingUploadToApi(*upload))
}

func (h *Handler) ListUploads(w http.ResponseWriter, r *http.Request) {
	filter := &service.UploadFilter{
		Status:   r.URL.Query().Get("status"),
		Project:  r.URL.Query().Get("project"),
		Uploader: r.URL.Query().Get("uploader"),
	}

	uploads, err := h.uploads.ListUploads(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.PendingUploadListToApi(uploads))
}

func (h *Handler) DecideUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid upload id"})
		return
	}

	var form api.DecideUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "malformed request body"})
		return
	}
	if err := h.validate.Struct(form); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: err.Error()})
		return
	}

	decided, err := h.approvals.Decide(r.Context(), id, username(r), &form)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.PendingUploadToApi(*decided))
}
