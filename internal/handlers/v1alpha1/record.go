package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/service/mappers"
)

func (h *Handler) ListBoreholes(w http.ResponseWriter, r *http.Request) {
	filter := &service.BoreholeFilter{
		Project:   r.URL.Query().Get("project"),
		Structure: r.URL.Query().Get("structure"),
	}

	boreholes, err := h.records.ListBoreholes(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.BoreholeListToApi(boreholes))
}

func (h *Handler) GetBorehole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid borehole id"})
		return
	}

	borehole, err := h.records.GetBorehole(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.BoreholeToApi(*borehole))
}

func (h *Handler) GetBorelog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error{Message: "invalid borelog id"})
		return
	}

	borelog, err := h.records.GetBorelog(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, mappers.BorelogToApi(*borelog))
}
