package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/service/report"
)

func documentRef(r *http.Request) docstore.DocumentRef {
	return docstore.DocumentRef{
		Project:   chi.URLParam(r, "project"),
		Structure: chi.URLParam(r, "structure"),
		Borelog:   chi.URLParam(r, "borelog"),
	}
}

func (h *Handler) ListVersions(w http.ResponseWriter, r *http.Request) {
	list, err := h.versions.ListVersions(r.Context(), documentRef(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.resolveVersion(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, version)
}

// ExportVersion renders the requested record version as a spreadsheet download.
func (h *Handler) ExportVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.resolveVersion(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	title := version.Document.Metadata.ProjectName
	if title == "" {
		title = chi.URLParam(r, "borelog")
	}
	workbook, err := report.BuildWorkbook(title, &version.Document)
	if err != nil {
		renderError(w, r, err)
		return
	}
	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		renderError(w, r, err)
		return
	}

	filename := fmt.Sprintf("borelog_%s_v%d_%s.xlsx",
		chi.URLParam(r, "borelog"), version.Meta.Version, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.Bytes())
}

// resolveVersion reads the version named in the path, where "latest" picks the
// newest one.
func (h *Handler) resolveVersion(r *http.Request) (*api.BorelogVersion, error) {
	ref := documentRef(r)
	raw := chi.URLParam(r, "version")
	if raw == "latest" {
		return h.versions.GetLatest(r.Context(), ref)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, &badRequestError{fmt.Errorf("invalid version %q", raw)}
	}
	return h.versions.GetVersion(r.Context(), ref, n)
}
