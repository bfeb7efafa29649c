package slipshandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slipgen/internal/domain/export"
	"slipgen/internal/domain/render"
	"slipgen/internal/domain/slip"
	"slipgen/internal/transport/http/api"
	"slipgen/internal/transport/http/middleware"
)

type Handler struct {
	Store    slip.Store
	Exporter *export.Exporter
}

func NewHandler(store slip.Store, exporter *export.Exporter) *Handler {
	return &Handler{Store: store, Exporter: exporter}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary-slips", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdateByQuery)
		r.Delete("/", h.handleDeleteByQuery)
		r.Get("/export.xlsx", h.handleWorkbook)
		r.Post("/preview/pdf", h.handlePreviewPDF)
		r.Route("/{slipID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/pdf", h.handleDownloadPDF)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "slipID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.Store.Create(r.Context(), fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, chi.URLParam(r, "slipID"))
}

func (h *Handler) handleUpdateByQuery(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "ID is required", middleware.GetRequestID(r.Context()))
		return
	}
	h.update(w, r, id)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id string) {
	fields, err := decodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.Store.Update(r.Context(), id, fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, chi.URLParam(r, "slipID"))
}

func (h *Handler) handleDeleteByQuery(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "ID is required", middleware.GetRequestID(r.Context()))
		return
	}
	h.delete(w, r, id)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]any{}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "slipID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	doc := render.Render(rec, render.Options{})
	out, err := h.Exporter.PDF(doc, rec.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAttachment(w, export.Filename(rec.EmployeeName, rec.MonthYear), "application/pdf", out)
}

// handlePreviewPDF exports a slip body without persisting it, using the
// draft filename fallback when the pay period is blank.
func (h *Handler) handlePreviewPDF(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var rec slip.SalaryRecord
	slip.Apply(&rec, fields)

	doc := render.Render(rec, render.Options{})
	out, err := h.Exporter.PDF(doc, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAttachment(w, export.DraftFilename(rec.MonthYear), "application/pdf", out)
}

func (h *Handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	buf, err := export.Workbook(records)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAttachment(w, "Salary_Slips.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, slip.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "Slip not found", reqID)
	default:
		// Validation and store errors both report 400 with the message.
		api.Fail(w, http.StatusBadRequest, err.Error(), reqID)
	}
}

func decodeFields(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()

	fields := make(map[string]any)
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return fields, nil
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
