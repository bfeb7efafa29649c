package drafthandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slipgen/internal/domain/draft"
	"slipgen/internal/domain/export"
	"slipgen/internal/domain/render"
	"slipgen/internal/domain/slip"
	"slipgen/internal/transport/http/api"
	"slipgen/internal/transport/http/middleware"
)

// Handler exposes the single process-local editing session: field edits,
// logo ingestion, loading a stored record, and exporting the draft without
// persisting it.
type Handler struct {
	Session  *draft.Session
	Store    slip.Store
	Exporter *export.Exporter
}

func NewHandler(session *draft.Session, store slip.Store, exporter *export.Exporter) *Handler {
	return &Handler{Session: session, Store: store, Exporter: exporter}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/draft", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/fields", h.handleApplyField)
		r.Post("/logo", h.handleUploadLogo)
		r.Post("/load/{slipID}", h.handleLoad)
		r.Post("/reset", h.handleReset)
		r.Get("/pdf", h.handleDownloadPDF)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Session.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApplyField(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var edit struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil || edit.Name == "" {
		api.Fail(w, http.StatusBadRequest, "field name is required", middleware.GetRequestID(r.Context()))
		return
	}

	h.Session.ApplyField(edit.Name, edit.Value)
	api.Success(w, h.Session.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("logo")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "logo file is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	// The read is asynchronous; the upload response waits for this one
	// ingestion so the multipart body stays open until it completes.
	if err := <-h.Session.ApplyLogo(file, header.Header.Get("Content-Type")); err != nil {
		api.Fail(w, http.StatusBadRequest, "failed to read logo: "+err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Session.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "slipID"))
	if err != nil {
		if errors.Is(err, slip.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "Slip not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	h.Session.Load(rec)
	api.Success(w, h.Session.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset()
	api.Success(w, h.Session.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	rec := h.Session.Snapshot()

	doc := render.Render(rec, render.Options{})
	out, err := h.Exporter.PDF(doc, "")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+export.DraftFilename(rec.MonthYear)+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
