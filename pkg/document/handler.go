package document

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/model"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListDocuments godoc
// @Summary List documents
// @Tags Document
// @Produce json
// @Param type query string false "Document type"
// @Param q query string false "Matches document or project name"
// @Success 200 {array} model.Document
// @Router /api/documents [get]
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.service.Filter(r.Context(), r.URL.Query().Get("type"), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, documents)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, DefaultTypes)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.service.Get(r.Context(), mux.Vars(r)["documentId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, document)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var document model.Document
	if !rest.DecodeBody(w, r, &document) {
		return
	}
	stored, err := h.service.Create(r.Context(), document)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var document model.Document
	if !rest.DecodeBody(w, r, &document) {
		return
	}
	document.Id = mux.Vars(r)["documentId"]
	updated, err := h.service.Update(r.Context(), document)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["documentId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
