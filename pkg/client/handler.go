package client

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListClients godoc
// @Summary List clients
// @Description Returns all clients, filtered by the optional search term q
// @Tags Client
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} model.Client
// @Router /api/clients [get]
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing clients")
	clients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, clients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Get(r.Context(), mux.Vars(r)["clientId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, client)
}

// CreateClient godoc
// @Summary Create a client
// @Tags Client
// @Accept json
// @Produce json
// @Param client body model.Client true "Client"
// @Success 201 {object} model.Client
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/clients [post]
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client model.Client
	if !rest.DecodeBody(w, r, &client) {
		return
	}
	stored, err := h.service.Create(r.Context(), client)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var client model.Client
	if !rest.DecodeBody(w, r, &client) {
		return
	}
	client.Id = mux.Vars(r)["clientId"]
	updated, err := h.service.Update(r.Context(), client)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["clientId"]
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	if !deleted {
		log.Debugf("Client %s not found", id)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
