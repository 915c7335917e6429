package project

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

// ListProjects godoc
// @Summary List projects
// @Tags Project
// @Produce json
// @Param q query string false "Search term"
// @Param status query string false "active, completed or on-hold"
// @Success 200 {array} model.Project
// @Router /api/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing projects")
	status := model.ProjectStatus(r.URL.Query().Get("status"))
	if status != "" && !ValidStatus(status) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid status", "Status must be one of active, completed, on-hold")
		return
	}
	projects, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), status)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), mux.Vars(r)["projectId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if !rest.DecodeBody(w, r, &project) {
		return
	}
	stored, err := h.service.Create(r.Context(), project)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if !rest.DecodeBody(w, r, &project) {
		return
	}
	project.Id = mux.Vars(r)["projectId"]
	updated, err := h.service.Update(r.Context(), project)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["projectId"])
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
