package milestone

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/internal/utils"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
)

type MilestoneDTO struct {
	model.Milestone
	Overdue bool `json:"overdue"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service, clock}
}

// ListMilestones godoc
// @Summary List milestones, optionally of one project
// @Tags Milestone
// @Produce json
// @Param projectId query string false "Project id"
// @Success 200 {array} MilestoneDTO
// @Router /api/milestones [get]
func (h *Handler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	if projectId := r.URL.Query().Get("projectId"); projectId != "" {
		milestones = ForProject(milestones, projectId)
	}
	now := h.clock.Now()
	dtos := make([]MilestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		dtos = append(dtos, h.toDTO(m, now))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetMilestone(w http.ResponseWriter, r *http.Request) {
	milestone, err := h.service.Get(r.Context(), mux.Vars(r)["milestoneId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(milestone, h.clock.Now()))
}

func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	var milestone model.Milestone
	if !rest.DecodeBody(w, r, &milestone) {
		return
	}
	stored, err := h.service.Create(r.Context(), milestone)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(stored, h.clock.Now()))
}

func (h *Handler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var milestone model.Milestone
	if !rest.DecodeBody(w, r, &milestone) {
		return
	}
	milestone.Id = mux.Vars(r)["milestoneId"]
	updated, err := h.service.Update(r.Context(), milestone)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(updated, h.clock.Now()))
}

// ToggleMilestone flips pending and completed.
func (h *Handler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	toggled, err := h.service.ToggleStatus(r.Context(), mux.Vars(r)["milestoneId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(toggled, h.clock.Now()))
}

func (h *Handler) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["milestoneId"])
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

func (h *Handler) toDTO(m model.Milestone, now time.Time) MilestoneDTO {
	return MilestoneDTO{Milestone: m, Overdue: metrics.IsOverdue(m, now)}
}
