package timer

import (
	"errors"
	"net/http"
	"time"

	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/metrics"
	log "github.com/sirupsen/logrus"
)

type StatusDTO struct {
	Running        bool    `json:"running"`
	Start          string  `json:"start,omitempty"`
	ProjectId      string  `json:"projectId,omitempty"`
	Task           string  `json:"task,omitempty"`
	Rate           float64 `json:"rate,omitempty"`
	ElapsedSeconds int     `json:"elapsedSeconds"`
	Earned         float64 `json:"earned"`
}

type StartRequest struct {
	ProjectId string `json:"projectId"`
	Task      string `json:"task"`
	// Rate falls back to the configured default hourly rate.
	Rate *float64 `json:"rate"`
}

type Handler struct {
	service     Service
	defaultRate float64
}

func NewHandler(service Service, defaultRate float64) *Handler {
	return &Handler{service, defaultRate}
}

// GetTimer godoc
// @Summary Current timer state
// @Tags Timer
// @Produce json
// @Success 200 {object} StatusDTO
// @Router /api/timer [get]
func (h *Handler) GetTimer(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Current(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statusToDTO(status))
}

// StartTimer godoc
// @Summary Start the timer
// @Tags Timer
// @Accept json
// @Produce json
// @Param request body StartRequest true "Project and task"
// @Success 201 {object} StatusDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Timer already running"
// @Router /api/timer [post]
func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	log.Trace("Starting timer")
	var request StartRequest
	if !rest.DecodeBody(w, r, &request) {
		return
	}
	rate := h.defaultRate
	if request.Rate != nil {
		rate = *request.Rate
	}
	timer, err := h.service.Start(r.Context(), request.ProjectId, request.Task, rate)
	if err != nil {
		switch {
		case errors.Is(err, ErrProjectRequired), errors.Is(err, ErrDescriptionRequired), errors.Is(err, ErrInvalidRate):
			rest.WriteError(w, http.StatusBadRequest, "Invalid timer request", err.Error())
		case errors.Is(err, ErrAlreadyRunning):
			rest.WriteError(w, http.StatusConflict, "Timer already running", "Stop the running timer first")
		default:
			rest.WriteRepositoryError(w, err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusCreated, statusToDTO(Status{Running: true, Timer: timer}))
}

// StopTimer godoc
// @Summary Stop the timer and record the time entry
// @Tags Timer
// @Produce json
// @Success 200 {object} model.TimeEntry
// @Failure 409 {object} rest.ErrorResponse "Timer not running"
// @Router /api/timer [delete]
func (h *Handler) StopTimer(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Stop(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotRunning) {
			rest.WriteError(w, http.StatusConflict, "Timer not running", "")
			return
		}
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, entry)
}

func statusToDTO(status Status) StatusDTO {
	if !status.Running {
		return StatusDTO{}
	}
	return StatusDTO{
		Running:        true,
		Start:          status.Timer.Start.Format(time.RFC3339),
		ProjectId:      status.Timer.ProjectId,
		Task:           status.Timer.Description,
		Rate:           status.Timer.HourlyRate,
		ElapsedSeconds: int(status.Elapsed.Seconds()),
		Earned:         metrics.RoundCents(status.Elapsed.Hours() * status.Timer.HourlyRate),
	}
}
