package time_entry

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/metrics"
	"github.com/klokku/freelancer/pkg/model"
	log "github.com/sirupsen/logrus"
)

// TimeEntryDTO adds the computed amount to the stored entry.
type TimeEntryDTO struct {
	model.TimeEntry
	Hours  float64 `json:"hours"`
	Amount float64 `json:"amount"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListTimeEntries godoc
// @Summary List time entries
// @Tags TimeEntry
// @Produce json
// @Param projectId query string false "Project id"
// @Param date query string false "Day in YYYY-MM-DD format"
// @Success 200 {array} TimeEntryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/time-entries [get]
func (h *Handler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	if projectId := r.URL.Query().Get("projectId"); projectId != "" {
		entries = ForProject(entries, projectId)
	}
	if date := r.URL.Query().Get("date"); date != "" {
		day, ok := metrics.ParseDate(date, time.Local)
		if !ok {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "Date must be in YYYY-MM-DD format")
			return
		}
		entries = OnDay(entries, day)
	}
	dtos := make([]TimeEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTimeEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(r.Context(), mux.Vars(r)["entryId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(entry))
}

func (h *Handler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	log.Trace("Creating manual time entry")
	var entry model.TimeEntry
	if !rest.DecodeBody(w, r, &entry) {
		return
	}
	stored, err := h.service.CreateManual(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrInvalidTimeRange) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid time range", err.Error())
			return
		}
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(stored))
}

func (h *Handler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if !rest.DecodeBody(w, r, &entry) {
		return
	}
	entry.Id = mux.Vars(r)["entryId"]
	updated, err := h.service.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrInvalidTimeRange) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid time range", err.Error())
			return
		}
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

func (h *Handler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["entryId"])
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

func toDTO(entry model.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		TimeEntry: entry,
		Hours:     metrics.HoursBetween(entry.StartTime, entry.EndTime),
		Amount:    metrics.RoundCents(metrics.EntryAmount(entry)),
	}
}
