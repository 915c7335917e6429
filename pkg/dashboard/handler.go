package dashboard

import (
	"net/http"
	"time"

	"github.com/klokku/freelancer/internal/rest"
	"github.com/klokku/freelancer/pkg/metrics"
	log "github.com/sirupsen/logrus"
)

type SummaryDTO struct {
	ActiveProjects     int     `json:"activeProjects"`
	TotalRevenue       float64 `json:"totalRevenue"`
	ActiveClients      int     `json:"activeClients"`
	PendingInvoices    int     `json:"pendingInvoices"`
	SecondsToday       int     `json:"secondsToday"`
	EarningsToday      float64 `json:"earningsToday"`
	TotalExpenses      float64 `json:"totalExpenses"`
	StorageUsedMB      float64 `json:"storageUsedMB"`
	OverdueMilestones  int     `json:"overdueMilestones"`
	UpcomingMilestones int     `json:"upcomingMilestones"`
}

type ProjectOverviewDTO struct {
	ProjectId           string  `json:"projectId"`
	ProjectName         string  `json:"projectName"`
	ClientName          string  `json:"clientName"`
	Status              string  `json:"status"`
	Budget              float64 `json:"budget"`
	Progress            float64 `json:"progress"`
	TimeSpent           int     `json:"timeSpent"`
	Revenue             float64 `json:"revenue"`
	CompletedMilestones int     `json:"completedMilestones"`
	TotalMilestones     int     `json:"totalMilestones"`
}

type SeedResultDTO struct {
	Clients     int `json:"clients"`
	Projects    int `json:"projects"`
	TimeEntries int `json:"timeEntries"`
	Milestones  int `json:"milestones"`
	Expenses    int `json:"expenses"`
	Documents   int `json:"documents"`
	Invoices    int `json:"invoices"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetSummary godoc
// @Summary Dashboard figures
// @Tags Dashboard
// @Produce json
// @Success 200 {object} SummaryDTO
// @Router /api/dashboard [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SummaryDTO{
		ActiveProjects:     summary.ActiveProjects,
		TotalRevenue:       metrics.RoundCents(summary.TotalRevenue),
		ActiveClients:      summary.ActiveClients,
		PendingInvoices:    summary.PendingInvoices,
		SecondsToday:       int(summary.HoursToday.Seconds()),
		EarningsToday:      metrics.RoundCents(summary.EarningsToday),
		TotalExpenses:      metrics.RoundCents(summary.TotalExpenses),
		StorageUsedMB:      summary.StorageUsedMB,
		OverdueMilestones:  summary.OverdueMilestones,
		UpcomingMilestones: summary.UpcomingMilestones,
	})
}

func (h *Handler) GetProjectOverviews(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.service.ProjectOverviews(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	dtos := make([]ProjectOverviewDTO, 0, len(overviews))
	for _, o := range overviews {
		dtos = append(dtos, ProjectOverviewDTO{
			ProjectId:           o.ProjectId,
			ProjectName:         o.ProjectName,
			ClientName:          o.ClientName,
			Status:              o.Status,
			Budget:              o.Budget,
			Progress:            o.Progress,
			TimeSpent:           int(o.TimeSpent.Seconds()),
			Revenue:             metrics.RoundCents(o.Revenue),
			CompletedMilestones: o.CompletedMilestones,
			TotalMilestones:     o.TotalMilestones,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetTimesheet godoc
// @Summary Time entries as CSV
// @Tags Dashboard
// @Produce text/csv
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {string} string
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/timesheet.csv [get]
func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDay(w, r.URL.Query().Get("from"), "from")
	if !ok {
		return
	}
	to, ok := parseDay(w, r.URL.Query().Get("to"), "to")
	if !ok {
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	csv, err := h.service.Timesheet(r.Context(), from, to)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="timesheet.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write timesheet: %v", err)
	}
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Seed(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, SeedResultDTO(result))
}

func (h *Handler) DeleteAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseDay(w http.ResponseWriter, value string, name string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid "+name+" format", name+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return day, true
}
