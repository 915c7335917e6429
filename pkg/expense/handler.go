package expense

import (
	"net/http"
	"time"

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

// ListExpenses godoc
// @Summary List expenses
// @Tags Expense
// @Produce json
// @Param category query string false "Category"
// @Param month query string false "Month in YYYY-MM format"
// @Success 200 {array} model.Expense
// @Router /api/expenses [get]
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "Month must be in YYYY-MM format")
			return
		}
	}
	expenses, err := h.service.Filter(r.Context(), r.URL.Query().Get("category"), month)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, DefaultCategories)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.service.Get(r.Context(), mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, expense)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense model.Expense
	if !rest.DecodeBody(w, r, &expense) {
		return
	}
	stored, err := h.service.Create(r.Context(), expense)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var expense model.Expense
	if !rest.DecodeBody(w, r, &expense) {
		return
	}
	expense.Id = mux.Vars(r)["expenseId"]
	updated, err := h.service.Update(r.Context(), expense)
	if err != nil {
		rest.WriteRepositoryError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["expenseId"])
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
