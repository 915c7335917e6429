package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *ServiceImpl) {
	service, _ := setupServiceTest(t)
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/expenses", handler.ListExpenses).Methods("GET")
	router.HandleFunc("/api/expenses", handler.CreateExpense).Methods("POST")
	router.HandleFunc("/api/expenses/summary", handler.GetSummary).Methods("GET")
	router.HandleFunc("/api/expenses/categories", handler.ListCategories).Methods("GET")
	router.HandleFunc("/api/expenses/{expenseId}", handler.GetExpense).Methods("GET")
	router.HandleFunc("/api/expenses/{expenseId}", handler.UpdateExpense).Methods("PUT")
	router.HandleFunc("/api/expenses/{expenseId}", handler.DeleteExpense).Methods("DELETE")
	return router, service
}

func TestHandler(t *testing.T) {

	t.Run("should create expense with receipt", func(t *testing.T) {
		router, service := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		body := `{"projectId":"p1","description":"Adobe Creative Suite","amount":52.99,"date":"2025-01-15","category":"Software","receipt":"https://example.com/r.pdf"}`
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/expenses", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		expenses, _ := service.List(t.Context())
		require.Len(t, expenses, 1)
		assert.Equal(t, "https://example.com/r.pdf", expenses[0].Receipt)
	})

	t.Run("should list expenses of month", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		seedExpenses(t, service, t.Context())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/expenses?month=2025-02&category=Services", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var expenses []model.Expense
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&expenses))
		require.Len(t, expenses, 1)
		assert.Equal(t, "Stock Photos", expenses[0].Description)
	})

	t.Run("should reject malformed month", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/expenses?month=02-2025", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return summary", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		seedExpenses(t, service, t.Context())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/expenses/summary", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var summary Summary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.InDelta(t, 1200.0, summary.ByCategory["Hardware"], 1e-9)
	})

	t.Run("should list default categories", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/expenses/categories", nil))

		var categories []string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&categories))
		assert.Contains(t, categories, "Office Supplies")
	})
}
