package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *ServiceImpl) {
	service, _, _ := setupServiceTest(t)
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/dashboard", handler.GetSummary).Methods("GET")
	router.HandleFunc("/api/dashboard/projects", handler.GetProjectOverviews).Methods("GET")
	router.HandleFunc("/api/timesheet.csv", handler.GetTimesheet).Methods("GET")
	router.HandleFunc("/api/seed", handler.Seed).Methods("POST")
	router.HandleFunc("/api/data", handler.DeleteAllData).Methods("DELETE")
	return router, service
}

func TestHandler(t *testing.T) {

	t.Run("should seed and summarize", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/seed", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
		var seeded SeedResultDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&seeded))
		assert.Equal(t, 9, seeded.TimeEntries)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/dashboard", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var summary SummaryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, 3, summary.ActiveProjects)
		assert.Equal(t, 1912.5, summary.TotalRevenue)
		assert.Equal(t, 81000, summary.SecondsToday)
	})

	t.Run("should list project overviews", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		_, err := service.Seed(t.Context())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/dashboard/projects", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var overviews []ProjectOverviewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&overviews))
		require.Len(t, overviews, 3)
		assert.Equal(t, "Sarah Johnson", overviews[1].ClientName)
		assert.Equal(t, 27000, overviews[1].TimeSpent)
	})

	t.Run("should export timesheet as csv", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		start := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.Local)
		_, err := service.collections.TimeEntries.Add(t.Context(), model.TimeEntry{ProjectId: "p1", Description: "Work", StartTime: start, EndTime: start.Add(time.Hour), HourlyRate: 10})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/timesheet.csv?from=2025-03-14&to=2025-03-14", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Work,01:00:00,10.00,10.00")
	})

	t.Run("should reject malformed timesheet range", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/timesheet.csv?from=14.03.2025", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should delete all data", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		_, err := service.Seed(t.Context())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/data", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		clients, _ := service.collections.Clients.GetAll(t.Context())
		assert.Empty(t, clients)
	})
}
