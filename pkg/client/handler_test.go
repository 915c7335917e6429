package client

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
	router.HandleFunc("/api/clients", handler.ListClients).Methods("GET")
	router.HandleFunc("/api/clients", handler.CreateClient).Methods("POST")
	router.HandleFunc("/api/clients/{clientId}", handler.GetClient).Methods("GET")
	router.HandleFunc("/api/clients/{clientId}", handler.UpdateClient).Methods("PUT")
	router.HandleFunc("/api/clients/{clientId}", handler.DeleteClient).Methods("DELETE")
	return router, service
}

func TestHandler(t *testing.T) {

	t.Run("should create and fetch client", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		// given
		body := `{"name":"Acme Corp","email":"contact@acme.com","company":"Acme Corporation"}`
		createRec := httptest.NewRecorder()
		router.ServeHTTP(createRec, httptest.NewRequest("POST", "/api/clients", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, createRec.Code)
		var created model.Client
		require.NoError(t, json.NewDecoder(createRec.Body).Decode(&created))

		// when
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, httptest.NewRequest("GET", "/api/clients/"+created.Id, nil))

		// then
		assert.Equal(t, http.StatusOK, getRec.Code)
		var fetched model.Client
		require.NoError(t, json.NewDecoder(getRec.Body).Decode(&fetched))
		assert.Equal(t, created, fetched)
		assert.Equal(t, "Acme Corp", fetched.Name)
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/clients", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid request body format")
	})

	t.Run("should filter list by search term", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		ctx := t.Context()
		_, _ = service.Create(ctx, model.Client{Name: "Acme Corp"})
		_, _ = service.Create(ctx, model.Client{Name: "Global Solutions"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clients?q=global", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var clients []model.Client
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&clients))
		require.Len(t, clients, 1)
		assert.Equal(t, "Global Solutions", clients[0].Name)
	})

	t.Run("should update client keeping id from path", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		stored, _ := service.Create(t.Context(), model.Client{Name: "Acme Corp"})

		rec := httptest.NewRecorder()
		body := `{"id":"ignored","name":"Acme Inc"}`
		router.ServeHTTP(rec, httptest.NewRequest("PUT", "/api/clients/"+stored.Id, strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		found, err := service.Get(t.Context(), stored.Id)
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", found.Name)
	})

	t.Run("should return 404 for unknown client", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		for _, method := range []string{"GET", "DELETE"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, "/api/clients/missing", nil))

			assert.Equal(t, http.StatusNotFound, rec.Code, method)
		}
	})

	t.Run("should delete client", func(t *testing.T) {
		router, service := setupHandlerTest(t)
		stored, _ := service.Create(t.Context(), model.Client{Name: "Acme Corp"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/clients/"+stored.Id, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		clients, _ := service.List(t.Context())
		assert.Empty(t, clients)
	})
}
