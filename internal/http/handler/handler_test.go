package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/http/handler"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"github.com/straye-as/fieldservice-api/internal/service"
	"github.com/straye-as/fieldservice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRequest(method, path, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCustomerHandler(t *testing.T) {
	store := testutil.NewTestStore(t)
	h := handler.NewCustomerHandler(
		service.NewCustomerService(repository.NewCustomerRepository(store), metrics.NewRegistry(), zap.NewNop()),
		zap.NewNop(),
	)

	t.Run("create trims fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, newRequest(http.MethodPost, "/api/customers", `{"name":"  Acme  ","email":"ops@acme.example"}`, nil))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var customer domain.Customer
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))
		assert.Equal(t, "Acme", customer.Name)
		assert.Equal(t, "ops@acme.example", customer.Email)
		assert.NotEmpty(t, customer.ID)

		w = httptest.NewRecorder()
		h.GetByID(w, newRequest(http.MethodGet, "/api/customers/"+customer.ID, "", map[string]string{"id": customer.ID}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Acme"`)
	})

	t.Run("empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, newRequest(http.MethodPost, "/api/customers", "", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"name is required","type":"validation_error"}`, w.Body.String())
	})

	t.Run("type mismatch keeps decoded fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, newRequest(http.MethodPost, "/api/customers", `{"name":"Bright","phone":5550200}`, nil))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Bright"`)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetByID(w, newRequest(http.MethodGet, "/api/customers/missing", "", map[string]string{"id": "missing"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"customer not found","type":"not_found"}`, w.Body.String())
	})

	t.Run("unexpected errors are not leaked", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		h := handler.NewCustomerHandler(
			service.NewCustomerService(repository.NewCustomerRepository(store), nil, zap.NewNop()),
			zap.New(core),
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := newRequest(http.MethodGet, "/api/customers", "", nil).WithContext(ctx)

		w := httptest.NewRecorder()
		h.List(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal error","type":"internal_error"}`, w.Body.String())
		assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	})
}

func TestMalformedBodyIsLogged(t *testing.T) {
	store := testutil.NewTestStore(t)
	core, logs := observer.New(zapcore.DebugLevel)
	h := handler.NewTechnicianHandler(
		service.NewTechnicianService(repository.NewTechnicianRepository(store), nil, zap.NewNop()),
		zap.New(core),
	)

	w := httptest.NewRecorder()
	h.Create(w, newRequest(http.MethodPost, "/api/technicians", `{"name":`, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	entries := logs.FilterMessage("malformed JSON body treated as empty payload").All()
	require.Len(t, entries, 1)
	assert.Equal(t, `{"name":`, entries[0].ContextMap()["raw"])
}

func TestQuoteHandler_Lifecycle(t *testing.T) {
	store := testutil.NewTestStore(t)
	customer := testutil.CreateTestCustomer(t, store, "Acme")
	h := handler.NewQuoteHandler(
		service.NewQuoteService(store, repository.NewQuoteRepository(store), service.LifecycleOptions{}, nil, zap.NewNop()),
		zap.NewNop(),
	)

	w := httptest.NewRecorder()
	h.Create(w, newRequest(http.MethodPost, "/api/quotes",
		`{"customerId":"`+customer.ID+`","notes":"Spring service","items":[{"description":"Filter","quantity":"2","unitPrice":50},{"description":"Visit"}]}`, nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var quote domain.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 100.0, quote.Total)
	require.Len(t, quote.Items, 2)
	assert.Equal(t, 1.0, quote.Items[1].Quantity)
	assert.Equal(t, 0.0, quote.Items[1].UnitPrice)

	params := map[string]string{"id": quote.ID}

	w = httptest.NewRecorder()
	h.Approve(w, newRequest(http.MethodPost, "/api/quotes/"+quote.ID+"/approve", "", params))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
	assert.Contains(t, w.Body.String(), `"approvedAt"`)

	w = httptest.NewRecorder()
	h.Convert(w, newRequest(http.MethodPost, "/api/quotes/"+quote.ID+"/convert", "", params))
	require.Equal(t, http.StatusCreated, w.Code)

	var result domain.ConvertQuoteResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.QuoteStatusConverted, result.Quote.Status)
	assert.Equal(t, "Quoted Job", result.Job.Title)
	assert.Equal(t, "Spring service", result.Job.Description)
	assert.Nil(t, result.Job.TechnicianID)

	w = httptest.NewRecorder()
	h.Approve(w, newRequest(http.MethodPost, "/api/quotes/"+quote.ID+"/approve", "", params))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"conflict"`)
}

func TestJobHandler_AssignUnknownJob(t *testing.T) {
	store := testutil.NewTestStore(t)
	tech := testutil.CreateTestTechnician(t, store, "Jules")
	h := handler.NewJobHandler(
		service.NewJobService(store, repository.NewJobRepository(store), nil, zap.NewNop()),
		zap.NewNop(),
	)

	w := httptest.NewRecorder()
	h.AssignTechnician(w, newRequest(http.MethodPost, "/api/jobs/missing/assign",
		`{"technicianId":"`+tech.ID+`"}`, map[string]string{"id": "missing"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "job not found")
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodPatch, "/api/jobs", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found","type":"not_found"}`, w.Body.String())
}
