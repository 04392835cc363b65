package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/prestamos-api/internal/database"
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/jobs"
	"github.com/sjperalta/prestamos-api/internal/middleware"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"github.com/sjperalta/prestamos-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handlers-test-secret"

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	noon := time.Date(2024, 3, 20, 12, 0, 0, 0, loc)
	calendar := interest.NewCalendar(loc).WithClock(func() time.Time { return noon })

	worker := jobs.NewWorker(1)
	t.Cleanup(func() {
		worker.Shutdown()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svcs := services.NewServices(repository.NewRepositories(db), worker, calendar, db)
	h := NewHandlers(svcs)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Index)
	protected := v1.Group("")
	protected.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(protected)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID:           9,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &apiClient{t: t, router: router, token: signed}
}

func (a *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func idOf(t *testing.T, obj interface{}) uint {
	t.Helper()
	m, ok := obj.(map[string]interface{})
	require.True(t, ok)
	return uint(m["id"].(float64))
}

func TestPaymentFlow(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodPost, "/clients", `{"client": {"dni": "40112233", "first_name": "Rosa", "last_name": "Quispe"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clientID := idOf(t, decode(t, w)["client"])

	w = api.do(http.MethodPost, "/clients", `{"dni": "40112233", "first_name": "Otra", "last_name": "Persona"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, "/loans", fmt.Sprintf(
		`{"loan": {"client_id": %d, "principal": 1000, "daily_rate": "10", "start_date": "2024-03-01", "installments": 2}}`, clientID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loanID := idOf(t, decode(t, w)["loan"])

	w = api.do(http.MethodGet, fmt.Sprintf("/loans/%d/installments", loanID), "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["installments"].([]interface{})
	require.Len(t, list, 2)
	first, second := idOf(t, list[0]), idOf(t, list[1])

	w = api.do(http.MethodPost, "/installments/pay", fmt.Sprintf(`{"installment_id": %d, "amount": 100}`, second))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/installments/%d/interest?amount=400", first), "")
	require.Equal(t, http.StatusOK, w.Code)
	preview := decode(t, w)
	assert.Equal(t, "430", preview["total_due"])
	assert.Equal(t, false, preview["full_payoff"])

	w = api.do(http.MethodPost, "/installments/pay", fmt.Sprintf(`{"payment": {"installment_id": %d, "amount": 400}}`, first))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := decode(t, w)
	payment := result["payment"].(map[string]interface{})
	assert.Equal(t, "REC-20240320-00001", payment["reference"])
	assert.Equal(t, "430", payment["total_paid"])
	assert.Equal(t, "Parcial", result["installment"].(map[string]interface{})["status"])

	w = api.do(http.MethodGet, fmt.Sprintf("/payments/%d/receipt", idOf(t, payment)), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "recibo_REC-20240320-00001.pdf")

	w = api.do(http.MethodGet, fmt.Sprintf("/loans/%d/payments", loanID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["payments"], 1)

	w = api.do(http.MethodGet, fmt.Sprintf("/clients/%d/loans?status=1", clientID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = api.do(http.MethodGet, "/audits?entity=Cuota", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["audits"], 1)
}

func TestRequestValidation(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, "/installments/pay", `{`, http.StatusBadRequest},
		{"missing amount", http.MethodPost, "/installments/pay", `{"installment_id": 1}`, http.StatusBadRequest},
		{"negative amount", http.MethodPost, "/installments/pay", `{"installment_id": 1, "amount": -5}`, http.StatusBadRequest},
		{"negative days", http.MethodPost, "/installments/pay", `{"installment_id": 1, "amount": 5, "days": -1}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/installments/pay", `{"installment_id": 1, "amount": 5, "payment_date": "20/03/2024"}`, http.StatusBadRequest},
		{"unknown installment", http.MethodPost, "/installments/pay", `{"installment_id": 77, "amount": 5}`, http.StatusNotFound},
		{"bad id", http.MethodGet, "/loans/abc", "", http.StatusBadRequest},
		{"unknown loan", http.MethodGet, "/loans/5", "", http.StatusNotFound},
		{"bad preview amount", http.MethodGet, "/installments/1/interest?amount=x", "", http.StatusBadRequest},
		{"loan without principal", http.MethodPost, "/loans", `{"client_id": 1, "daily_rate": 1}`, http.StatusBadRequest},
		{"bad status filter", http.MethodGet, "/clients/1/loans?status=a", "", http.StatusBadRequest},
		{"unknown job", http.MethodPost, "/jobs/nope/trigger", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAuthRequired(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/status", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/jobs/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "stats")
}
