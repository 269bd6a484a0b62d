package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"growstat-backend/internal/command"
	"growstat-backend/internal/metrics"
	"growstat-backend/internal/services"
	"growstat-backend/internal/store"
	"growstat-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	st := store.NewGormStore(db)
	require.NoError(t, st.Migrate())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := services.NewService(services.Options{
		Store:    st,
		AdminIDs: map[string]struct{}{"1000": {}},
		Metrics:  m,
	})

	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Service:        svc,
		Dispatcher:     command.NewDispatcher(svc, command.Options{Metrics: m}),
		Gatherer:       reg,
		CorsOrigins:    []string{"http://localhost:5173"},
		RequestTimeout: time.Second,
	})
}

func TestRoutes(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Grow",
			method:         http.MethodPost,
			path:           "/api/v1/grow",
			headers:        map[string]string{utils.CallerIDHeader: "42"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			},
		},
		{
			name:           "Grow Without Caller",
			method:         http.MethodPost,
			path:           "/api/v1/grow",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Leaderboard Is Public",
			method:         http.MethodGet,
			path:           "/api/v1/leaderboard",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), `"user_id":"42"`)
			},
		},
		{
			name:           "Admin Route Needs Admin",
			method:         http.MethodDelete,
			path:           "/api/v1/admin/users/42",
			headers:        map[string]string{utils.CallerIDHeader: "42"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Admin Route",
			method:         http.MethodPut,
			path:           "/api/v1/admin/users/42/size",
			headers:        map[string]string{utils.CallerIDHeader: "1000", "Content-Type": "application/json"},
			body:           `{"value": 5}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Command",
			method:         http.MethodPost,
			path:           "/api/v1/commands",
			headers:        map[string]string{"Content-Type": "application/json"},
			body:           `{"caller_id": "42", "command": "/mysize"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "5.00 cm")
			},
		},
		{
			name:           "Metrics",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Body.String(), "growstat_growth_attempts_total")
				assert.Contains(t, w.Body.String(), "growstat_admin_actions_total")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
