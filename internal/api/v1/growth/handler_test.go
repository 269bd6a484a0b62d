package growth_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"growstat-backend/internal/api/v1/growth"
	"growstat-backend/internal/middleware"
	"growstat-backend/internal/services"
	"growstat-backend/internal/store"
	"growstat-backend/internal/utils"

	"github.com/coder/quartz"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *quartz.Mock) {
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

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := services.NewService(services.Options{
		Store: st,
		Clock: clock,
		Rand:  func() float64 { return 0 },
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.Use(middleware.CallerMiddleware())
	growth.RegisterRoutes(v1, growth.NewHandler(svc))
	return r, clock
}

func do(r *gin.Engine, method, path, callerID, displayName string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if callerID != "" {
		req.Header.Set(utils.CallerIDHeader, callerID)
	}
	if displayName != "" {
		req.Header.Set(utils.DisplayNameHeader, displayName)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type growResponse struct {
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Data    growth.GrowResponse `json:"data"`
}

func TestGrowAndStatus(t *testing.T) {
	r, clock := setupRouter(t)

	w := do(r, http.MethodGet, "/api/v1/me", "42", "Masha")
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Data growth.StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Data.Exists)
	assert.Equal(t, 0.0, status.Data.Size)

	w = do(r, http.MethodPost, "/api/v1/grow", "42", "Masha")
	require.Equal(t, http.StatusOK, w.Code)
	var grown growResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grown))
	assert.True(t, grown.Data.Allowed)
	assert.Equal(t, "Masha", grown.Data.DisplayName)
	assert.Equal(t, 0.5, grown.Data.Growth)
	assert.Equal(t, 0.5, grown.Data.Size)

	clock.Advance(20 * time.Minute)
	w = do(r, http.MethodPost, "/api/v1/grow", "42", "Masha")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2400", w.Header().Get("Retry-After"))
	var denied growResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &denied))
	assert.False(t, denied.Data.Allowed)
	assert.Equal(t, 40, denied.Data.RemainingMinutes)
	assert.Equal(t, 0.5, denied.Data.Size)

	w = do(r, http.MethodGet, "/api/v1/me", "42", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Data.Exists)
	assert.Equal(t, "Masha", status.Data.DisplayName)
	assert.Equal(t, 2400, status.Data.NextGrowthIn)
}

func TestGrowRequiresCaller(t *testing.T) {
	r, _ := setupRouter(t)
	w := do(r, http.MethodPost, "/api/v1/grow", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
