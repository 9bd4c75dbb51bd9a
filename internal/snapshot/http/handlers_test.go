package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/repository"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Put(context.Context, string, domain.Record) error { return errors.New("down") }
func (brokenStore) Get(context.Context, string) (domain.Record, bool, error) {
	return domain.Record{}, false, errors.New("down")
}
func (brokenStore) Clear(context.Context, string) error { return errors.New("down") }

func router(bridge *service.Bridge) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionMiddleware())
	NewHandler(bridge).Register(r.Group("/api/v1/snapshot"))
	return r
}

func get(r http.Handler, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshot", nil)
	req.Header.Set(middleware.SessionHeader, sid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSnapshot(t *testing.T) {
	bridge := service.NewBridge(repository.NewMemoryStore())
	r := router(bridge)

	assert.Equal(t, http.StatusNotFound, get(r, "s1").Code)

	require.NoError(t, bridge.Put(context.Background(), "s1", "http://img/a.png", domain.Draft{Species: "Gnome"}))
	w := get(r, "s1")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "http://img/a.png", body[domain.KeyGeneratedCharacterImage])
	assert.Contains(t, body[domain.KeyCharacterFormData], `"species":"Gnome"`)

	assert.Equal(t, http.StatusNotFound, get(r, "s2").Code)
}

func TestGetSnapshot_StoreError(t *testing.T) {
	r := router(service.NewBridge(brokenStore{}))
	assert.Equal(t, http.StatusInternalServerError, get(r, "s1").Code)
}
