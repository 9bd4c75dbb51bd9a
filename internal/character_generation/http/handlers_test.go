package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/repository"
	snapservice "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewResponse struct {
	View domain.ViewState `json:"view"`
}

func setup(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *snapservice.Bridge) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	bridge := snapservice.NewBridge(repository.NewMemoryStore())
	client := service.NewImageClient(config.ImageServiceConfig{URL: server.URL, Path: "/api/generate-character", Timeout: 5 * time.Second})
	gen := service.NewGenerator(client, bridge, alerting.NewPolicy(true), nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.SessionMiddleware())
	NewHandler(gen).Register(r.Group("/api/v1/generator"))
	return r, bridge
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "sess-gen")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) domain.ViewState {
	t.Helper()
	var resp viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.View
}

func TestSubmit_SuccessWritesSnapshot(t *testing.T) {
	r, bridge := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"imageUrl": "http://img/dwarf.png"}`))
	})

	w := request(r, http.MethodPost, "/api/v1/generator/submit",
		`{"age":"90","gender":"male","species":"Dwarf","class":"Cleric","location":"Mountain","color":"red"}`)
	require.Equal(t, http.StatusOK, w.Code)

	v := decodeView(t, w)
	assert.Equal(t, domain.FaceBack, v.Face)
	assert.Equal(t, "http://img/dwarf.png", v.Image)
	assert.True(t, strings.HasPrefix(v.FunFact, service.FunFactPrefix))

	rec, ok, err := bridge.Raw(t.Context(), "sess-gen")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "http://img/dwarf.png", rec.GeneratedCharacterImage)
	assert.JSONEq(t, `{"age":"90","gender":"male","species":"Dwarf","class":"Cleric","location":"Mountain","color":"red"}`, rec.CharacterFormData)

	w = request(r, http.MethodGet, "/api/v1/generator", "")
	assert.Equal(t, v, decodeView(t, w))
}

func TestSubmit_FailureRevertsToForm(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream"}`))
	})

	w := request(r, http.MethodPost, "/api/v1/generator/submit", `{"species":"Elf"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.FrontView(), decodeView(t, w))
}

func TestSubmit_MalformedResponseRaisesAlert(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	w := request(r, http.MethodPost, "/api/v1/generator/submit", `{}`)
	v := decodeView(t, w)
	assert.Equal(t, domain.FaceFront, v.Face)
	require.NotNil(t, v.Alert)
	assert.Equal(t, alerting.ClassApplication, v.Alert.Class)
}

func TestSubmit_InvalidBody(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {})

	w := request(r, http.MethodPost, "/api/v1/generator/submit", `{"age": 12}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReset(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image": "x"}`))
	})

	request(r, http.MethodPost, "/api/v1/generator/submit", `{}`)
	w := request(r, http.MethodPost, "/api/v1/generator/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.FrontView(), decodeView(t, w))
}

func TestFunFact(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {})

	w := request(r, http.MethodGet, "/api/v1/generator/fun-fact", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["fun_fact"], service.FunFactPrefix))
}
