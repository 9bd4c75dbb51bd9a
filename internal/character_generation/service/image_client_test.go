package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientFor(url string) *ImageClient {
	return NewImageClient(config.ImageServiceConfig{
		URL:     url,
		Path:    "/api/generate-character",
		Timeout: 5 * time.Second,
	})
}

func TestImageClient_Generate(t *testing.T) {
	draft := snapdomain.Draft{Age: "120", Gender: "female", Species: "Elf", Class: "Wizard", Location: "Forest", Color: "green"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-character", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "rid-7", r.Header.Get("X-Request-Id"))

		var got snapdomain.Draft
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, draft, got)

		w.Write([]byte(`{"imageUrl": "http://img/elf.png", "image": "data:image/png;base64,AAAA"}`))
	}))
	defer server.Close()

	ctx := logging.WithRequestID(context.Background(), "rid-7")
	image, err := clientFor(server.URL).Generate(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "http://img/elf.png", image)
}

func TestImageClient_Generate_ImageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image": "data:image/png;base64,AAAA"}`))
	}))
	defer server.Close()

	image, err := clientFor(server.URL).Generate(context.Background(), snapdomain.Draft{})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", image)
}

func TestImageClient_Generate_NoImage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty object", http.StatusOK, `{}`},
		{"error payload", http.StatusInternalServerError, `{"error": "model overloaded"}`},
		{"array", http.StatusOK, `[]`},
		{"string", http.StatusOK, `"oops"`},
		{"number", http.StatusOK, `42`},
		{"non-string image url", http.StatusOK, `{"imageUrl": 123}`},
		{"null image", http.StatusOK, `{"image": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := clientFor(server.URL).Generate(context.Background(), snapdomain.Draft{})
			assert.ErrorIs(t, err, domain.ErrNoImage)
			assert.Equal(t, alerting.ClassApplication, alerting.Classify(err))
		})
	}
}

func TestImageClient_Generate_NonErrorStatusWithImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"imageUrl": "http://img/late.png"}`))
	}))
	defer server.Close()

	image, err := clientFor(server.URL).Generate(context.Background(), snapdomain.Draft{})
	require.NoError(t, err)
	assert.Equal(t, "http://img/late.png", image)
}

func TestImageClient_Generate_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	_, err := clientFor(server.URL).Generate(context.Background(), snapdomain.Draft{})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, alerting.ClassApplication, alerting.Classify(err))
}

func TestImageClient_Generate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := clientFor(url).Generate(context.Background(), snapdomain.Draft{})
	require.Error(t, err)
	assert.Equal(t, alerting.ClassTransport, alerting.Classify(err))
}

func TestImageClient_Generate_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c := NewImageClient(config.ImageServiceConfig{URL: server.URL, Path: "/", Timeout: 50 * time.Millisecond})
	_, err := c.Generate(context.Background(), snapdomain.Draft{})
	require.Error(t, err)
	assert.Equal(t, alerting.ClassTransport, alerting.Classify(err))
}

func TestImageClient_RateLimiterHonoursContext(t *testing.T) {
	c := NewImageClient(config.ImageServiceConfig{URL: "http://unused", RateLimit: 0.001, Burst: 1})
	require.NotNil(t, c.limiter)
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Generate(ctx, snapdomain.Draft{})
	require.Error(t, err)
	assert.Equal(t, alerting.ClassTransport, alerting.Classify(err))
}

func TestImageClient_RecordsUpstreamCalls(t *testing.T) {
	ResetMetrics()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image": "x"}`))
	}))
	defer server.Close()

	_, err := clientFor(server.URL).Generate(context.Background(), snapdomain.Draft{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), GetMetrics().UpstreamCalls)
}
