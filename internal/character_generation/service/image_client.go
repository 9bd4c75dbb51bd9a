package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/charforge-backend/config"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/alerting"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
	snapdomain "github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 8 << 20

// ImageClient calls the upstream character image service
type ImageClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter // nil when pacing is disabled
}

// NewImageClient creates a new image service client
func NewImageClient(cfg config.ImageServiceConfig) *ImageClient {
	c := &ImageClient{
		endpoint: cfg.URL + cfg.Path,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// Generate posts the draft and returns the image reference.
//
// Errors: domain.ErrNoImage when the reply carries no string under either
// key (any JSON shape), domain.ErrMalformedResponse when the body is not
// JSON, and an
// alerting.TransportError when the service could not be reached.
// The HTTP status is not consulted; the body decides.
func (c *ImageClient) Generate(ctx context.Context, draft snapdomain.Draft) (string, error) {
	logger := logging.NewLogger(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", alerting.Transport(fmt.Errorf("rate limiter: %w", err))
		}
	}

	body, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	recordUpstreamCall(duration)
	if err != nil {
		return "", alerting.Transport(fmt.Errorf("image service request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", alerting.Transport(fmt.Errorf("read image service response: %w", err))
	}
	if resp.StatusCode >= 400 {
		logger.LogWarnf("generate_character", "image service returned status %d", resp.StatusCode)
	}

	result, err := domain.ParseGenerateResult(raw)
	if err != nil {
		return "", err
	}

	ref := result.Reference()
	if ref == "" {
		return "", domain.ErrNoImage
	}
	logger.LogDebugf("generate_character", "image service answered in %s", duration)
	return ref, nil
}
