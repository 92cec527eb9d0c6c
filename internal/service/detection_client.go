package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
)

const (
	summaryStatisticsPath = "/api/detections/statistics"
	zoneStatisticsPath    = "/api/detections/statistics/zones"
	hourlyPatternsPath    = "/api/detections/statistics/recurring-hours"

	maxResponseBytes = 4 << 20
)

// DetectionClient is the typed REST client for the detections statistics API
type DetectionClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDetectionClient creates a client bound to baseURL.
// httpClient is shared by the whole process.
func NewDetectionClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *DetectionClient {
	return &DetectionClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewHTTPClient builds the process-wide HTTP client
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// FetchSummaryStatistics calls GET /api/detections/statistics
func (c *DetectionClient) FetchSummaryStatistics(ctx context.Context, authHeader string) (domain.StatisticsBundle, error) {
	var bundle domain.StatisticsBundle
	if err := c.get(ctx, summaryStatisticsPath, authHeader, &bundle); err != nil {
		return domain.StatisticsBundle{}, err
	}
	return bundle, nil
}

// FetchZoneStatistics calls GET /api/detections/statistics/zones
func (c *DetectionClient) FetchZoneStatistics(ctx context.Context, authHeader string) ([]domain.ZoneStatistic, error) {
	var zones []domain.ZoneStatistic
	if err := c.get(ctx, zoneStatisticsPath, authHeader, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// FetchHourlyPatterns calls GET /api/detections/statistics/recurring-hours
func (c *DetectionClient) FetchHourlyPatterns(ctx context.Context, authHeader string) ([]domain.HourlyPattern, error) {
	var patterns []domain.HourlyPattern
	if err := c.get(ctx, hourlyPatternsPath, authHeader, &patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// get performs one round trip and decodes a JSON body into out
func (c *DetectionClient) get(ctx context.Context, path, authHeader string, out any) error {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("detections: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("detections: request %s failed: %w: %w", path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("detections: failed to read %s response: %w: %w", path, domain.ErrTransport, err)
	}

	c.logger.Debug("detections api call",
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("detections: failed to decode %s response: %w: %w", path, domain.ErrDecode, err)
	}
	return nil
}

// errorMessage extracts {"message": ...} from an error body, falling back to the status text
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
