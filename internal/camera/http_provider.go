package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxFrameBytes = 8 << 20

// HTTPProvider polls a still-image endpoint per lens, such as the
// /capture handler of an ESP32-CAM board
type HTTPProvider struct {
	urls       map[Lens]string
	interval   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPProvider creates a provider; an empty URL leaves that lens unavailable
func NewHTTPProvider(backURL, frontURL string, interval time.Duration, httpClient *http.Client, logger *zap.Logger) *HTTPProvider {
	urls := make(map[Lens]string, 2)
	if backURL != "" {
		urls[LensBack] = backURL
	}
	if frontURL != "" {
		urls[LensFront] = frontURL
	}
	return &HTTPProvider{
		urls:       urls,
		interval:   interval,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Bind starts polling the lens URL; release stops polling and waits for it
func (p *HTTPProvider) Bind(ctx context.Context, lens Lens, sink func(Frame)) (func(), error) {
	url, ok := p.urls[lens]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLensUnavailable, lens)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			if frame, err := p.capture(ctx, url, lens); err != nil {
				if ctx.Err() == nil {
					p.logger.Debug("camera capture failed", zap.String("lens", lens.String()), zap.Error(err))
				}
			} else {
				sink(frame)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (p *HTTPProvider) capture(ctx context.Context, url string, lens Lens) (Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("camera: failed to create capture request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("camera: capture request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Frame{}, fmt.Errorf("camera: capture returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFrameBytes))
	if err != nil {
		return Frame{}, fmt.Errorf("camera: failed to read frame: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return Frame{
		Data:        data,
		ContentType: contentType,
		Lens:        lens,
		CapturedAt:  time.Now(),
	}, nil
}
