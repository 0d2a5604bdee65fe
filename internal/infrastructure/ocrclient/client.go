package ocrclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mosipdecode/backend/internal/domain"
)

const maxResponseBytes = 10 << 20

// Config holds settings for the remote OCR client
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RateLimit  float64 // requests per second
	Burst      int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zerolog.Logger
}

// Client talks to a remote OCR service that returns fragments as parallel arrays
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	maxRetries  int
	retryDelay  time.Duration
	logger      zerolog.Logger
}

// NewClient creates a new OCR API client
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	rateLimit := config.RateLimit
	if rateLimit <= 0 {
		rateLimit = 5
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 10
	}
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := config.RetryDelay
	if retryDelay == 0 {
		retryDelay = 500 * time.Millisecond
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("component", "ocr").Logger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), burst),
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// Recognize posts a document to the OCR service and maps the reply to a batch.
// Transport failures and 5xx/429 replies are retried; other 4xx replies are not.
func (c *Client) Recognize(ctx context.Context, document []byte, language string) (*domain.OCRBatch, error) {
	body, err := json.Marshal(engineRequest{
		Image:    base64.StdEncoding.EncodeToString(document),
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/ocr", c.baseURL)

	raw, err := retry.DoWithData(
		func() ([]byte, error) {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, retry.Unrecoverable(fmt.Errorf("rate limiter error: %w", err))
			}
			return c.doRequest(ctx, endpoint, body)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn().Err(err).Uint("attempt", n+1).Msg("OCR request failed, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}

	if err := ValidateEngineResponse(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}

	var resp EngineResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrOCRFailure, err)
	}

	batch := MapToBatch(&resp, language)
	c.logger.Debug().
		Int("fragments", len(batch.Fragments)).
		Float64("elapsed", resp.ElapsedTime).
		Str("language", batch.Language).
		Msg("OCR batch received")

	return batch, nil
}

// doRequest executes one POST and returns the body of a 200 reply
func (c *Client) doRequest(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "mosipdecode/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}
	defer resp.Body.Close()

	data, err := readLimitedBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrOCRFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("%w: status %d: %s", domain.ErrOCRFailure, resp.StatusCode, truncate(string(data), 200))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, retry.Unrecoverable(statusErr)
		}
		return nil, statusErr
	}

	return data, nil
}

// readLimitedBody reads at most maxResponseBytes from the reply
func readLimitedBody(r io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxResponseBytes))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
