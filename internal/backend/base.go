package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ngmaloney/flood-terminal/internal/observability"
	"github.com/sony/gobreaker/v2"
)

// baseClient carries what both endpoints share: the HTTP client, a circuit
// breaker, request IDs and metrics. Each call is a single attempt.
type baseClient struct {
	baseURL    string
	endpoint   string
	userAgent  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	metrics    *observability.Metrics
	logger     *slog.Logger
}

func newBaseClient(baseURL, endpoint, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) baseClient {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        endpoint,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return baseClient{
		baseURL:    baseURL,
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    cb,
		metrics:    metrics,
		logger:     logger,
	}
}

// do executes req once through the breaker. Non-2xx responses are closed and
// reported as ErrBackend.
func (c *baseClient) do(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if r.StatusCode < 200 || r.StatusCode > 299 {
			r.Body.Close()
			return nil, fmt.Errorf("%w: status %d", ErrBackend, r.StatusCode)
		}
		return r, nil
	})
	c.metrics.BackendDuration.WithLabelValues(c.endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		c.metrics.BackendRequests.WithLabelValues(c.endpoint, outcome).Inc()
		c.logger.Error("backend request failed",
			"endpoint", c.endpoint, "request_id", requestID, "url", req.URL.String(), "error", err)
		return nil, fmt.Errorf("%s request: %w", c.endpoint, err)
	}

	c.metrics.BackendRequests.WithLabelValues(c.endpoint, "success").Inc()
	c.logger.Debug("backend request ok", "endpoint", c.endpoint, "request_id", requestID)
	return resp, nil
}
