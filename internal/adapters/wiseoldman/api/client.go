package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clan-points-tracker/internal/adapters/metrics"

	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "https://api.wiseoldman.net/v2"

// maxBodySize caps a player document; real responses are well under 100 KiB.
const maxBodySize = 4 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// NewTestClient creates a client with custom base URL for testing.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: "test",
	}
}

// StatusError is returned for any non-2xx answer. Message carries the API's
// own explanation when the body has one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// GetPlayer returns the stored player details, including latestSnapshot.
func (c *Client) GetPlayer(ctx context.Context, username string) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, c.playerURL(username))
	if err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	return body, nil
}

// UpdatePlayer asks Wise Old Man to track the player now and returns the
// refreshed details. Unknown players are created on first update.
func (c *Client) UpdatePlayer(ctx context.Context, username string) ([]byte, error) {
	body, err := c.do(ctx, http.MethodPost, c.playerURL(username))
	if err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	return body, nil
}

func (c *Client) playerURL(username string) string {
	name := strings.ToLower(strings.TrimSpace(username))
	return fmt.Sprintf("%s/players/%s", c.baseURL, url.PathEscape(name))
}

func (c *Client) do(ctx context.Context, method, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "message").String(),
		}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode response: invalid JSON body")
	}

	return body, nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := endpointLabel(req)
	metrics.WiseOldManRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.WiseOldManRequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}

func endpointLabel(req *http.Request) string {
	if !strings.Contains(req.URL.Path, "/players/") {
		return "unknown"
	}
	if req.Method == http.MethodPost {
		return "player_update"
	}
	return "player_get"
}
