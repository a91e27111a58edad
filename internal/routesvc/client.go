// Package routesvc is the client for the remote shortest-path service.
package routesvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naijapath/routeviz/internal/httputil"
	"github.com/naijapath/routeviz/internal/metrics"
	"github.com/naijapath/routeviz/internal/models"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client posts route requests to a single configured endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client for endpoint, e.g. "https://example.com/calculate-route".
func New(endpoint string, log *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the configured service URL.
func (c *Client) Endpoint() string { return c.endpoint }

type routeRequest struct {
	FromCity string `json:"from_city"`
	ToCity   string `json:"to_city"`
}

type routeInfo struct {
	TotalCities     int     `json:"total_cities"`
	DirectRoute     bool    `json:"direct_route"`
	TotalDistanceKM float64 `json:"total_distance_km"`
}

type routeResponse struct {
	Success      bool      `json:"success"`
	Error        string    `json:"error"`
	Distance     float64   `json:"distance"`
	DistanceUnit string    `json:"distance_unit"`
	Path         []string  `json:"path"`
	FromCity     string    `json:"from_city"`
	ToCity       string    `json:"to_city"`
	RouteInfo    routeInfo `json:"route_info"`
}

// ComputeRoute asks the service for the shortest path from one state to
// another. Failures are *TransportError or *ServiceError; a cancelled ctx
// surfaces as a *TransportError wrapping ctx.Err().
func (c *Client) ComputeRoute(ctx context.Context, from, to string) (*models.PathResult, error) {
	data, err := json.Marshal(routeRequest{FromCity: from, ToCity: to})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := httputil.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RouteRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, body)
	}

	var rr routeResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		c.log.WithError(err).Warn("route service returned undecodable body")
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: MsgInvalidResponse}
	}

	if !rr.Success {
		msg := strings.TrimSpace(rr.Error)
		if msg == "" {
			msg = MsgCalculateFailed
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: msg}
	}

	if len(rr.Path) == 0 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: MsgInvalidResponse}
	}

	return rr.toResult(), nil
}

// Ping checks that the endpoint answers HTTP at all. Any status counts as
// reachable since the service only accepts POST.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return &TransportError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	resp.Body.Close()

	return nil
}

func (rr *routeResponse) toResult() *models.PathResult {
	path := make([]string, len(rr.Path))
	copy(path, rr.Path)

	res := &models.PathResult{
		Path:          path,
		Distance:      rr.Distance,
		DistanceUnit:  rr.DistanceUnit,
		OriginID:      rr.FromCity,
		DestinationID: rr.ToCity,
		TotalStates:   rr.RouteInfo.TotalCities,
		IsDirect:      rr.RouteInfo.DirectRoute,
	}

	if res.Distance == 0 {
		res.Distance = rr.RouteInfo.TotalDistanceKM
	}
	if res.DistanceUnit == "" {
		res.DistanceUnit = "km"
	}
	if res.TotalStates == 0 {
		res.TotalStates = len(path)
	}
	if res.OriginID == "" {
		res.OriginID = path[0]
	}
	if res.DestinationID == "" {
		res.DestinationID = path[len(path)-1]
	}

	return res
}

// statusError prefers a server-provided error field over the status text.
func statusError(status int, body []byte) *ServiceError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return &ServiceError{StatusCode: status, Message: msg}
		}
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return &ServiceError{StatusCode: status, Message: msg}
		}
	}

	return &ServiceError{
		StatusCode: status,
		Message:    fmt.Sprintf("route service returned %d %s", status, http.StatusText(status)),
	}
}
