package client

import (
	"context"
	"net/url"
	"strconv"
)

// RouteService handles route requests and the request state machine.
type RouteService struct {
	c *Client
}

// Find requests a route and starts its animation on the server scene.
func (s *RouteService) Find(ctx context.Context, req RouteRequest) (*RouteResponse, error) {
	var resp RouteResponse
	if err := s.c.post(ctx, "/api/v1/route", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reset clears the current route and restores the scene.
func (s *RouteService) Reset(ctx context.Context) (*Status, error) {
	var resp Status
	if err := s.c.post(ctx, "/api/v1/reset", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status returns the current request state and panel.
func (s *RouteService) Status(ctx context.Context) (*Status, error) {
	var resp Status
	if err := s.c.get(ctx, "/api/v1/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists recently finished requests, newest first.
func (s *RouteService) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Entries []HistoryEntry `json:"entries"`
	}
	if err := s.c.get(ctx, "/api/v1/history", params, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}
