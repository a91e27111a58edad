package client

import "context"

// GraphService reads the static topology.
type GraphService struct {
	c *Client
}

// Get returns the nodes, edges and legend.
func (s *GraphService) Get(ctx context.Context) (*Graph, error) {
	var resp Graph
	if err := s.c.get(ctx, "/api/v1/graph", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Controls returns the selector options and the speed slider definition.
func (s *GraphService) Controls(ctx context.Context) (*Controls, error) {
	var resp Controls
	if err := s.c.get(ctx, "/api/v1/controls", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
