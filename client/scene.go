package client

import (
	"context"
	"net/http"
	"net/url"
)

// SceneService reads and pokes the rendered scene.
type SceneService struct {
	c *Client
}

// Get returns the current scene snapshot.
func (s *SceneService) Get(ctx context.Context) (*Scene, error) {
	var resp Scene
	if err := s.c.get(ctx, "/api/v1/scene", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SVG returns the current scene as an SVG document.
func (s *SceneService) SVG(ctx context.Context) ([]byte, error) {
	return s.c.raw(ctx, http.MethodGet, "/api/v1/scene.svg", nil)
}

// Hover marks a state as hovered.
func (s *SceneService) Hover(ctx context.Context, id string) error {
	return s.c.post(ctx, "/api/v1/scene/nodes/"+url.PathEscape(id)+"/hover", nil, nil)
}

// Unhover clears a state's hover.
func (s *SceneService) Unhover(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/scene/nodes/"+url.PathEscape(id)+"/hover", nil)
}
