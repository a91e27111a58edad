package models

import (
	"strconv"
	"strings"
)

// PathResult is one successfully computed route. It is immutable once built.
type PathResult struct {
	Path          []string `json:"path"`
	Distance      float64  `json:"distance"`
	DistanceUnit  string   `json:"distance_unit"`
	OriginID      string   `json:"origin_id"`
	DestinationID string   `json:"destination_id"`
	TotalStates   int      `json:"total_states"`
	IsDirect      bool     `json:"is_direct"`
}

// Origin returns the first node on the path.
func (r *PathResult) Origin() string {
	if len(r.Path) == 0 {
		return ""
	}

	return r.Path[0]
}

// Destination returns the last node on the path.
func (r *PathResult) Destination() string {
	if len(r.Path) == 0 {
		return ""
	}

	return r.Path[len(r.Path)-1]
}

// PathInfo is the side panel content derived from a PathResult.
type PathInfo struct {
	Path        []string `json:"path"`
	Distance    float64  `json:"distance"`
	TotalStates int      `json:"total_states"`
	DirectRoute bool     `json:"direct_route"`
}

// Info builds the panel view of the result.
func (r *PathResult) Info() *PathInfo {
	path := make([]string, len(r.Path))
	copy(path, r.Path)

	return &PathInfo{
		Path:        path,
		Distance:    r.Distance,
		TotalStates: r.TotalStates,
		DirectRoute: r.IsDirect,
	}
}

// PathText joins the path with arrows, e.g. "Lagos → Oyo → Abuja".
func (p *PathInfo) PathText() string {
	return strings.Join(p.Path, " → ")
}

// DistanceText renders the distance in kilometres, e.g. "400 km".
func (p *PathInfo) DistanceText() string {
	return strconv.FormatFloat(p.Distance, 'f', -1, 64) + " km"
}

// StatesText renders the number of states on the route.
func (p *PathInfo) StatesText() string {
	return strconv.Itoa(p.TotalStates)
}

// TypeText classifies the route as "Direct" or "Multi-hop".
func (p *PathInfo) TypeText() string {
	if p.DirectRoute {
		return "Direct"
	}

	return "Multi-hop"
}
