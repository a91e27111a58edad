package client

import "time"

// State is a node of the state network.
type State struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Region string  `json:"region"`
}

// Connection is an undirected road between two states.
type Connection struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// LegendEntry is one row of the colour legend.
type LegendEntry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Fill  string `json:"fill"`
}

// Canvas is the drawing area size.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Graph is the static topology served by GET /api/v1/graph.
type Graph struct {
	Nodes  []State       `json:"nodes"`
	Edges  []Connection  `json:"edges"`
	Legend []LegendEntry `json:"legend"`
	Canvas Canvas        `json:"canvas"`
}

// StateOption is one entry of the origin/destination selectors.
type StateOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SpeedControl describes the animation speed slider in milliseconds.
type SpeedControl struct {
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
	Step    int64  `json:"step"`
	Default int64  `json:"default"`
	Label   string `json:"label"`
}

// Controls is the interaction surface definition.
type Controls struct {
	States             []StateOption `json:"states"`
	DefaultOrigin      string        `json:"default_origin"`
	DefaultDestination string        `json:"default_destination"`
	Speed              SpeedControl  `json:"speed"`
}

// RouteRequest asks for a route. SpeedMS of zero selects the server default.
type RouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	SpeedMS     int64  `json:"speed_ms,omitempty"`
}

// PathResult is one computed route.
type PathResult struct {
	Path          []string `json:"path"`
	Distance      float64  `json:"distance"`
	DistanceUnit  string   `json:"distance_unit"`
	OriginID      string   `json:"origin_id"`
	DestinationID string   `json:"destination_id"`
	TotalStates   int      `json:"total_states"`
	IsDirect      bool     `json:"is_direct"`
}

// PathInfo is the side panel content derived from a PathResult.
type PathInfo struct {
	Path        []string `json:"path"`
	Distance    float64  `json:"distance"`
	TotalStates int      `json:"total_states"`
	DirectRoute bool     `json:"direct_route"`
}

// Panel is the rendered side panel.
type Panel struct {
	Status      string `json:"status"`
	Prompt      string `json:"prompt,omitempty"`
	Error       string `json:"error,omitempty"`
	Path        string `json:"path,omitempty"`
	Distance    string `json:"distance,omitempty"`
	States      string `json:"states,omitempty"`
	RouteType   string `json:"route_type,omitempty"`
	TotalStates int    `json:"network_states"`
	Connections int    `json:"network_connections"`
}

// RouteResponse is returned by a successful route request.
type RouteResponse struct {
	Result   *PathResult `json:"result"`
	PathInfo *PathInfo   `json:"path_info"`
	Panel    Panel       `json:"panel"`
}

// Status is the request state machine snapshot.
type Status struct {
	State       string      `json:"state"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error"`
	Origin      string      `json:"origin,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Result      *PathResult `json:"result"`
	PathInfo    *PathInfo   `json:"path_info"`
	Animating   bool        `json:"animating"`
	Generation  uint64      `json:"generation"`
	Panel       Panel       `json:"panel"`
}

// HistoryEntry is one finished route request.
type HistoryEntry struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Outcome     string    `json:"outcome"`
	Path        []string  `json:"path,omitempty"`
	Distance    float64   `json:"distance,omitempty"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// Style is the visual attributes of a scene element.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke"`
	Radius      float64 `json:"radius,omitempty"`
	StrokeWidth float64 `json:"stroke_width"`
	Opacity     float64 `json:"opacity"`
}

// NodeView is the on-screen state of one state.
type NodeView struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Region    string  `json:"region"`
	Role      string  `json:"role,omitempty"`
	Style     Style   `json:"style"`
	Hovered   bool    `json:"hovered"`
	Animating bool    `json:"animating"`
}

// EdgeView is the on-screen state of one connection.
type EdgeView struct {
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Weight    float64 `json:"weight"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Role      string  `json:"role,omitempty"`
	Style     Style   `json:"style"`
	Animating bool    `json:"animating"`
}

// Scene is a point-in-time view of the rendered scene.
type Scene struct {
	Generation  uint64     `json:"generation"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Time        time.Time  `json:"time"`
	Pending     int        `json:"pending"`
	Nodes       []NodeView `json:"nodes"`
	Edges       []EdgeView `json:"edges"`
	LastEventID uint64     `json:"last_event_id"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	RouteService  string  `json:"route_service"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is the readiness check payload.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
