package scene

import (
	"time"

	"github.com/naijapath/routeviz/internal/models"
)

// Canvas geometry.
const (
	CanvasWidth  = 1000
	CanvasHeight = 500
)

// Base geometry and transition timings.
const (
	NodeRadius      = 25.0
	NodeStrokeWidth = 2.0
	EdgeWidth       = 2.0
	EdgeOpacity     = 0.6
	EdgeStroke      = "#cbd5e1"

	hoverRadiusBoost = 5.0
	hoverStrokeBoost = 1.0

	HoverDuration = 200 * time.Millisecond
	ResetDuration = 300 * time.Millisecond
)

type swatch struct {
	Fill   string
	Stroke string
}

var regionPalette = map[models.Region]swatch{
	models.RegionNorth:      {Fill: "#dc2626", Stroke: "#b91c1c"},
	models.RegionCentral:    {Fill: "#16a34a", Stroke: "#15803d"},
	models.RegionSouth:      {Fill: "#2563eb", Stroke: "#1d4ed8"},
	models.RegionEast:       {Fill: "#7c3aed", Stroke: "#6d28d9"},
	models.RegionSouthSouth: {Fill: "#ea580c", Stroke: "#c2410c"},
}

var roleStyles = map[models.Role]models.Style{
	models.RoleOrigin:      {Fill: "#10b981", Stroke: "#059669", Radius: 32, StrokeWidth: 3, Opacity: 1},
	models.RoleDestination: {Fill: "#e11d48", Stroke: "#be185d", Radius: 32, StrokeWidth: 3, Opacity: 1},
	models.RoleTransit:     {Fill: "#f59e0b", Stroke: "#d97706", Radius: 28, StrokeWidth: 3, Opacity: 1},
	models.RolePathEdge:    {Stroke: "#2563eb", StrokeWidth: 5, Opacity: 1},
}

// NodeBaseStyle is the neutral style of a node in the given region.
func NodeBaseStyle(r models.Region) models.Style {
	sw, ok := regionPalette[r]
	if !ok {
		sw = swatch{Fill: "#64748b", Stroke: "#475569"}
	}

	return models.Style{
		Fill:        sw.Fill,
		Stroke:      sw.Stroke,
		Radius:      NodeRadius,
		StrokeWidth: NodeStrokeWidth,
		Opacity:     1,
	}
}

// EdgeBaseStyle is the neutral style of every edge.
func EdgeBaseStyle() models.Style {
	return models.Style{Stroke: EdgeStroke, StrokeWidth: EdgeWidth, Opacity: EdgeOpacity}
}

// RoleStyle returns the highlight style for a role.
func RoleStyle(role models.Role) (models.Style, bool) {
	s, ok := roleStyles[role]

	return s, ok
}

// LegendEntry is one row of the legend panel.
type LegendEntry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Fill  string `json:"fill"`
}

// Legend lists role markers followed by region colours.
func Legend() []LegendEntry {
	out := []LegendEntry{
		{Key: string(models.RoleOrigin), Title: "Origin", Fill: roleStyles[models.RoleOrigin].Fill},
		{Key: string(models.RoleDestination), Title: "Destination", Fill: roleStyles[models.RoleDestination].Fill},
		{Key: string(models.RoleTransit), Title: "Transit", Fill: roleStyles[models.RoleTransit].Fill},
		{Key: string(models.RolePathEdge), Title: "Optimal Path", Fill: roleStyles[models.RolePathEdge].Stroke},
	}

	for _, r := range models.Regions {
		out = append(out, LegendEntry{Key: string(r), Title: r.Title(), Fill: regionPalette[r].Fill})
	}

	return out
}
