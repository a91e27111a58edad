package models

import "fmt"

// Region classifies a state for its base colour.
type Region string

// Known regions.
const (
	RegionNorth      Region = "north"
	RegionCentral    Region = "central"
	RegionSouth      Region = "south"
	RegionEast       Region = "east"
	RegionSouthSouth Region = "south_south"
)

// Regions lists every region in legend order.
var Regions = []Region{RegionNorth, RegionCentral, RegionSouth, RegionEast, RegionSouthSouth}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	switch r {
	case RegionNorth, RegionCentral, RegionSouth, RegionEast, RegionSouthSouth:
		return true
	}

	return false
}

// Title returns the legend caption for the region.
func (r Region) Title() string {
	switch r {
	case RegionNorth:
		return "North"
	case RegionCentral:
		return "Central"
	case RegionSouth:
		return "South"
	case RegionEast:
		return "East"
	case RegionSouthSouth:
		return "South-South"
	}

	return string(r)
}

// Node is a state drawn on the canvas. Immutable once the graph is built.
type Node struct {
	ID     string  `json:"id" yaml:"id" toml:"id"`
	Label  string  `json:"label" yaml:"label" toml:"label"`
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Region Region  `json:"region" yaml:"region" toml:"region"`
}

// Validate checks that required fields are present and within limits on Node.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrMissingID
	}

	if len(n.ID) > 255 {
		return ErrFieldTooLong("id", 255)
	}

	if n.Label == "" {
		return ErrMissingLabel
	}

	if !n.Region.Valid() {
		return fmt.Errorf("node %q: %w %q", n.ID, ErrInvalidRegion, n.Region)
	}

	return nil
}
