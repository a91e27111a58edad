// Package topology loads the static graph the visualisation is drawn from.
package topology

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/naijapath/routeviz/internal/models"
)

// Format is a topology file encoding.
type Format string

// Supported encodings.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported topology format")

//go:embed nigeria.yaml
var nigeriaYAML []byte

// document is the on-disk shape shared by both encodings.
type document struct {
	Nodes []models.Node `yaml:"nodes" toml:"nodes"`
	Edges []models.Edge `yaml:"edges" toml:"edges"`
}

// Default returns the built-in Nigerian states network.
func Default() (*models.Graph, error) {
	return Parse(nigeriaYAML, FormatYAML)
}

// Load reads a topology file, picking the decoder from its extension.
// An empty path returns the built-in graph.
func Load(path string) (*models.Graph, error) {
	if path == "" {
		return Default()
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path.
	if err != nil {
		return nil, fmt.Errorf("reading topology: %w", err)
	}

	g, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// FormatFor maps a file extension to a Format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes and validates a topology document.
func Parse(data []byte, format Format) (*models.Graph, error) {
	var doc document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml topology: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("decoding toml topology: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	g, err := models.NewGraph(doc.Nodes, doc.Edges)
	if err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	return g, nil
}
