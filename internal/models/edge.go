package models

// Edge is an undirected weighted route between two states.
type Edge struct {
	Source string  `json:"source" yaml:"source" toml:"source"`
	Target string  `json:"target" yaml:"target" toml:"target"`
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// Validate checks that required fields are present on Edge.
func (e *Edge) Validate() error {
	if e.Source == "" {
		return ErrMissingSource
	}

	if e.Target == "" {
		return ErrMissingTarget
	}

	if e.Source == e.Target {
		return ErrSelfLoop
	}

	if !(e.Weight > 0) {
		return ErrInvalidWeight
	}

	return nil
}

// Connects reports whether the edge joins a and b in either direction.
func (e Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// Key returns the unordered pair identity of the edge.
func (e Edge) Key() EdgeKey {
	return NewEdgeKey(e.Source, e.Target)
}

// EdgeKey identifies an unordered pair of node ids.
type EdgeKey struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewEdgeKey normalises the pair so (a,b) and (b,a) yield the same key.
func NewEdgeKey(a, b string) EdgeKey {
	if b < a {
		a, b = b, a
	}

	return EdgeKey{A: a, B: b}
}

// String renders the key as "a--b".
func (k EdgeKey) String() string {
	return k.A + "--" + k.B
}
