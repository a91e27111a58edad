package service

import "github.com/naijapath/routeviz/internal/models"

// Panel texts.
const (
	PanelPrompt      = `Select states and click "Find Route"`
	PanelStatusFound = "Route Found"
	PanelStatusReady = "Ready"
	PanelStatusBusy  = "Calculating..."
)

// Panel is the side panel content: route details when a result is current,
// otherwise the prompt.
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

// Panel renders the current status for display.
func (o *Orchestrator) Panel() Panel {
	return BuildPanel(o.Status(), o.deps.Graph)
}

// BuildPanel renders st for display. g supplies the network stats.
func BuildPanel(st Status, g *models.Graph) Panel {
	p := Panel{Error: st.Error}
	if g != nil {
		p.TotalStates = g.NodeCount()
		p.Connections = g.EdgeCount()
	}

	switch {
	case st.PathInfo != nil:
		p.Status = PanelStatusFound
		p.Path = st.PathInfo.PathText()
		p.Distance = st.PathInfo.DistanceText()
		p.States = st.PathInfo.StatesText()
		p.RouteType = st.PathInfo.TypeText()
	case st.Loading:
		p.Status = PanelStatusBusy
	default:
		p.Status = PanelStatusReady
		p.Prompt = PanelPrompt
	}

	return p
}
