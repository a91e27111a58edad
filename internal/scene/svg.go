package scene

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
)

var svgTemplate = template.Must(template.New("scene").Funcs(template.FuncMap{
	"num": formatNum,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" data-generation="{{.Generation}}">
<defs>
<radialGradient id="cleanBackground" cx="50%" cy="50%" r="70%">
<stop offset="0%" stop-color="#f8fafc" stop-opacity="1"/>
<stop offset="100%" stop-color="#e2e8f0" stop-opacity="1"/>
</radialGradient>
<filter id="shadow" x="-50%" y="-50%" width="200%" height="200%">
<feDropShadow dx="2" dy="2" stdDeviation="3" flood-color="rgba(0,0,0,0.15)"/>
</filter>
</defs>
<rect width="{{.Width}}" height="{{.Height}}" fill="url(#cleanBackground)"/>
<g class="connections">
{{- range .Edges}}
<g class="connection" data-source="{{.Source}}" data-target="{{.Target}}"{{if .Role}} data-role="{{.Role}}"{{end}}>
<line class="connection-line" x1="{{num .X1}}" y1="{{num .Y1}}" x2="{{num .X2}}" y2="{{num .Y2}}" stroke="{{.Style.Stroke}}" stroke-width="{{num .Style.StrokeWidth}}" opacity="{{num .Style.Opacity}}"/>
<text class="distance-label" x="{{num .LabelX}}" y="{{num .LabelY}}" text-anchor="middle" fill="#64748b" font-size="10px" font-weight="500">{{num .Weight}}</text>
</g>
{{- end}}
</g>
<g class="states">
{{- range .Nodes}}
<g class="state" data-id="{{.ID}}" transform="translate({{num .X}}, {{num .Y}})"{{if .Role}} data-role="{{.Role}}"{{end}}>
<circle class="state-circle" r="{{num .Style.Radius}}" fill="{{.Style.Fill}}" stroke="{{.Style.Stroke}}" stroke-width="{{num .Style.StrokeWidth}}" opacity="{{num .Style.Opacity}}" filter="url(#shadow)"/>
<text class="state-label" y="6" text-anchor="middle" fill="white" font-size="11px" font-weight="600">{{.Label}}</text>
</g>
{{- end}}
</g>
</svg>
`))

// WriteSVG renders the current snapshot as a standalone SVG document.
func (r *Renderer) WriteSVG(w io.Writer) error {
	return RenderSVG(w, r.Snapshot())
}

// RenderSVG renders snap as a standalone SVG document.
func RenderSVG(w io.Writer, snap *Snapshot) error {
	if err := svgTemplate.Execute(w, snap); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}

	return nil
}

func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
