package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/naijapath/routeviz/client"
)

var (
	headerColor = color.New(color.Bold)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = cell + strings.Repeat(" ", max(0, w-len([]rune(cell))))
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

func formatQuiet(v string) {
	fmt.Println(v)
}

// output prints v as JSON, the quiet value, or via table when the format
// asks for it and a table renderer is supplied.
func output(v any, quietVal string, table func()) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	case "table":
		if table != nil {
			table()
			return
		}
		formatJSON(v)
	default:
		formatJSON(v)
	}
}

// writePanel renders the side panel the way the page shows it.
func writePanel(w io.Writer, p client.Panel) {
	headerColor.Fprintf(w, "Route Information\n") //nolint:errcheck
	switch {
	case p.Error != "":
		errColor.Fprintf(w, "  Error: %s\n", p.Error) //nolint:errcheck
	case p.Path != "":
		okColor.Fprintf(w, "  %s\n", p.Status) //nolint:errcheck
		fmt.Fprintf(w, "  Path:      %s\n", p.Path)
		fmt.Fprintf(w, "  Distance:  %s\n", p.Distance)
		fmt.Fprintf(w, "  States:    %s\n", p.States)
		fmt.Fprintf(w, "  Type:      %s\n", p.RouteType)
	case p.Prompt != "":
		dimColor.Fprintf(w, "  %s\n", p.Prompt) //nolint:errcheck
	default:
		fmt.Fprintf(w, "  %s\n", p.Status)
	}
	dimColor.Fprintf(w, "  Network: %d states, %d connections\n", p.TotalStates, p.Connections) //nolint:errcheck
}
