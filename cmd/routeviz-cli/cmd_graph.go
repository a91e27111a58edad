package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Show the states and road connections",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			g, err := apiClient.Graph.Get(context.Background())
			if err != nil {
				fatal("graph", err)
			}
			output(g, strconv.Itoa(len(g.Nodes)), func() {
				rows := make([][]string, 0, len(g.Nodes))
				for _, n := range g.Nodes {
					rows = append(rows, []string{n.ID, n.Label, n.Region})
				}
				formatTable([]string{"ID", "LABEL", "REGION"}, rows)

				fmt.Println()
				rows = rows[:0]
				for _, e := range g.Edges {
					rows = append(rows, []string{e.Source, e.Target, strconv.FormatFloat(e.Weight, 'f', -1, 64)})
				}
				formatTable([]string{"SOURCE", "TARGET", "KM"}, rows)
			})
		},
	}
}

func newControlsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "controls",
		Short: "Show selectable states and the animation speed range",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, err := apiClient.Graph.Controls(context.Background())
			if err != nil {
				fatal("controls", err)
			}
			output(ctrl, ctrl.DefaultOrigin+","+ctrl.DefaultDestination, func() {
				rows := make([][]string, 0, len(ctrl.States))
				for _, s := range ctrl.States {
					mark := ""
					switch s.ID {
					case ctrl.DefaultOrigin:
						mark = "default origin"
					case ctrl.DefaultDestination:
						mark = "default destination"
					}
					rows = append(rows, []string{s.ID, s.Label, mark})
				}
				formatTable([]string{"ID", "LABEL", ""}, rows)
				dimColor.Printf("\nSpeed: %d-%d ms, step %d, default %d (%s)\n", //nolint:errcheck
					ctrl.Speed.Min, ctrl.Speed.Max, ctrl.Speed.Step, ctrl.Speed.Default, ctrl.Speed.Label)
			})
		},
	}
}
