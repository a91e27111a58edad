package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Inspect the rendered map",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			sc, err := apiClient.Scene.Get(context.Background())
			if err != nil {
				fatal("scene", err)
			}
			output(sc, strconv.FormatUint(sc.Generation, 10), func() {
				rows := make([][]string, 0, len(sc.Nodes))
				for _, n := range sc.Nodes {
					if n.Role == "" && !n.Hovered {
						continue
					}
					rows = append(rows, []string{n.ID, n.Role, n.Style.Fill, strconv.FormatBool(n.Hovered)})
				}
				fmt.Printf("Generation %d, %d pending transitions\n\n", sc.Generation, sc.Pending)
				formatTable([]string{"STATE", "ROLE", "FILL", "HOVERED"}, rows)
			})
		},
	}
	cmd.AddCommand(sceneSVGCmd())
	cmd.AddCommand(sceneHoverCmd())
	cmd.AddCommand(sceneUnhoverCmd())
	return cmd
}

func sceneSVGCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Download the map as SVG",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			data, err := apiClient.Scene.SVG(context.Background())
			if err != nil {
				fatal("svg", err)
			}
			if out == "" || out == "-" {
				os.Stdout.Write(data) //nolint:errcheck
				return
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				fatal("write svg", err)
			}
			okColor.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", out, len(data)) //nolint:errcheck
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func sceneHoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hover <state>",
		Short: "Enlarge a state as if the pointer were over it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Scene.Hover(context.Background(), args[0]); err != nil {
				fatal("hover", err)
			}
		},
	}
}

func sceneUnhoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unhover <state>",
		Short: "Clear a state's hover",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Scene.Unhover(context.Background(), args[0]); err != nil {
				fatal("unhover", err)
			}
		},
	}
}
