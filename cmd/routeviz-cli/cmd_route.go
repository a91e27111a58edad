package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naijapath/routeviz/client"
)

func newRouteCmd() *cobra.Command {
	var speed int64
	cmd := &cobra.Command{
		Use:   "route <origin> <destination>",
		Short: "Find the shortest route between two states and animate it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed != 0 && (speed < 300 || speed > 2000) {
				return fmt.Errorf("--speed must be between 300 and 2000 ms")
			}

			resp, err := apiClient.Routes.Find(context.Background(), client.RouteRequest{
				Origin:      args[0],
				Destination: args[1],
				SpeedMS:     speed,
			})
			if err != nil {
				return routeError(err)
			}
			output(resp, strings.Join(resp.Result.Path, ","), func() { writePanel(os.Stdout, resp.Panel) })
			return nil
		},
	}
	cmd.Flags().Int64Var(&speed, "speed", 0, "Animation speed in ms (300-2000, default: server setting)")
	return cmd
}

// routeError turns an API failure into the single message the panel would show.
func routeError(err error) error {
	if apiErr, ok := err.(*client.APIError); ok {
		return fmt.Errorf("%s", apiErr.Message)
	}
	return err
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the current route and restore the map",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			st, err := apiClient.Routes.Reset(context.Background())
			if err != nil {
				fatal("reset", err)
			}
			output(st, st.State, func() { writePanel(os.Stdout, st.Panel) })
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current request state",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			st, err := apiClient.Routes.Status(context.Background())
			if err != nil {
				fatal("status", err)
			}
			output(st, st.State, func() {
				fmt.Printf("State:      %s\n", st.State)
				fmt.Printf("Generation: %d\n", st.Generation)
				if st.Animating {
					fmt.Println("Animating:  yes")
				}
				fmt.Println()
				writePanel(os.Stdout, st.Panel)
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished route requests",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := apiClient.Routes.History(context.Background(), limit)
			if err != nil {
				fatal("history", err)
			}
			output(entries, strconv.Itoa(len(entries)), func() { historyTable(entries) })
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries")
	return cmd
}

func historyTable(entries []client.HistoryEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		detail := e.Error
		if e.Outcome == "success" {
			detail = fmt.Sprintf("%s (%s km)", strings.Join(e.Path, " → "), strconv.FormatFloat(e.Distance, 'f', -1, 64))
		}
		rows = append(rows, []string{e.At.Local().Format(time.TimeOnly), e.Origin, e.Destination, e.Outcome, detail})
	}
	formatTable([]string{"TIME", "ORIGIN", "DESTINATION", "OUTCOME", "DETAIL"}, rows)
}
