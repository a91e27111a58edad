package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/naijapath/routeviz/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, and the route service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	fmt.Println("\nrouteviz Doctor")
	fmt.Println("===============")

	results := doctorChecks(flagURL)

	fmt.Println()
	allPassed := true
	for _, r := range results {
		mark, c := "✓", okColor
		if !r.Passed {
			mark, c = "✗", errColor
			allPassed = false
		}
		if r.Detail != "" {
			c.Printf("%s %s: %s\n", mark, r.Name, r.Detail) //nolint:errcheck
		} else {
			c.Printf("%s %s\n", mark, r.Name) //nolint:errcheck
		}
		if r.Hint != "" {
			dimColor.Printf("   Hint: %s\n", r.Hint) //nolint:errcheck
		}
	}

	fmt.Println()
	if !allPassed {
		errColor.Println("Some checks failed.") //nolint:errcheck
		return fmt.Errorf("doctor found issues")
	}
	okColor.Println("All checks passed!") //nolint:errcheck
	return nil
}

func doctorChecks(url string) []checkResult {
	var results []checkResult

	// 1. Config file.
	cfgPath, _, cfgErr := loadConfigFile()
	if cfgErr != nil {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: "not found, using flags and environment",
			Hint:   "Run: routeviz init",
		})
	} else {
		results = append(results, checkResult{
			Name: "Config file", Passed: true,
			Detail: fmt.Sprintf("found (%s)", cfgPath),
		})
	}

	// 2. Server reachable.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := client.New(url, client.WithTimeout(5*time.Second))
	health, err := c.Health(ctx)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Passed: false,
			Detail: url,
			Hint:   fmt.Sprintf("Is the routeviz server running? Error: %v", err),
		})
	}
	results = append(results, checkResult{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("%s (v%s)", url, health.Version),
	})

	// 3. Route service.
	if _, err := c.Ready(ctx); err != nil {
		results = append(results, checkResult{
			Name: "Route service", Passed: false,
			Detail: health.RouteService,
			Hint:   "Check ROUTE_API_ENDPOINT on the server; routes cannot be calculated until it answers",
		})
	} else {
		results = append(results, checkResult{
			Name: "Route service", Passed: true, Detail: health.RouteService,
		})
	}

	return results
}
