package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/naijapath/routeviz/client"
)

func newInitCmd() *cobra.Command {
	var (
		initURL     string
		initProfile string
		skipCheck   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up routeviz CLI configuration",
		Long:  "Interactive setup wizard that creates ~/.routeviz/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initURL, initProfile, initURL != "", skipCheck)
		},
	}

	cmd.Flags().StringVar(&initURL, "url", "", "Server URL (non-interactive mode)")
	cmd.Flags().StringVar(&initProfile, "profile", "default", "Profile name to write")
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Do not test the connection")
	return cmd
}

func runInit(url, profile string, nonInteractive, skipCheck bool) error {
	if !nonInteractive {
		fmt.Println("\n  routeviz Setup")
		fmt.Println("  ──────────────")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)

		fmt.Printf("  Server URL [%s]: ", defaultURL)
		line, _ := reader.ReadString('\n')
		url = strings.TrimSpace(line)
	}

	if url == "" {
		url = defaultURL
	}
	url = strings.TrimRight(url, "/")

	if !skipCheck {
		ver, err := testConnection(url)
		if err != nil {
			errColor.Println("  ✗ Connection failed") //nolint:errcheck
			return fmt.Errorf("connection failed: %w", err)
		}
		okColor.Printf("  ✓ Connected (v%s)\n", ver) //nolint:errcheck
	}

	cfgPath, err := writeConfig(url, profile)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Config saved to %s\n", cfgPath)
	if !nonInteractive {
		fmt.Println()
		fmt.Println("  Next steps:")
		fmt.Println("    routeviz doctor              # Full diagnostic check")
		fmt.Println("    routeviz route Lagos Abuja   # Find a route")
		fmt.Println("    routeviz --help              # See all commands")
		fmt.Println()
	}

	return nil
}

func testConnection(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.New(url, client.WithTimeout(10*time.Second)).Health(ctx)
	if err != nil {
		return "", err
	}
	if health.Version == "" {
		return "unknown", nil
	}
	return health.Version, nil
}

// writeConfig stores url under profile, keeping any other profiles, and
// makes profile the active one.
func writeConfig(url, profile string) (string, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		return "", err
	}

	cfg := configFile{}
	if data, err := os.ReadFile(cfgPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return "", fmt.Errorf("parse existing config: %w", err)
		}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profileConfig{}
	}
	if profile == "" {
		profile = "default"
	}
	cfg.Profiles[profile] = profileConfig{URL: url}
	cfg.ActiveProfile = profile

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
