package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/naijapath/routeviz/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:8080"

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("routeviz version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("routeviz version %s-dev", version)
}

// profileConfig holds connection settings for a single profile.
type profileConfig struct {
	URL string `yaml:"url"`
}

// configFile is the ~/.routeviz/config.yaml structure.
type configFile struct {
	// Flat format
	URL string `yaml:"url"`
	// Profile format
	Profiles      map[string]profileConfig `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "routeviz",
		Short:   "routeviz CLI: find and animate routes between Nigerian states",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "routeviz server URL (env: ROUTEVIZ_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "table", "Output format: json|table|quiet")

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { resolveConfig() }

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.AddCommand(newControlsCmd())
	rootCmd.AddCommand(newSceneCmd())
	rootCmd.AddCommand(sceneSVGCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".routeviz", "config.yaml"), nil
}

func loadConfigFile() (string, *configFile, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfgPath, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfgPath, nil, err
	}
	return cfgPath, &cfg, nil
}

// profileURL picks the active profile's URL, falling back to the flat field.
func (cfg *configFile) profileURL() string {
	resolved := cfg.URL
	if cfg.Profiles != nil {
		name := cfg.ActiveProfile
		if name == "" {
			name = "default"
		}
		if p, ok := cfg.Profiles[name]; ok && p.URL != "" {
			resolved = p.URL
		}
	}
	return resolved
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL != defaultURL {
		return
	}
	if v := os.Getenv("ROUTEVIZ_URL"); v != "" {
		flagURL = v
		return
	}

	_, cfg, err := loadConfigFile()
	if err != nil {
		return
	}
	if u := cfg.profileURL(); u != "" {
		flagURL = u
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
