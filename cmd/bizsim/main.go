// bizsim is a business simulator that runs in the terminal.
//
// Usage:
//
//	bizsim list                  - List businesses and difficulty profiles
//	bizsim play [business]       - Play interactively (menu when no business)
//	bizsim simulate <business>   - Run a fixed plan headless and print the books
//	bizsim scores <business>     - Show the leaderboard for a business
//	bizsim saves                 - List, show or delete saved games
//	bizsim serve                 - Start SSH server for remote play
//	bizsim catalog               - Print the effective catalog as YAML
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.bizsim/bizsim.db)
//	--config <path>       - Load a custom catalog YAML
//	--difficulty <name>   - easy, normal, hard, fixed or a profile id
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/config"
	"github.com/vovakirdan/bizsim/internal/registry"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	// Set up by the root command before any subcommand runs.
	catalog config.Catalog
	logger  *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bizsim",
	Short: "bizsim - run a small business in your terminal",
	Long: `bizsim is a turn-based business simulator. Pick a business, set a
price, spend on marketing, stock, staff and R&D, then advance one period
at a time and watch demand, costs and random market events play out.

Available commands:
  list      - Show businesses and difficulty profiles
  play      - Play interactively
  simulate  - Run a fixed plan without the UI
  scores    - View the leaderboard
  saves     - Manage saved games
  serve     - Start SSH server for remote play
  catalog   - Print the effective catalog

Examples:
  bizsim list
  bizsim play lemonade --difficulty easy
  bizsim simulate coffee_shop --periods 20 --marketing 500
  bizsim serve --ssh :2222
  bizsim scores lemonade`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bizsim/bizsim.db", "Path to saves and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (easy, normal, hard, fixed) or profile id")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
}

// setup configures logging and loads the catalog into the registry.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bizsim",
		Level:           level,
	})

	cat, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := registry.Load(cat.Businesses); err != nil {
		return err
	}
	catalog = cat

	logger.Debug("catalog loaded",
		"businesses", len(cat.Businesses),
		"events", len(cat.Events),
		"profiles", len(cat.Profiles),
		"missions", len(cat.Missions),
	)
	return nil
}

// resolveBusiness checks a business id against the registry.
func resolveBusiness(id string) error {
	_, err := registry.Lookup(id)
	if err != nil {
		return fmt.Errorf("%w\nRun 'bizsim list' to see available businesses", err)
	}
	return nil
}

// resolveProfile maps --difficulty to a profile id. An empty flag selects
// the business's default profile.
func resolveProfile() (string, error) {
	if flagDifficulty == "" {
		return "", nil
	}
	if _, ok := catalog.Profile(flagDifficulty); ok {
		return flagDifficulty, nil
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return "", err
	}
	p, ok := catalog.ProfileForPreset(preset)
	if !ok {
		return "", fmt.Errorf("catalog has no profile for difficulty %q", preset)
	}
	return p.ID, nil
}
