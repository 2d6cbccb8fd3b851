package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/config"
)

var flagDefaultCatalog bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective catalog as YAML",
	Long: `Prints the businesses, events, difficulty profiles and missions in use.
Redirect the output to a file, edit it and pass it back with --config.

Examples:
  bizsim catalog > my-catalog.yaml
  bizsim catalog --default
  bizsim play --config my-catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&flagDefaultCatalog, "default", false, "Print the built-in catalog instead")
}

func runCatalog(_ *cobra.Command, _ []string) error {
	if flagDefaultCatalog {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}
	data, err := config.Marshal(catalog)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
