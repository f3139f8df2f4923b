package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/microtris/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file and the global flags
are applied, as YAML. The first line names the file it was read from.

Use --defaults to print the built-in file, a good starting point for
~/.microtris/config.yaml.

Examples:
  microtris config
  microtris config --pace brisk --seed 3:4
  microtris config --defaults > ~/.microtris/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	fmt.Printf("# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}
