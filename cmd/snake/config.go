package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rule set",
	Long: `Print the rule set a canonical game would use, as YAML.

The rule set is read from --config, then ~/.snake/configs/snake.yaml,
then ./configs/snake.yaml, then the built-in default. Save the output,
edit it and pass it back with --config.

Examples:
  snake config > my-snake.yaml
  snake config --defaults
  snake config --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.GetDefaultYAML()) //nolint:errcheck // stdout
		return
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}
