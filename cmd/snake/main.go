// snake is a toroidal snake game for the terminal.
//
// Usage:
//
//	snake list              - List available variants
//	snake play [variant]    - Play a variant (default: snake)
//	snake menu              - Pick a variant interactively
//	snake serve             - Start SSH server for remote play
//	snake replay list       - List recorded sessions
//	snake replay run <id>   - Re-simulate a recorded session
//	snake config            - Print the effective rule set
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--config <path>    - Rule set YAML
//	--journal <path>   - Replay journal (default: ~/.snake/journal.db)
//	--log-file <path>  - Write logs to a file while the TUI runs
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagSeed    int64
	flagConfig  string
	flagJournal string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a wrap-around snake game for your terminal",
	Long: `Snake runs on a 32x24 board whose edges wrap around. Crashing never
ends the game: the snake is reset and play goes on.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  replay   - List and re-run recorded sessions
  config   - Print the effective rule set

Examples:
  snake play
  snake play snake_classic --seed 42
  snake play --record
  snake replay run 3f2a
  snake serve --ssh :2222 --spectate :8081`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to rule set YAML")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", storage.DefaultPath, "Path to replay journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the TUI owns the terminal)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the screen from the terminal and resolves the seed.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// applyConfig installs the rule set for canonical games and returns it
// as YAML for the replay journal.
func applyConfig() (string, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return "", err
	}
	if err := snake.SetConfig(cfg); err != nil {
		return "", err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// openLogger returns the --log-file logger, or a discard logger.
func openLogger() (*log.Logger, io.Closer) {
	logger, closer, err := tui.OpenLogFile(flagLogFile, log.DebugLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return logger, closer
}

// journalConfig is the rule set stored with a replay of variant.
func journalConfig(variant, rulesYAML string) string {
	if variant == string(snake.VariantCanonical) {
		return rulesYAML
	}
	return ""
}
