package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: snake).

Controls:
  Arrows/WASD/hjkl  - Steer
  P/Space           - Pause
  Ctrl+S            - Screenshot
  ?                 - Full help
  Q/Ctrl+C          - Quit

With --record the seed and every input are written to the replay
journal, so the session can be re-run with 'snake replay run <id>'.

Examples:
  snake play
  snake play snake_classic
  snake play --seed 42 --record
  snake play --config ./my-snake.yaml --log-file /tmp/snake.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the session to the replay journal")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(snake.VariantCanonical)
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available variants.")
		os.Exit(1)
	}

	rulesYAML, err := applyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	logger, logCloser := openLogger()
	defer logCloser.Close()

	opts := tui.Options{Logger: logger, Session: "local"}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagJournal)
		if err != nil {
			// Continue without recording - game still works
			fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
		} else {
			rec, recErr := store.NewRecorder(gameID, cfg.Seed, journalConfig(gameID, rulesYAML))
			if recErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: session will not be recorded: %v\n", recErr)
			} else {
				opts.Recorder = rec
			}
		}
	}

	_, runErr := tui.Run(game, cfg, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if opts.Recorder != nil {
		fmt.Printf("Replay saved: %s (seed %d)\n", opts.Recorder.ID(), cfg.Seed)
	}
}
