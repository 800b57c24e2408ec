package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Pause a game and press Esc to come back to the menu.
Tab opens the replay journal.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab/R        - Replays
  Q            - Quit

Examples:
  snake menu
  snake menu --record
  snake menu --journal ./journal.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagRecord, "record", false, "Record every game to the replay journal")
}

func runMenu(_ *cobra.Command, _ []string) {
	rulesYAML, err := applyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The journal backs both recording and the replay browser.
	store, err := storage.Open(flagJournal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay journal: %v\n", err)
		store = nil
	}

	logger, logCloser := openLogger()
	defer logCloser.Close()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, store != nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsReplays {
			back, replayErr := browseReplays(store, cfg, logger)
			if replayErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", replayErr)
			}
			if back {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		opts := tui.Options{Logger: logger, Session: "local", AllowBack: true}
		if flagRecord && store != nil {
			rec, recErr := store.NewRecorder(game.ID(), cfg.Seed, journalConfig(game.ID(), rulesYAML))
			if recErr != nil {
				logger.Warn("session will not be recorded", "error", recErr)
			} else {
				opts.Recorder = rec
			}
		}

		back, err := tui.Run(game, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !back {
			break
		}

		// New seed for each game unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
	}

	if store != nil {
		store.Close()
	}
}

// browseReplays shows the journal and plays back selected replays until
// the player leaves. Returns true when the player wants the menu again.
func browseReplays(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	for {
		id, back, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil || id == "" {
			return back, err
		}

		replay, game, frames, err := loadReplay(store, id)
		if err != nil {
			return true, err
		}

		play := cfg
		play.Seed = replay.Seed
		back, err = tui.Run(game, play, tui.Options{
			Logger:    logger,
			Session:   "replay-" + replay.ID,
			Script:    frames,
			AllowBack: true,
		})
		if err != nil || !back {
			return false, err
		}
	}
}
