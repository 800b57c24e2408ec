package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagReplayLimit int
	flagWatch       bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List and re-run recorded sessions",
	Long: `Recorded sessions store the variant, the seed, the rule set and the
input of every tick. Re-running one feeds the same inputs to a fresh
simulation and reproduces the session exactly.

Examples:
  snake replay list
  snake replay run 3f2a9c1e
  snake replay run 3f2a9c1e --watch
  snake replay delete 3f2a9c1e`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a recorded session",
	Long: `Re-simulate a recorded session without a terminal UI and print the
final state and board. With --watch the session is played back in the
TUI at its original speed instead.

The id may be any unique prefix.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayRun,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of sessions to show")
	replayRunCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the session back in the TUI")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayRunCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

func openJournal() *storage.Store {
	store, err := storage.Open(flagJournal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay journal: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runReplayList(_ *cobra.Command, _ []string) {
	store := openJournal()
	defer store.Close()

	replays, err := store.ListReplays(flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing replays: %v\n", err)
		return
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println("Run 'snake play --record' to journal a session.")
		return
	}

	fmt.Printf("  %-36s  %-14s  %20s  %8s  %s\n", "ID", "Variant", "Seed", "Ticks", "Date")
	fmt.Printf("  %-36s  %-14s  %20s  %8s  %s\n", "--", "-------", "----", "-----", "----")
	for _, r := range replays {
		ticks := fmt.Sprintf("%d", r.Ticks)
		if !r.Finished {
			ticks += "*"
		}
		fmt.Printf("  %-36s  %-14s  %20d  %8s  %s\n",
			r.ID, r.Variant, r.Seed, ticks, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("* session did not end cleanly; replays up to the last saved tick")
}

func runReplayRun(_ *cobra.Command, args []string) {
	store := openJournal()
	replay, game, frames, err := loadReplay(store, args[0])
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagWatch {
		logger, logCloser := openLogger()
		defer logCloser.Close()

		cfg := runtimeConfig()
		cfg.Seed = replay.Seed
		if _, err := tui.Run(game, cfg, tui.Options{
			Logger:  logger,
			Session: "replay-" + replay.ID,
			Script:  frames,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := core.RuntimeConfig{
		ScreenW: snake.MinScreenW,
		ScreenH: snake.MinScreenH,
		Seed:    replay.Seed,
	}
	game.Reset(cfg)
	for _, f := range frames {
		if res := game.Step(f); errors.Is(res.Err, core.ErrQuit) {
			break
		}
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	game.Render(screen)

	fmt.Printf("Replay %s: %s, seed %d, %d ticks\n\n", replay.ID, replay.Variant, replay.Seed, replay.Ticks)
	if dbg, ok := game.(interface{ DebugState() string }); ok {
		fmt.Println(dbg.DebugState())
	}
	for y := range screen.Height() {
		fmt.Println(strings.TrimRight(screen.Row(y), " "))
	}
}

func runReplayDelete(_ *cobra.Command, args []string) {
	store := openJournal()
	defer store.Close()

	replay, _, err := store.LoadReplay(args[0])
	if err == nil {
		err = store.DeleteReplay(replay.ID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Deleted replay %s\n", replay.ID)
}

// loadReplay reads a replay and builds a game with the rules it was
// recorded under.
func loadReplay(store *storage.Store, id string) (*storage.Replay, registry.Game, []core.InputFrame, error) {
	replay, inputs, err := store.LoadReplay(id)
	if err != nil {
		return nil, nil, nil, err
	}
	frames, err := storage.Frames(replay.Ticks, inputs)
	if err != nil {
		return nil, nil, nil, err
	}
	game, err := replayGame(replay)
	if err != nil {
		return nil, nil, nil, err
	}
	return replay, game, frames, nil
}

func replayGame(r *storage.Replay) (registry.Game, error) {
	if r.Variant != string(snake.VariantCanonical) || r.Config == "" {
		return registry.Create(r.Variant)
	}
	cfg, err := config.Parse([]byte(r.Config))
	if err != nil {
		return nil, fmt.Errorf("replay %s: stored rule set: %w", r.ID, err)
	}
	rules, err := snake.RulesFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay %s: stored rule set: %w", r.ID, err)
	}
	return snake.NewWithRules(rules), nil
}
