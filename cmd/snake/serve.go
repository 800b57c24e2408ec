package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSpectate    string
	flagServeRecord bool
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a variant menu, and every
game runs its own simulation. With --record every game is written to
the replay journal. With --spectate a websocket feed streams the board
of every running session:

  GET /sessions           - JSON list of live session IDs
  GET /ws[?session=<id>]  - websocket stream of rendered frames

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --spectate :8081          # Also stream sessions to websocket watchers
  snake serve --record                  # Journal every session

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Websocket spectator feed address (host:port), off when empty")
	serveCmd.Flags().BoolVar(&flagServeRecord, "record", false, "Record every session to the replay journal")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	rulesYAML, err := applyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:         flagSSHAddr,
		HostKeyPath:     flagHostKey,
		SpectateAddress: flagSpectate,
		IdleTimeout:     time.Duration(flagIdleTimeout) * time.Minute,
		Seed:            flagSeed,
		RuleSets:        map[string]string{},
	}
	if flagServeRecord {
		cfg.JournalPath = flagJournal
		cfg.RuleSets[string(snake.VariantCanonical)] = rulesYAML
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting snake SSH server on %s\n", cfg.Address)
	if _, port, splitErr := net.SplitHostPort(cfg.Address); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	if _, port, splitErr := net.SplitHostPort(cfg.SpectateAddress); splitErr == nil {
		fmt.Printf("Spectator feed on ws://localhost:%s/ws\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
