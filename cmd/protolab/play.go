package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-protolab/internal/platform/tui"
	"github.com/vovakirdan/tui-protolab/internal/registry"
	"github.com/vovakirdan/tui-protolab/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play a prototype",
	Long: `Start playing the specified prototype.

Controls:
  WASD/Arrows  - Move, menu navigation
  Enter/Space  - Confirm
  Esc/B        - Back out of a submenu
  R            - Restart
  F / L        - Save / load the world snapshot
  Shift+K      - Debug reset
  P            - Pause
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options (survivors, battle):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  protolab play survivors
  protolab play survivors --difficulty hard
  protolab play battle --config ./my-battle.yaml
  protolab play maze --seed 42 --snapshot ./maze.plab`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addPrototypeFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown prototype %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'protolab list' to see available prototypes.")
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	applyPrototypeFlags(gameID)
	cfg := runtimeConfig(gameID, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating prototype: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "error", err)
		// Continue without storage, the prototype still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("session failed", "game", gameID, "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running prototype: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
