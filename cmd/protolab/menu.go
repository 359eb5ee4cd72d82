package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-protolab/internal/platform/tui"
	"github.com/vovakirdan/tui-protolab/internal/registry"
	"github.com/vovakirdan/tui-protolab/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the lab with a prototype picker menu",
	Long: `Start the lab in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a prototype.
After a session ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select prototype
  Tab          - Scoreboard
  Q            - Quit

Examples:
  protolab menu
  protolab menu --fps 30
  protolab menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addPrototypeFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig("", logger)

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return
		}

		applyPrototypeFlags(gameID)
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating prototype: %v\n", err)
			continue
		}

		run := cfg
		run.SnapshotPath = snapshotPath(gameID)
		if flagSeed == 0 {
			run.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, run); err != nil {
			logger.Error("session failed", "game", gameID, "error", err)
			fmt.Fprintf(os.Stderr, "Error running prototype: %v\n", err)
		}
	}
}
