// protolab runs small real-time game prototypes in the terminal.
//
// Usage:
//
//	protolab list             - List available prototypes
//	protolab play <id>        - Play a prototype
//	protolab menu             - Pick prototypes interactively
//	protolab scores <id>      - Show high scores and recent runs
//	protolab sim <id>         - Run a prototype headless
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.protolab/scores.db)
//	--log <path>        - Set log file (default: ~/.protolab/protolab.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/snapshot"
	"github.com/vovakirdan/tui-protolab/internal/games/battle"
	"github.com/vovakirdan/tui-protolab/internal/games/maze"
	"github.com/vovakirdan/tui-protolab/internal/games/sandbox"
	"github.com/vovakirdan/tui-protolab/internal/games/survivors"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string

	// Prototype flags shared by play, menu and sim
	flagConfig     string
	flagDifficulty string
	flagSnapshot   string
)

// snapshotOff disables save/load when passed to --snapshot.
const snapshotOff = "-"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "protolab",
	Short: "TUI Protolab - real-time game prototypes in your terminal",
	Long: `TUI Protolab runs small entity-pool game prototypes in the terminal:
a horde survivor, a time-bar battle, a maze chase and a movement sandbox.

Available commands:
  list     - Show all available prototypes
  play     - Play a specific prototype directly
  menu     - Interactive prototype picker
  scores   - View high scores and recent runs
  sim      - Run a prototype headless for determinism checks

Examples:
  protolab list
  protolab play survivors --difficulty hard
  protolab menu
  protolab scores maze
  protolab sim survivors --ticks 3600 --seeds 8`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.protolab/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file (default ~/.protolab/protolab.log)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// addPrototypeFlags registers the flags that tune a prototype before Reset.
func addPrototypeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom prototype config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Snapshot file for F/L (default ~/.protolab/snapshots/<id>.plab, - disables)")
}

// applyPrototypeFlags hands config path and difficulty to the prototype
// package. They are read at Reset.
func applyPrototypeFlags(gameID string) {
	switch gameID {
	case survivors.ID:
		survivors.SetConfigPath(flagConfig)
		survivors.SetDifficultyPreset(flagDifficulty)
	case battle.ID:
		battle.SetConfigPath(flagConfig)
		battle.SetDifficultyPreset(flagDifficulty)
	case maze.ID:
		maze.SetConfigPath(flagConfig)
	case sandbox.ID:
		sandbox.SetConfigPath(flagConfig)
	}
}

// snapshotPath resolves --snapshot for a prototype.
func snapshotPath(gameID string) string {
	switch flagSnapshot {
	case snapshotOff:
		return ""
	case "":
		path, err := snapshot.DefaultPath(gameID)
		if err != nil {
			return ""
		}
		return path
	}
	return flagSnapshot
}

// terminalSize returns the stdout size, falling back to 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the config handed to a prototype's Reset.
func runtimeConfig(gameID string, logger *log.Logger) core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     flagFPS,
		Seed:         flagSeed,
		SnapshotPath: snapshotPath(gameID),
		Logger:       logger,
	}
}

// openLogger opens the file logger. On failure it warns on stderr and
// returns a discarding logger so the session can still run.
func openLogger() (*log.Logger, func()) {
	logger, closer, err := logging.New(flagLogPath, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { closer.Close() }
}
