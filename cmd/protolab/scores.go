package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-protolab/internal/registry"
	"github.com/vovakirdan/tui-protolab/internal/storage"
)

var (
	flagRecent int
	flagRun    string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <id>",
	Short: "Show high scores and recent runs for a prototype",
	Long: `Display the top 10 scores and the most recent runs for the
specified prototype.

Examples:
  protolab scores survivors
  protolab scores maze --recent 20
  protolab scores maze --run 3f2a9c1e
  protolab scores battle --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show one run by id or id prefix")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the prototype")
	scoresCmd.MarkFlagsMutuallyExclusive("run", "clear")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown prototype %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'protolab list' to see available prototypes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating prototype: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores and runs for %s.\n", game.Title())
		return
	case flagRun != "":
		if err := printRun(store, gameID, flagRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'protolab play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %s  Runs: %s  Average: %.1f\n",
			humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.GamesCount)), stats.AvgScore)
	}

	if flagRecent <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-8s  %-8s  %-10s  %-8s  %s\n", "Run", "Outcome", "Score", "Time", "When")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-8s  %-10s  %-8s  %s\n",
			shortID(r.ID), r.Outcome, humanize.Comma(int64(r.Score)),
			r.Duration.Round(100*time.Millisecond), humanize.Time(r.CreatedAt))
	}
}

// printRun prints the details of one run of gameID.
func printRun(store *storage.Store, gameID, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil || run.GameID != gameID {
		return fmt.Errorf("no %s run matches %q", gameID, id)
	}

	fmt.Printf("Run      %s\n", run.ID)
	fmt.Printf("Outcome  %s\n", run.Outcome)
	fmt.Printf("Score    %s\n", humanize.Comma(int64(run.Score)))
	fmt.Printf("Time     %s\n", run.Duration.Round(100*time.Millisecond))
	fmt.Printf("Seed     %d\n", run.Seed)
	fmt.Printf("Played   %s (%s)\n", run.CreatedAt.Local().Format(time.DateTime), humanize.Time(run.CreatedAt))
	fmt.Println()
	fmt.Printf("Replay with: protolab play %s --seed %d\n", gameID, run.Seed)
	return nil
}

// shortID trims a run UUID to its first group.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
