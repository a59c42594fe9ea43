package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/text2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded results",
	Long: `Display the best recorded games and overall statistics.

Results are recorded only when storage is enabled in the config or a
database is given with --db.

Examples:
  text2048 scores
  text2048 scores --limit 20
  text2048 scores --db ./scores.db --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded results")
}

// scoreSource is the part of the score store the listing reads.
type scoreSource interface {
	TopResults(limit int) ([]storage.ResultEntry, error)
	Stats() (*storage.Stats, error)
}

func runScores(cmd *cobra.Command, _ []string) error {
	// Reading an existing history does not require recording to be on.
	appConfig.Storage.Enabled = true

	store, err := storage.OpenFromConfig(appConfig.Storage)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearResults(); err != nil {
			return fmt.Errorf("cannot clear results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All results deleted.")
		return nil
	}

	return printScores(cmd.OutOrStdout(), store, flagScoresLimit)
}

// printScores writes the best results and the overall statistics to w.
func printScores(w io.Writer, src scoreSource, limit int) error {
	results, err := src.TopResults(limit)
	if err != nil {
		return fmt.Errorf("cannot retrieve results: %w", err)
	}

	fmt.Fprintln(w, "High Scores - 2048")
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'text2048 play --db <path>' to record your first game!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-7s  %s\n", "Rank", "Score", "Tile", "Moves", "Outcome", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-5s  %-7s  %s\n", "----", "-----", "----", "-----", "-------", "----")
	for i, r := range results {
		fmt.Fprintf(w, "  %-4d  %-8d  %-6d  %-5d  %-7s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := src.Stats()
	if err != nil {
		return fmt.Errorf("cannot retrieve statistics: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games: %d  Wins: %d  Best: %d  Average: %.0f  Best tile: %d\n",
		stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestTile)
	return nil
}
