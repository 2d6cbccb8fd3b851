package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/registry"
	"github.com/vovakirdan/bizsim/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <business>",
	Short: "Show high scores for a business",
	Long: `Display the top 10 runs for the specified business.

Examples:
  bizsim scores lemonade
  bizsim scores tech_startup --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded run for the business")
}

func runScores(_ *cobra.Command, args []string) error {
	businessID := args[0]
	if err := resolveBusiness(businessID); err != nil {
		return err
	}
	cfg, err := registry.Lookup(businessID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(businessID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", cfg.Name)
		return nil
	}

	scores, err := store.TopScores(businessID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", cfg.Name)

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bizsim play %s' to set the first high score!\n", businessID)
		return nil
	}

	t := newTable("Rank", "Score", "Player", "Profile", "Periods", "Outcome", "When")
	for i, e := range scores {
		t.Row(
			"#"+strconv.Itoa(i+1),
			humanize.Comma(int64(e.Score)),
			e.Player,
			e.ProfileID,
			strconv.Itoa(e.Periods),
			e.Outcome,
			humanize.Time(e.CreatedAt),
		)
	}
	fmt.Println(t.Render())

	stats, err := store.GetBusinessStats(businessID)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d runs, %d victories, average score %s over %.1f periods\n",
		stats.RunsCount, stats.Victories,
		humanize.Comma(int64(stats.AvgScore)), stats.AvgPeriods)
	return nil
}
