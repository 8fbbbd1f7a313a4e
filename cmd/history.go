package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/magnetar/internal/config"
	"github.com/papapumpkin/magnetar/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded PageRank runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum runs to list")
	historyCmd.Flags().Int64("ranks", 0, "show the per-page estimates of a run ID")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	store, err := history.Open(cmd.Context(), cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID, _ := cmd.Flags().GetInt64("ranks"); runID > 0 {
		return printRunRanks(cmd, store, runID)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-5s %-30s %6s %8s %8s %6s %9s  %s\n",
		"ID", "CORPUS", "PAGES", "DAMPING", "SAMPLES", "ITERS", "DURATION", "WHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d %-30s %6d %8.2f %8d %6d %9s  %s\n",
			r.ID, r.Corpus, r.Pages, r.Damping, r.Samples, r.Iterations,
			r.Duration, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRunRanks(cmd *cobra.Command, store *history.Store, runID int64) error {
	ranks, err := store.Ranks(cmd.Context(), runID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-30s %8s %8s\n", "PAGE", "SAMPLED", "ITERATED")
	for _, pr := range ranks {
		fmt.Fprintf(w, "%-30s %8.4f %8.4f\n", pr.Page, pr.Sampled, pr.Iterated)
	}
	return nil
}
