package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/magnetar/internal/config"
	"github.com/papapumpkin/magnetar/internal/ui"
	"github.com/papapumpkin/magnetar/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <corpus>",
	Short: "Recompute ranks whenever the corpus directory changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Float64("damping", 0, "override damping factor (0 < d <= 1)")
	watchCmd.Flags().Int("samples", 0, "override surf trajectory count")
	watchCmd.Flags().Float64("epsilon", 0, "override convergence threshold")
	watchCmd.Flags().Int("max-iterations", 0, "override iteration cap")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	opts := buildOptions(cmd, cfg)
	dir, err := resolveCorpusDir(cfg, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initial computation, then one recompute per detected change.
	// Watch-mode runs are not recorded; only explicit rank runs are.
	if err := computeAndPrint(ctx, cfg, printer, opts, dir, nil, false); err != nil {
		return err
	}

	watcher, err := watch.New(dir)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	printer.Watching(dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-watcher.Changes:
			printer.Changed(change.File)
			if err := computeAndPrint(ctx, cfg, printer, opts, dir, nil, false); err != nil {
				// Keep watching; a half-edited corpus will fail to crawl.
				continue
			}
		}
	}
}
