package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/magnetar/internal/catalog"
	"github.com/papapumpkin/magnetar/internal/config"
	"github.com/papapumpkin/magnetar/internal/corpus"
	"github.com/papapumpkin/magnetar/internal/history"
	"github.com/papapumpkin/magnetar/internal/pagerank"
	"github.com/papapumpkin/magnetar/internal/telemetry"
	"github.com/papapumpkin/magnetar/internal/ui"
)

var rankCmd = &cobra.Command{
	Use:   "rank <corpus>",
	Short: "Estimate PageRank for a corpus directory or catalog name",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().Float64("damping", 0, "override damping factor (0 < d <= 1)")
	rankCmd.Flags().Int("samples", 0, "override surf trajectory count")
	rankCmd.Flags().Float64("epsilon", 0, "override convergence threshold")
	rankCmd.Flags().Int("max-iterations", 0, "override iteration cap")
	rankCmd.Flags().Int64("seed", 0, "seed the sampling estimator for reproducible output")
	rankCmd.Flags().Bool("no-record", false, "skip recording this run in history")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	printer := ui.New()

	opts := buildOptions(cmd, cfg)
	dir, err := resolveCorpusDir(cfg, args[0])
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	noRecord, _ := cmd.Flags().GetBool("no-record")
	return computeAndPrint(cmd.Context(), cfg, printer, opts, dir, rng, !noRecord && cfg.HistoryEnabled)
}

// buildOptions loads estimator options from config and applies flag overrides.
func buildOptions(cmd *cobra.Command, cfg config.Config) pagerank.Options {
	opts := pagerank.Options{
		Damping:       cfg.Damping,
		Samples:       cfg.Samples,
		Epsilon:       cfg.Epsilon,
		MaxIterations: cfg.MaxIterations,
	}
	if v, _ := cmd.Flags().GetFloat64("damping"); v > 0 {
		opts.Damping = v
	}
	if v, _ := cmd.Flags().GetInt("samples"); v > 0 {
		opts.Samples = v
	}
	if v, _ := cmd.Flags().GetFloat64("epsilon"); v > 0 {
		opts.Epsilon = v
	}
	if v, _ := cmd.Flags().GetInt("max-iterations"); v > 0 {
		opts.MaxIterations = v
	}
	return opts
}

// resolveCorpusDir maps the corpus argument through the catalog: a registered
// name resolves to its directory, anything else passes through as a path.
func resolveCorpusDir(cfg config.Config, nameOrPath string) (string, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return "", err
	}
	return cat.Resolve(nameOrPath), nil
}

// computeAndPrint crawls the corpus, runs both estimators, prints both rank
// tables, and optionally records the run. Shared by rank and watch.
func computeAndPrint(ctx context.Context, cfg config.Config, printer *ui.Printer,
	opts pagerank.Options, dir string, rng *rand.Rand, record bool) error {

	emitter := openEmitter(cfg, printer, dir)
	defer emitter.Close()

	start := time.Now()
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindRunStart, Corpus: dir, Data: opts})

	c, err := corpus.Crawl(dir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindCrawlDone, Corpus: dir, Data: map[string]any{
		"pages": c.Len(),
	}})

	sampled, err := pagerank.Sample(c, opts, rng)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindSampleDone, Corpus: dir, Data: map[string]any{
		"trajectories": sampled.Trajectories,
		"visits":       sampled.Visits,
	}})

	iterated, err := pagerank.Iterate(c, opts)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindIterateDone, Corpus: dir, Data: map[string]any{
		"iterations": iterated.Iterations,
		"delta":      iterated.Delta,
	}})

	printer.SampleHeader(opts.Samples)
	printer.RankTable(sampled.Rank)
	printer.IterateHeader()
	printer.RankTable(iterated.Rank)

	elapsed := time.Since(start)
	printer.RunSummary(c.Len(), sampled.Visits, iterated.Iterations, elapsed)
	_ = emitter.Emit(telemetry.Event{Kind: telemetry.KindRunDone, Corpus: dir, Data: map[string]any{
		"duration_ms": elapsed.Milliseconds(),
	}})

	if record {
		if err := recordRun(ctx, cfg, printer, opts, dir, c.Len(), sampled, iterated, elapsed); err != nil {
			// History is best-effort; the estimates already printed.
			printer.Error(fmt.Sprintf("recording run: %v", err))
		}
	}
	return nil
}

// openEmitter opens a per-run telemetry stream, or returns a nil no-op
// emitter when telemetry is disabled or the file cannot be opened.
func openEmitter(cfg config.Config, printer *ui.Printer, dir string) *telemetry.Emitter {
	if cfg.TelemetryDir == "" {
		return nil
	}
	path := filepath.Join(cfg.TelemetryDir, fmt.Sprintf("run-%d.jsonl", time.Now().UnixNano()))
	emitter, err := telemetry.NewEmitter(path)
	if err != nil {
		if cfg.Verbose {
			printer.Error(fmt.Sprintf("telemetry disabled: %v", err))
		}
		return nil
	}
	return emitter
}

func recordRun(ctx context.Context, cfg config.Config, printer *ui.Printer,
	opts pagerank.Options, dir string, pages int,
	sampled pagerank.SampleResult, iterated pagerank.IterateResult, elapsed time.Duration) error {

	store, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Record(ctx, history.Run{
		Corpus:     dir,
		Pages:      pages,
		Damping:    opts.Damping,
		Samples:    opts.Samples,
		Iterations: iterated.Iterations,
		Duration:   elapsed,
	}, sampled.Rank, iterated.Rank)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.Recorded(runID)
	}
	return nil
}
