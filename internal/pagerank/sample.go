package pagerank

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/papapumpkin/magnetar/internal/corpus"
)

// SampleResult carries the sampled rank vector along with trajectory
// statistics, used for reporting and telemetry.
type SampleResult struct {
	Rank         Rank
	Trajectories int // surf trajectories drawn (opts.Samples)
	Visits       int // total page visits across all trajectories
}

// Sample estimates PageRank by simulating a random surfer. It draws
// opts.Samples independent trajectories: each starts on a uniformly random
// page and, after every visit, continues to a random outlink with
// probability opts.Damping (to a random corpus page if the current page is
// dangling) or ends. Visits are counted per page and normalized by the
// total visit count, so the result sums to 1 by construction.
//
// rng may be nil, in which case a time-seeded source is used. Passing a
// seeded *rand.Rand makes the estimate reproducible.
func Sample(c corpus.Corpus, opts Options, rng *rand.Rand) (SampleResult, error) {
	if err := opts.validate(c); err != nil {
		return SampleResult{}, err
	}
	if opts.Samples < 1 {
		return SampleResult{}, fmt.Errorf("pagerank: %w: %d", ErrInvalidSamples, opts.Samples)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pages := c.Pages()
	outlinks := make(map[string][]string, len(pages))
	for _, page := range pages {
		links := c.Links(page)
		targets := make([]string, 0, len(links))
		for target := range links {
			targets = append(targets, target)
		}
		outlinks[page] = targets
	}

	visits := make(map[string]int, len(pages))
	total := 0
	for i := 0; i < opts.Samples; i++ {
		page := pages[rng.Intn(len(pages))]
		for {
			visits[page]++
			total++
			if rng.Float64() >= opts.Damping {
				break
			}
			if targets := outlinks[page]; len(targets) > 0 {
				page = targets[rng.Intn(len(targets))]
			} else {
				page = pages[rng.Intn(len(pages))]
			}
		}
	}

	rank := make(Rank, len(pages))
	for _, page := range pages {
		rank[page] = float64(visits[page]) / float64(total)
	}
	return SampleResult{Rank: rank, Trajectories: opts.Samples, Visits: total}, nil
}
