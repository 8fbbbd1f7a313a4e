package pagerank

import (
	"math"

	"github.com/papapumpkin/magnetar/internal/corpus"
)

// IterateResult carries the converged rank vector along with convergence
// statistics, used for reporting and telemetry.
type IterateResult struct {
	Rank       Rank
	Iterations int     // passes applied before convergence (or the cap)
	Delta      float64 // max absolute per-page change of the final pass
}

// Iterate estimates PageRank by repeatedly applying the rank recurrence
// until it stabilizes. Every page starts at 1/N; each pass recomputes
//
//	rank(q) = (1-d)/N + d·Σ rank(p)/|L(p)|
//
// over all pages p linking to q. Dangling pages redistribute their rank
// uniformly across the corpus, so no mass is lost. Iteration stops when the
// maximum per-page change falls below opts.Epsilon or after
// opts.MaxIterations passes, and the vector is renormalized to sum exactly
// to 1 before returning.
//
// The computation is deterministic: the same corpus and options always
// produce the same result.
func Iterate(c corpus.Corpus, opts Options) (IterateResult, error) {
	if err := opts.validate(c); err != nil {
		return IterateResult{}, err
	}

	n := c.Len()
	nf := float64(n)
	base := (1.0 - opts.Damping) / nf

	// Incoming edges, precomputed once: inbound[q] lists the pages linking to q.
	inbound := make(map[string][]string, n)
	outdeg := make(map[string]int, n)
	for page, links := range c {
		outdeg[page] = len(links)
		for target := range links {
			inbound[target] = append(inbound[target], page)
		}
	}

	rank := make(Rank, n)
	for page := range c {
		rank[page] = 1.0 / nf
	}

	result := IterateResult{Rank: rank}
	for iter := 0; iter < opts.MaxIterations; iter++ {
		// Dangling pages have no outlinks to carry their mass; spread it
		// uniformly so the total stays 1.
		var danglingSum float64
		for page := range c {
			if outdeg[page] == 0 {
				danglingSum += rank[page]
			}
		}
		danglingShare := opts.Damping * danglingSum / nf

		next := make(Rank, n)
		maxDelta := 0.0
		for page := range c {
			var sum float64
			for _, src := range inbound[page] {
				sum += rank[src] / float64(outdeg[src])
			}
			next[page] = base + opts.Damping*sum + danglingShare

			if delta := math.Abs(next[page] - rank[page]); delta > maxDelta {
				maxDelta = delta
			}
		}

		rank = next
		result.Iterations = iter + 1
		result.Delta = maxDelta
		if maxDelta < opts.Epsilon {
			break
		}
	}

	rank.normalize()
	result.Rank = rank
	return result, nil
}
