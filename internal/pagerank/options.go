// Package pagerank estimates the PageRank distribution of a corpus two
// independent ways: a Monte Carlo random-surfer simulation (Sample) and a
// deterministic fixed-point iteration (Iterate). Both approximate the same
// stationary distribution and both return vectors summing to 1.
package pagerank

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/magnetar/internal/corpus"
)

// ErrInvalidDamping is returned when the damping factor is outside (0, 1].
var ErrInvalidDamping = errors.New("damping factor must be in (0, 1]")

// ErrInvalidSamples is returned when the sample count is not positive.
var ErrInvalidSamples = errors.New("sample count must be at least 1")

// ErrUnknownPage is returned when a transition is requested for a page
// that is not part of the corpus.
var ErrUnknownPage = errors.New("page not in corpus")

// Options configures a PageRank computation.
type Options struct {
	Damping       float64 // probability of following a link; typically 0.85
	Samples       int     // surf trajectories drawn by the sampling estimator
	Epsilon       float64 // convergence threshold for the iterative estimator
	MaxIterations int     // upper bound on iterations
}

// DefaultOptions returns production-ready defaults: damping 0.85,
// 10000 samples, epsilon 1e-6, max 100 iterations.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Samples:       10000,
		Epsilon:       1e-6,
		MaxIterations: 100,
	}
}

// validate checks the option/corpus preconditions shared by both estimators.
func (o Options) validate(c corpus.Corpus) error {
	if c.Len() == 0 {
		return fmt.Errorf("pagerank: %w", corpus.ErrEmptyCorpus)
	}
	if o.Damping <= 0 || o.Damping > 1 {
		return fmt.Errorf("pagerank: %w: %v", ErrInvalidDamping, o.Damping)
	}
	return nil
}
