package pagerank

import (
	"errors"
	"math"
	"testing"

	"github.com/papapumpkin/magnetar/internal/corpus"
)

func TestIterate_SumsToOne(t *testing.T) {
	corpora := map[string]corpus.Corpus{
		"four page": buildFourPage(t),
		"cycle":     buildCycle(t),
		"dangling":  buildDangling(t),
	}

	for name, c := range corpora {
		result, err := Iterate(c, DefaultOptions())
		if err != nil {
			t.Fatalf("%s: Iterate() error: %v", name, err)
		}
		if sum := result.Rank.Sum(); math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("%s: rank sum = %v, want 1.0", name, sum)
		}
		for page, v := range result.Rank {
			if v < 0 {
				t.Errorf("%s: rank[%s] = %v, want >= 0", name, page, v)
			}
		}
	}
}

func TestIterate_CycleRanks(t *testing.T) {
	// A receives contributions from both B and C, so it must rank
	// strictly above the other two, which should be near-equal.
	result, err := Iterate(buildCycle(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	rank := result.Rank

	if rank["A"] <= rank["B"] || rank["A"] <= rank["C"] {
		t.Errorf("rank A = %v should exceed B = %v and C = %v", rank["A"], rank["B"], rank["C"])
	}
	if math.Abs(rank["B"]-rank["C"]) > 0.05 {
		t.Errorf("rank B = %v and C = %v should be close", rank["B"], rank["C"])
	}
}

func TestIterate_SingleIsolatedPage(t *testing.T) {
	c := corpus.New(map[string][]string{"A": nil})

	result, err := Iterate(c, DefaultOptions())
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	if got := result.Rank["A"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("rank[A] = %v, want 1.0", got)
	}
}

func TestIterate_MutualPair(t *testing.T) {
	c := corpus.New(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	result, err := Iterate(c, DefaultOptions())
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	for _, page := range []string{"A", "B"} {
		if got := result.Rank[page]; math.Abs(got-0.5) > 1e-6 {
			t.Errorf("rank[%s] = %v, want 0.5", page, got)
		}
	}
}

func TestIterate_DanglingMassConserved(t *testing.T) {
	// B is dangling; its mass must be redistributed, not lost, so the
	// vector still sums to 1 and B keeps a nonzero share.
	result, err := Iterate(buildDangling(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	if sum := result.Rank.Sum(); math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("rank sum = %v, want 1.0", sum)
	}
	if result.Rank["B"] <= 0 {
		t.Errorf("rank[B] = %v, want > 0", result.Rank["B"])
	}
}

func TestIterate_IsFixedPoint(t *testing.T) {
	c := buildFourPage(t)
	opts := DefaultOptions()

	result, err := Iterate(c, opts)
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}

	// Re-applying one pass of the recurrence to the converged vector must
	// change no page by more than the convergence threshold.
	next := applyRecurrence(c, result.Rank, opts.Damping)
	for page := range c {
		if delta := math.Abs(next[page] - result.Rank[page]); delta > opts.Epsilon*10 {
			t.Errorf("rank[%s] moved by %v after convergence", page, delta)
		}
	}
}

func TestIterate_Deterministic(t *testing.T) {
	c := buildFourPage(t)

	first, err := Iterate(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Iterate(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for page := range c {
		if first.Rank[page] != second.Rank[page] {
			t.Errorf("rank[%s] differs across runs: %v vs %v", page, first.Rank[page], second.Rank[page])
		}
	}
}

func TestIterate_ReportsConvergence(t *testing.T) {
	result, err := Iterate(buildFourPage(t), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations < 2 {
		t.Errorf("Iterations = %d, want at least 2 for a non-trivial corpus", result.Iterations)
	}
	if result.Delta >= DefaultOptions().Epsilon {
		t.Errorf("final Delta = %v, want < epsilon %v", result.Delta, DefaultOptions().Epsilon)
	}
}

func TestIterate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		corpus  corpus.Corpus
		opts    Options
		wantErr error
	}{
		{"empty corpus", corpus.Corpus{}, DefaultOptions(), corpus.ErrEmptyCorpus},
		{"bad damping", buildCycle(t), Options{Damping: 1.5, Epsilon: 1e-6, MaxIterations: 100}, ErrInvalidDamping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Iterate(tt.corpus, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Iterate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// applyRecurrence performs one pass of the PageRank recurrence, including
// dangling redistribution, against an arbitrary rank vector.
func applyRecurrence(c corpus.Corpus, rank Rank, damping float64) Rank {
	nf := float64(c.Len())
	base := (1.0 - damping) / nf

	var danglingSum float64
	for page := range c {
		if len(c.Links(page)) == 0 {
			danglingSum += rank[page]
		}
	}

	next := make(Rank, c.Len())
	for page := range c {
		next[page] = base + damping*danglingSum/nf
	}
	for page, links := range c {
		if len(links) == 0 {
			continue
		}
		share := damping * rank[page] / float64(len(links))
		for target := range links {
			next[target] += share
		}
	}
	return next
}
