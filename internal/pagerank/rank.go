package pagerank

// Rank maps each corpus page to its estimated PageRank value. A valid Rank
// is non-negative everywhere and sums to 1.
type Rank map[string]float64

// Distribution is a one-step transition distribution: the probability of
// visiting each corpus page next, given some current page. It sums to 1.
type Distribution map[string]float64

// Sum returns the total mass of the vector. Useful for invariant checks;
// estimators normalize before returning, so this is 1 up to rounding.
func (r Rank) Sum() float64 {
	var total float64
	for _, v := range r {
		total += v
	}
	return total
}

// normalize scales the vector in place so it sums exactly to 1.
// A zero vector is left untouched.
func (r Rank) normalize() {
	total := r.Sum()
	if total == 0 {
		return
	}
	for page := range r {
		r[page] /= total
	}
}
