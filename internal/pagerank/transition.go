package pagerank

import (
	"fmt"

	"github.com/papapumpkin/magnetar/internal/corpus"
)

// Transition returns the probability distribution over which page a random
// surfer on page visits next. With probability damping the surfer follows
// one of the page's outlinks uniformly at random; with probability
// 1-damping it teleports to a uniformly random corpus page. A dangling page
// (no outlinks) has nothing to follow, so its distribution is uniform over
// the whole corpus.
//
// The result covers every corpus page, is strictly positive everywhere,
// and sums to 1 up to floating-point rounding.
func Transition(c corpus.Corpus, page string, damping float64) (Distribution, error) {
	if err := (Options{Damping: damping}).validate(c); err != nil {
		return nil, err
	}
	links, ok := c[page]
	if !ok {
		return nil, fmt.Errorf("pagerank: %w: %s", ErrUnknownPage, page)
	}

	n := float64(c.Len())
	dist := make(Distribution, c.Len())

	if len(links) == 0 {
		for p := range c {
			dist[p] = 1.0 / n
		}
		return dist, nil
	}

	// Teleport branch reaches every page, link branch only the outlinks.
	teleport := (1.0 - damping) / n
	follow := damping / float64(len(links))
	for p := range c {
		dist[p] = teleport
		if links[p] {
			dist[p] += follow
		}
	}
	return dist, nil
}
