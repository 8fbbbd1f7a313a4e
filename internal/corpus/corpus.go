// Package corpus models a closed hyperlink graph: a set of pages and, for
// each page, the set of pages it links to. Every link target is itself a
// page of the corpus and no page links to itself. The corpus is built once
// (usually by Crawl) and read-only afterwards.
package corpus

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyCorpus is returned when an operation requires at least one page.
var ErrEmptyCorpus = errors.New("corpus is empty")

// ErrSelfLink is returned by Validate when a page links to itself.
var ErrSelfLink = errors.New("page links to itself")

// ErrUnknownTarget is returned by Validate when a link points outside the corpus.
var ErrUnknownTarget = errors.New("link target is not a corpus page")

// Corpus maps each page to the set of pages it links to.
type Corpus map[string]map[string]bool

// New creates a Corpus from page → outlink-slice pairs, dropping self links
// and links to pages that are not keys of the map. This mirrors what Crawl
// does for on-disk corpora and is the convenient constructor for tests and
// programmatic callers.
func New(links map[string][]string) Corpus {
	c := make(Corpus, len(links))
	for page := range links {
		c[page] = make(map[string]bool)
	}
	for page, targets := range links {
		for _, target := range targets {
			if target == page {
				continue
			}
			if _, ok := c[target]; !ok {
				continue
			}
			c[page][target] = true
		}
	}
	return c
}

// Pages returns all page names sorted alphabetically.
func (c Corpus) Pages() []string {
	pages := make([]string, 0, len(c))
	for page := range c {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// Len returns the number of pages in the corpus.
func (c Corpus) Len() int {
	return len(c)
}

// Links returns the outlink set of page, or nil if the page does not exist.
func (c Corpus) Links(page string) map[string]bool {
	return c[page]
}

// Validate checks the corpus invariants: at least one page, no self links,
// and every link target present as a page.
func (c Corpus) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}
	for page, targets := range c {
		for target := range targets {
			if target == page {
				return fmt.Errorf("%w: %s", ErrSelfLink, page)
			}
			if _, ok := c[target]; !ok {
				return fmt.Errorf("%w: %s → %s", ErrUnknownTarget, page, target)
			}
		}
	}
	return nil
}
