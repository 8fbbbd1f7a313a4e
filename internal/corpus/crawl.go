package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// hrefPattern extracts the href target of every anchor tag in a document.
var hrefPattern = regexp.MustCompile(`<a\s+(?:[^>]*?)href="([^"]*)"`)

// Crawl reads every .html file in dir and builds a Corpus from the anchor
// links between them. Links a page makes to itself and links to documents
// outside dir are discarded, so the result always satisfies Validate.
func Crawl(dir string) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: read directory %s: %w", dir, err)
	}

	raw := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("corpus: read %s: %w", entry.Name(), err)
		}
		raw[entry.Name()] = ExtractLinks(string(data))
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("corpus: %w: no .html files in %s", ErrEmptyCorpus, dir)
	}
	return New(raw), nil
}

// ExtractLinks returns the href target of every anchor tag in an HTML
// document, in document order. Duplicates are preserved; New collapses them.
func ExtractLinks(contents string) []string {
	matches := hrefPattern.FindAllStringSubmatch(contents, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, m[1])
	}
	return links
}
