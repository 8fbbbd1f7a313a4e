// Package ui renders magnetar's terminal output: rank tables, run
// summaries, and errors, with light ANSI styling on stderr/stdout.
package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// barWidth is the width of the rank bar rendered next to each value.
const barWidth = 24

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, bold+cyan+"  ╔══════════════════════════════════╗"+reset)
	fmt.Fprintln(os.Stderr, bold+cyan+"  ║"+reset+bold+"   MAGNETAR  "+dim+"pagerank estimator"+reset+bold+cyan+"   ║"+reset)
	fmt.Fprintln(os.Stderr, bold+cyan+"  ╚══════════════════════════════════╝"+reset)
	fmt.Fprintln(os.Stderr)
}

// SampleHeader prints the section header for the sampling estimate.
func (p *Printer) SampleHeader(n int) {
	fmt.Printf("\n"+bold+magenta+"PageRank Results from Sampling (n = %d)"+reset+"\n", n)
}

// IterateHeader prints the section header for the iterative estimate.
func (p *Printer) IterateHeader() {
	fmt.Println("\n" + bold + magenta + "PageRank Results from Iteration" + reset)
}

// RankTable prints a rank vector sorted by page name, one page per line,
// with the conventional four decimal digits and a proportional bar.
func (p *Printer) RankTable(rank map[string]float64) {
	pages := make([]string, 0, len(rank))
	width := 0
	max := 0.0
	for page, value := range rank {
		pages = append(pages, page)
		if len(page) > width {
			width = len(page)
		}
		if value > max {
			max = value
		}
	}
	sort.Strings(pages)

	for _, page := range pages {
		value := rank[page]
		bar := 0
		if max > 0 {
			bar = int(value / max * barWidth)
		}
		fmt.Printf("  %-*s  %s%.4f%s  %s%s%s\n",
			width, page, bold, value, reset,
			cyan, strings.Repeat("▇", bar), reset)
	}
}

// RunSummary reports estimator statistics after both estimates finish.
func (p *Printer) RunSummary(pages, visits, iterations int, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "\n"+dim+"%d pages · %d visits sampled · converged in %d iterations · %.1fms"+reset+"\n",
		pages, visits, iterations, float64(elapsed.Microseconds())/1000.0)
}

// Recorded reports the history run ID assigned to this computation.
func (p *Printer) Recorded(runID int64) {
	fmt.Fprintf(os.Stderr, dim+"recorded as run %d"+reset+"\n", runID)
}

// Watching announces watch mode on a directory.
func (p *Printer) Watching(dir string) {
	fmt.Fprintf(os.Stderr, bold+blue+"▶ watching"+reset+dim+" %s for changes (ctrl-c to stop)"+reset+"\n", dir)
}

// Changed announces a detected corpus change before a recompute.
func (p *Printer) Changed(file string) {
	fmt.Fprintf(os.Stderr, "\n"+yellow+"⟳ %s changed"+reset+" — recomputing\n", file)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, red+bold+"error: "+reset+"%s\n", msg)
}

// Success prints a green confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(os.Stderr, green+"✓ "+reset+"%s\n", msg)
}
