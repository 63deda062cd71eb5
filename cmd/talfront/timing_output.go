package main

import (
	"fmt"
	"io"

	"talfront/internal/driver"
	"talfront/internal/observ"
)

// printTimings prints per-phase durations summed over results.
func printTimings(out io.Writer, results []*driver.FileResult) {
	if out == nil {
		return
	}
	total := observ.NewTimer()
	cached := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		total.Merge(res.Timer)
		if res.Cached {
			cached++
		}
	}
	fmt.Fprintf(out, "%d files, %d cached\n", len(results), cached)
	fmt.Fprint(out, total.Summary())
}
