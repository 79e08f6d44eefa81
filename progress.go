// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

// progress.go - report render progress while workers execute.
//
// Per spec.md §9's design note, this replaces a nested polling loop with
// a simple main-thread timer that sleeps 1s then prints: same semantics,
// cleaner code.

import (
	"fmt"
	"time"
)

// reportProgress polls sc's finished-pixel/worker counters at ~1 Hz and
// prints a percentage line until every worker has finished. It is meant
// to run on the main goroutine, concurrently with the render workers.
func reportProgress(sc *Scene) {
	total := int64(sc.totalPixels())
	if total == 0 {
		return
	}
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		done := sc.finishedPixelCount()
		pct := float64(done) / float64(total) * 100
		fmt.Printf("rendering: %5.1f%%\n", pct)
		if sc.finishedWorkerCount() >= int64(sc.Options.nWorkers) {
			return
		}
	}
}
