// Copyright © 2015-2018 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

// stats.go - consolidate render profiling data.
// FUTURE: expand with per-worker breakdowns if the row-stripe partition
//         ever stops being even enough to diagnose stragglers from totals.

import (
	"fmt"

	"github.com/lumenray/raytrace/physics"
)

// Stats is a thin reporting wrapper over the physics package's hot-path
// counters (rayTriangleTests, accelBoxTests, raysCast), which live there
// because that is where the instrumented loops run. Disabled by default
// to keep the ray-triangle loop branch-predictor-friendly.
type Stats struct {
	Enabled bool
}

// Enable turns the underlying physics package counters on or off.
func (s *Stats) Enable(on bool) {
	s.Enabled = on
	physics.EnableStats(on)
}

// Dump prints the current counter values to the console. Expected to be
// used for development debugging after a render completes.
func (s *Stats) Dump() {
	rays, triTests, boxTests := physics.Counts()
	fmt.Printf("rays:%d triangleTests:%d boxTests:%d\n", rays, triTests, boxTests)
}
