// Copyright © 2024 Galvanized Logic Inc.

package raytrace

import (
	"sync"

	"github.com/lumenray/raytrace/physics"
)

// Render computes the full framebuffer for sc using a row-stripe worker
// pool: worker i in [0, nWorkers) renders rows [i*height/nWorkers,
// (i+1)*height/nWorkers), the last worker taking the remainder. Workers
// write disjoint rows, so the framebuffer needs no locking — only the
// WaitGroup join at the end needs to publish their writes to the caller.
func Render(sc *Scene) []Color {
	w, h := sc.Options.width, sc.Options.height
	fb := make([]Color, w*h)

	var wg sync.WaitGroup
	wg.Add(sc.Options.nWorkers)
	for i := 0; i < sc.Options.nWorkers; i++ {
		lo := i * h / sc.Options.nWorkers
		hi := (i + 1) * h / sc.Options.nWorkers
		if i == sc.Options.nWorkers-1 {
			hi = h
		}
		go func(lo, hi int) {
			defer wg.Done()
			renderRows(sc, fb, lo, hi)
			sc.workerDone()
		}(lo, hi)
	}

	reportProgress(sc)
	wg.Wait()
	return fb
}

// renderRows renders the half-open row range [lo, hi) into fb.
func renderRows(sc *Scene, fb []Color, lo, hi int) {
	w, h := sc.Options.width, sc.Options.height
	scale := sc.Options.scale()
	aspect := sc.Options.aspect()

	for y := lo; y < hi; y++ {
		for x := 0; x < w; x++ {
			xp := (2*(float64(x)+0.5)/float64(w) - 1) * scale * aspect
			yp := -(2*(float64(y)+0.5)/float64(h) - 1) * scale
			origin, dir := sc.Camera.getRay(xp, yp)
			r := physics.NewRay(origin, dir, physics.Primary)
			fb[y*w+x] = castRay(&r, sc, 0)
		}
		sc.addFinishedPixels(int64(w))
	}
}
