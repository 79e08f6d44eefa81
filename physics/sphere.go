// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
)

// IntersectSphere is the closed-form ray-sphere test against a sphere
// centered at c with squared radius r2. It returns the nearest t > 0.
// http://www.scratchapixel.com/lessons/3d-basic-lessons/lesson-7-intersecting-simple-shapes/ray-sphere-intersection/
func IntersectSphere(c lin.V3, r2 float64, r *Ray) (hit bool, t float64) {
	l := lin.V3{}
	l.Sub(&c, &r.Origin) // vector from ray origin to sphere center.
	tca := r.Dir.Dot(&l)
	d2 := l.Dot(&l) - tca*tca
	if d2 > r2 {
		return false, 0 // ray misses the sphere entirely.
	}
	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 < 0 {
		t0 = t1 // origin is inside the sphere, use the far intersection.
		if t0 < 0 {
			return false, 0
		}
	}
	return true, t0
}
