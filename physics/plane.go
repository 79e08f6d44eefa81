// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/lumenray/raytrace/math/lin"

// IntersectPlane is the closed-form ray-plane test against the infinite
// plane through point p0 with unit normal n. Only the side n faces is hit:
// a ray travelling along n misses.
// http://en.wikipedia.org/wiki/Line-plane_intersection
func IntersectPlane(p0, n lin.V3, r *Ray) (hit bool, t float64) {
	denom := n.Dot(&r.Dir)
	if denom > -planeEpsilon {
		return false, 0 // ray approaches the plane's back side or runs parallel to it.
	}
	diff := lin.V3{}
	diff.Sub(&p0, &r.Origin)
	t = diff.Dot(&n) / denom
	if t < 0 {
		return false, 0
	}
	return true, t
}

// planeEpsilon is the near-parallel cutoff for the ray/plane denominator.
const planeEpsilon = 1e-8
