// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
)

// AABB is an axis aligned bounding box with Min.k <= Max.k for each axis.
type AABB struct {
	Min, Max lin.V3
}

// Extend grows b so it also encloses point p.
func (b *AABB) Extend(p *lin.V3) {
	b.Min.X, b.Min.Y, b.Min.Z = math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)
	b.Max.X, b.Max.Y, b.Max.Z = math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)
}

// EmptyAABB returns a box primed so the first Extend call sets real bounds.
func EmptyAABB() AABB {
	return AABB{
		Min: lin.V3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: lin.V3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// LongestAxis returns the index (0=x, 1=y, 2=z) of the box's longest
// dimension. Ties are broken x over y over z.
func (b *AABB) LongestAxis() int {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	switch {
	case dx >= dy && dx >= dz:
		return 0
	case dy >= dz:
		return 1
	default:
		return 2
	}
}

// IntersectAABB is the slab method ray/box test. IEEE infinities from
// dividing by a zero direction component are relied on to behave correctly:
// a ray parallel to a slab either always or never falls inside it.
func IntersectAABB(b *AABB, r *Ray) bool {
	countAccelBoxTest()
	invX, invY, invZ := 1/r.Dir.X, 1/r.Dir.Y, 1/r.Dir.Z

	tmin, tmax := slab(r.Origin.X, invX, b.Min.X, b.Max.X)
	tymin, tymax := slab(r.Origin.Y, invY, b.Min.Y, b.Max.Y)
	if tmin > tymax || tymin > tmax {
		return false
	}
	tmin, tmax = math.Max(tmin, tymin), math.Min(tmax, tymax)

	tzmin, tzmax := slab(r.Origin.Z, invZ, b.Min.Z, b.Max.Z)
	if tmin > tzmax || tzmin > tmax {
		return false
	}
	tmin, tmax = math.Max(tmin, tzmin), math.Min(tmax, tzmax)
	return tmax >= math.Max(tmin, 0)
}

// slab computes the entry/exit distance of a ray against one axis's slab,
// picking the min/max bound according to the sign of the inverse direction.
func slab(origin, invDir, lo, hi float64) (tmin, tmax float64) {
	if invDir >= 0 {
		return (lo - origin) * invDir, (hi - origin) * invDir
	}
	return (hi - origin) * invDir, (lo - origin) * invDir
}
