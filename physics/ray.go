// Copyright © 2024 Galvanized Logic Inc.

// Package physics holds the ray/primitive intersection math used to trace
// rays through a scene of analytic primitives and triangle meshes: the
// closed-form sphere and plane tests, the Möller-Trumbore triangle test,
// the slab-method AABB test, and the BVH accelerator built on top of them.
package physics

import "github.com/lumenray/raytrace/math/lin"

// RayKind distinguishes primary camera rays from shadow rays. Shadow rays
// skip transparent objects so that glass casts no shadow.
type RayKind int

const (
	Primary RayKind = iota
	Shadow
)

// Ray is a line segment with a unit direction used for intersection tests.
// Direction is expected to already be normalized by the caller.
type Ray struct {
	Origin lin.V3
	Dir    lin.V3
	Kind   RayKind
}

// NewRay builds a ray from origin and direction, normalizing the direction.
func NewRay(origin, dir lin.V3, kind RayKind) Ray {
	dir.Unit()
	return Ray{Origin: origin, Dir: dir, Kind: kind}
}

// At returns the point origin + dir*t.
func (r *Ray) At(t float64) lin.V3 {
	p := r.Dir
	p.Scale(&p, t)
	p.Add(&p, &r.Origin)
	return p
}
