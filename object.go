// Copyright © 2024 Galvanized Logic Inc.

package raytrace

import (
	"github.com/lumenray/raytrace/math/lin"
	"github.com/lumenray/raytrace/physics"
)

// ObjectKind discriminates the Object tagged variant. Per spec.md §9's
// design note, this replaces the source's class hierarchy plus
// dynamic_cast with a sum type over a small capability set.
type ObjectKind int

const (
	SphereObject ObjectKind = iota
	PlaneObject
	MeshObject
)

// Object is a tagged variant over {Sphere, Plane, Mesh}, carrying the
// material/pattern attributes shared by every variant plus the
// variant-specific fields named in spec.md §3.
type Object struct {
	Kind     ObjectKind
	Material Material
	Pos      lin.V3 // surface position

	// Sphere
	Radius, Radius2 float64

	// Plane
	Normal lin.V3

	// Mesh: vertices are pre-transformed into world space at load time
	// by size/rot/pos, so the BVH and its triangles need no per-ray
	// transform. Size and Rot are kept for reference/regeneration.
	Size      float64
	Rot       lin.M3
	Triangles []physics.Triangle
	BVH       *physics.BVHNode
}

// NewSphere builds a sphere object at pos with the given radius.
func NewSphere(pos lin.V3, radius float64, mat Material) *Object {
	return &Object{Kind: SphereObject, Pos: pos, Radius: radius, Radius2: radius * radius, Material: mat}
}

// NewPlane builds an infinite plane object through pos with unit normal n.
func NewPlane(pos, n lin.V3, mat Material) *Object {
	n.Unit()
	return &Object{Kind: PlaneObject, Pos: pos, Normal: n, Material: mat}
}

// NewMesh builds a mesh object from world-space triangles, constructing
// its BVH immediately (no lazy build, matching the camera-matrix design
// note's "precompute once, never lazily" guidance). leafMin is the BVH
// leaf-count split threshold (spec.md §3's acPenalty); 0 uses the BVH
// package's own default.
func NewMesh(pos lin.V3, size float64, rot lin.M3, triangles []physics.Triangle, mat Material, leafMin int) *Object {
	return &Object{
		Kind: MeshObject, Pos: pos, Size: size, Rot: rot,
		Triangles: triangles, BVH: physics.BuildBVHLeafMin(triangles, leafMin), Material: mat,
	}
}

// intersectObject is the analytic-primitive entry point for Sphere and
// Plane, per spec.md §4.4.
func (o *Object) intersectObject(origin, dir lin.V3) (hit bool, t, u, v float64) {
	r := physics.NewRay(origin, dir, physics.Primary)
	switch o.Kind {
	case SphereObject:
		h, tt := physics.IntersectSphere(o.Pos, o.Radius2, &r)
		return h, tt, 0, 0
	case PlaneObject:
		h, tt := physics.IntersectPlane(o.Pos, o.Normal, &r)
		return h, tt, 0, 0
	default:
		return false, 0, 0, 0
	}
}

// intersectMesh is the BVH-delegating entry point for Mesh objects.
func (o *Object) intersectMesh(r *physics.Ray) (hit bool, t float64, triIdx int, u, v float64) {
	if o.Kind != MeshObject {
		return false, 0, -1, 0, 0
	}
	return physics.IntersectBVH(o.BVH, o.Triangles, r, false)
}

// getSurfaceData yields (normal, texCoord) at a hit point, variant
// specific per spec.md §4.4. triIdx/u/v are only meaningful for Mesh hits.
func (o *Object) getSurfaceData(hitPoint lin.V3, triIdx int, u, v float64) (normal lin.V3, texU, texV float64) {
	switch o.Kind {
	case SphereObject:
		n := lin.V3{}
		n.Sub(&hitPoint, &o.Pos)
		n.Unit()
		return n, u, v
	case PlaneObject:
		return o.Normal, hitPoint.X, hitPoint.Z
	case MeshObject:
		tri := &o.Triangles[triIdx]
		n := physics.SurfaceNormal(tri, u, v)
		return n, u, v
	default:
		return lin.V3{}, 0, 0
	}
}
