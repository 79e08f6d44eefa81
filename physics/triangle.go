// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/lumenray/raytrace/math/lin"

// Triangle is three vertex positions plus three vertex normals, immutable
// after construction and owned by the Mesh that contains it. Normals
// default to the geometric face normal when not supplied explicitly.
type Triangle struct {
	A, B, C    lin.V3
	Na, Nb, Nc lin.V3
}

// NewTriangle builds a triangle, deriving the face normal for all three
// vertex normals.
func NewTriangle(a, b, c lin.V3) Triangle {
	n := faceNormal(a, b, c)
	return Triangle{A: a, B: b, C: c, Na: n, Nb: n, Nc: n}
}

// NewTriangleN builds a triangle with explicit per-vertex normals.
func NewTriangleN(a, b, c, na, nb, nc lin.V3) Triangle {
	return Triangle{A: a, B: b, C: c, Na: na, Nb: nb, Nc: nc}
}

func faceNormal(a, b, c lin.V3) lin.V3 {
	e1, e2 := lin.V3{}, lin.V3{}
	e1.Sub(&b, &a)
	e2.Sub(&c, &a)
	n := lin.V3{}
	n.Cross(&e1, &e2)
	n.Unit()
	return n
}

// Bounds returns the axis aligned bounding box of the triangle's vertices.
func (t *Triangle) Bounds() AABB {
	box := EmptyAABB()
	box.Extend(&t.A)
	box.Extend(&t.B)
	box.Extend(&t.C)
	return box
}

// triangleEpsilon is the parallel-ray determinant cutoff.
const triangleEpsilon = 1e-8

// IntersectTriangle is the Möller-Trumbore ray/triangle test. It returns
// hit=false for a miss, a ray parallel to the triangle's plane, or a
// backface hit when cullBackface is set.
func IntersectTriangle(tri *Triangle, r *Ray, cullBackface bool) (hit bool, t, u, v float64) {
	countRayTriangleTest()
	e1, e2 := lin.V3{}, lin.V3{}
	e1.Sub(&tri.B, &tri.A)
	e2.Sub(&tri.C, &tri.A)

	p := lin.V3{}
	p.Cross(&r.Dir, &e2)
	det := e1.Dot(&p)

	if cullBackface && det < triangleEpsilon {
		return false, 0, 0, 0
	}
	if det > -triangleEpsilon && det < triangleEpsilon {
		return false, 0, 0, 0 // ray parallel to the triangle plane.
	}
	invDet := 1 / det

	tVec := lin.V3{}
	tVec.Sub(&r.Origin, &tri.A)
	u = tVec.Dot(&p) * invDet
	if u < 0 || u > 1 {
		return false, 0, 0, 0
	}

	q := lin.V3{}
	q.Cross(&tVec, &e1)
	v = r.Dir.Dot(&q) * invDet
	if v < 0 || u+v > 1 {
		return false, 0, 0, 0
	}

	t = e2.Dot(&q) * invDet
	if t < 0 {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// SurfaceNormal barycentrically interpolates the triangle's vertex normals
// at hit coordinates (u,v) and returns the unit normal.
func SurfaceNormal(tri *Triangle, u, v float64) lin.V3 {
	n := lin.V3{}
	na, nb, nc := tri.Na, tri.Nb, tri.Nc
	na.Scale(&na, 1-u-v)
	nb.Scale(&nb, u)
	nc.Scale(&nc, v)
	n.Add(&na, &nb)
	n.Add(&n, &nc)
	n.Unit()
	return n
}
