// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import "github.com/lumenray/raytrace/math/lin"

// Camera stores position and rotation (degrees, XYZ). Per spec.md §9's
// design note, the rotation matrix is composed once at scene finalization
// rather than lazily on first ray: the source's lazy variant flips a
// boolean without synchronization, a data race once rendering is
// parallelized.
type Camera struct {
	Pos        lin.V3
	Rx, Ry, Rz float64 // Euler rotation in degrees.
	rot        lin.M3  // composed Rz*Ry*Rx, set by finalize.
	finalized  bool
}

// NewCamera builds a camera at pos with the given Euler rotation in
// degrees. Call finalize before the first getRay.
func NewCamera(pos lin.V3, rx, ry, rz float64) *Camera {
	return &Camera{Pos: pos, Rx: rx, Ry: ry, Rz: rz}
}

// finalize composes the rotation matrix once. Scene calls this during
// scene construction, before any worker starts rendering.
func (c *Camera) finalize() {
	c.rot = *lin.RotationXYZ(c.Rx, c.Ry, c.Rz)
	c.finalized = true
}

// getRay returns the primary ray through normalized device coordinates
// (xp, yp), per spec.md §4.8: { pos, normalize(R * (xp, yp, -1)) }.
func (c *Camera) getRay(xp, yp float64) (origin, dir lin.V3) {
	local := lin.V3{X: xp, Y: yp, Z: -1}
	d := lin.V3{}
	d.MultMv(&c.rot, &local)
	d.Unit()
	return c.Pos, d
}
