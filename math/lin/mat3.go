// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Matrix functions deal with 3x3 matrices expected to be used in CPU 3D
// transform calculations, notably composing a camera's Euler rotation
// once at scene setup instead of rebuilding it per ray.
//
// Conforming to the row-major memory layout used throughout this package,
// matrix elements are explicitly indexed as follows:
//          3x3 M3
//	     [Xx, Xy, Xz]  X-Axis
//	     [Yx, Yy, Yz]  Y-Axis
//	     [Zx, Zy, Zz]  Z-Axis

import "math"

// M3 is a 3x3 matrix where the matrix elements are individually addressable.
type M3 struct {
	Xx, Xy, Xz float64 // X-Axis
	Yx, Yy, Yz float64 // Y-Axis
	Zx, Zy, Zz float64 // Z-Axis
}

// M3I provides a reference identity matrix that can be used
// in calculations. It should never be changed.
var M3I = &M3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1}

// Mult updates m to be the matrix multiplication a*b. Matrix m may not
// be used as either input parameter. The updated matrix m is returned.
func (m *M3) Mult(a, b *M3) *M3 {
	m.Xx = a.Xx*b.Xx + a.Xy*b.Yx + a.Xz*b.Zx
	m.Xy = a.Xx*b.Xy + a.Xy*b.Yy + a.Xz*b.Zy
	m.Xz = a.Xx*b.Xz + a.Xy*b.Yz + a.Xz*b.Zz
	m.Yx = a.Yx*b.Xx + a.Yy*b.Yx + a.Yz*b.Zx
	m.Yy = a.Yx*b.Xy + a.Yy*b.Yy + a.Yz*b.Zy
	m.Yz = a.Yx*b.Xz + a.Yy*b.Yz + a.Yz*b.Zz
	m.Zx = a.Zx*b.Xx + a.Zy*b.Yx + a.Zz*b.Zx
	m.Zy = a.Zx*b.Xy + a.Zy*b.Yy + a.Zz*b.Zy
	m.Zz = a.Zx*b.Xz + a.Zy*b.Yz + a.Zz*b.Zz
	return m
}

// RotX sets m to a rotation of deg degrees around the X axis.
func (m *M3) RotX(deg float64) *M3 {
	s, c := math.Sincos(Rad(deg))
	m.Xx, m.Xy, m.Xz = 1, 0, 0
	m.Yx, m.Yy, m.Yz = 0, c, -s
	m.Zx, m.Zy, m.Zz = 0, s, c
	return m
}

// RotY sets m to a rotation of deg degrees around the Y axis.
func (m *M3) RotY(deg float64) *M3 {
	s, c := math.Sincos(Rad(deg))
	m.Xx, m.Xy, m.Xz = c, 0, s
	m.Yx, m.Yy, m.Yz = 0, 1, 0
	m.Zx, m.Zy, m.Zz = -s, 0, c
	return m
}

// RotZ sets m to a rotation of deg degrees around the Z axis.
func (m *M3) RotZ(deg float64) *M3 {
	s, c := math.Sincos(Rad(deg))
	m.Xx, m.Xy, m.Xz = c, -s, 0
	m.Yx, m.Yy, m.Yz = s, c, 0
	m.Zx, m.Zy, m.Zz = 0, 0, 1
	return m
}

// NewM3I creates a new identity M3 matrix.
func NewM3I() *M3 { return &M3{Xx: 1, Yy: 1, Zz: 1} }

// RotationXYZ composes the matrix Rz*Ry*Rx for the given Euler angles in
// degrees. This is the rotation order used to orient a camera.
func RotationXYZ(rx, ry, rz float64) *M3 {
	x, y, z := NewM3I().RotX(rx), NewM3I().RotY(ry), NewM3I().RotZ(rz)
	return NewM3I().Mult(z, NewM3I().Mult(y, x))
}
