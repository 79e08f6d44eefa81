// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

// MaterialKind discriminates how an object's surface responds to light.
type MaterialKind int

const (
	Diffuse MaterialKind = iota
	Phong
	Reflective
	Transparent
)

// PatternKind discriminates the surface color lookup.
type PatternKind int

const (
	Solid PatternKind = iota
	Chessboard
)

// Material is the shared surface attribute set every Object variant
// carries, matching spec.md §3's "common attributes" on the tagged
// Sphere/Plane/Mesh variant.
type Material struct {
	Color             Color
	Pattern           PatternKind
	Kind              MaterialKind
	IndexOfRefraction float64

	// Phong coefficients.
	Ambient          float64
	DiffuseCoeff     float64
	Specular         float64
	SpecularExponent float64
}

// pattern evaluates the material's surface pattern factor at texCoord,
// defaulting texCoord to (u,v) per spec.md §4.2. It is a scalar multiplier
// on top of mat.Color, not a color itself: spec.md §4.5's shading formula
// treats objectColor and pattern as separate factors.
func (m *Material) pattern(u, v float64) float64 {
	switch m.Pattern {
	case Chessboard:
		if (int(u*10)+int(v*10))%2 == 0 {
			return 0.2
		}
		return 1
	default:
		return 1
	}
}
