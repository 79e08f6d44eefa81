// Copyright © 2024 Galvanized Logic Inc.

package raytrace

import (
	"github.com/lumenray/raytrace/math/lin"
)

// Color is an RGB color in linear space, reusing the Vec3 mutator-style
// arithmetic (Add/Mult/Scale write into the receiver) since shading sums
// and attenuates colors the same way it sums and scales positions.
type Color = lin.V3

// NewColor builds a Color from three components.
func NewColor(r, g, b float64) Color { return Color{X: r, Y: g, Z: b} }
