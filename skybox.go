// Copyright © 2024 Galvanized Logic Inc.

package raytrace

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
)

// SkyboxFace indexes the six cube faces in the fixed convention spec.md
// §4.7 requires: {left, front, right, back, top, bottom}.
type SkyboxFace int

const (
	FaceLeft SkyboxFace = iota
	FaceFront
	FaceRight
	FaceBack
	FaceTop
	FaceBottom
	numSkyboxFaces
)

// Skybox holds six equally sized face buffers of Vec3 pixels, sampled by
// ray direction when no scene object is hit.
type Skybox struct {
	Width, Height int
	Faces         [numSkyboxFaces][]Color
}

// NewSkybox allocates an empty skybox of the given face size.
func NewSkybox(width, height int) *Skybox {
	sb := &Skybox{Width: width, Height: height}
	for f := range sb.Faces {
		sb.Faces[f] = make([]Color, width*height)
	}
	return sb
}

// sample looks up the nearest-neighbor pixel for unit direction d: the
// axis of maximum magnitude selects the cube face, the other two
// components are projected onto that face and mapped from [-1,1] to
// [0,width) x [0,height).
func (sb *Skybox) sample(d lin.V3) Color {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	var face SkyboxFace
	var u, v float64

	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			face, u, v = FaceRight, -d.Z/ax, -d.Y/ax
		} else {
			face, u, v = FaceLeft, d.Z/ax, -d.Y/ax
		}
	case ay >= az:
		if d.Y > 0 {
			face, u, v = FaceTop, d.X/ay, d.Z/ay
		} else {
			face, u, v = FaceBottom, d.X/ay, -d.Z/ay
		}
	default:
		if d.Z > 0 {
			face, u, v = FaceFront, d.X/az, -d.Y/az
		} else {
			face, u, v = FaceBack, -d.X/az, -d.Y/az
		}
	}

	px := int((u + 1) * 0.5 * float64(sb.Width))
	py := int((v + 1) * 0.5 * float64(sb.Height))
	px = lin.ClampInt(px, 0, sb.Width-1)
	py = lin.ClampInt(py, 0, sb.Height-1)
	return sb.Faces[face][py*sb.Width+px]
}

// skybox samples the scene's skybox for direction d, falling back to the
// flat background color from Options when no skybox is set.
func (sc *Scene) skybox(d lin.V3) Color {
	if sc.Sky != nil {
		return sc.Sky.sample(d)
	}
	return sc.Options.background
}
