// Copyright © 2014-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
	"github.com/lumenray/raytrace/physics"
)

// LightKind discriminates the light variants.
type LightKind int

const (
	DistantLight LightKind = iota
	PointLight
	AreaLight
)

// Light is a tagged variant over {Distant, Point, Area}, matching the
// object tagged-variant design: a small capability set instead of a
// light class hierarchy.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64

	Dir lin.V3 // DistantLight
	Pos lin.V3 // PointLight, AreaLight

	I, J        lin.V3 // AreaLight spanning vectors
	BaseSamples int    // AreaLight basePoints grid side length
	Samples     int    // AreaLight points grid side length

	points     []lin.V3 // samples x samples grid, built by NewAreaLight.
	basePoints []lin.V3 // baseSamples x baseSamples grid over the same quad; its points are points of the full grid only when baseSamples == samples.
}

// NewDistantLight creates a light that shines uniformly from direction dir.
func NewDistantLight(dir lin.V3, color Color, intensity float64) *Light {
	dir.Unit()
	return &Light{Kind: DistantLight, Dir: dir, Color: color, Intensity: intensity}
}

// NewPointLight creates an omnidirectional light at pos.
func NewPointLight(pos lin.V3, color Color, intensity float64) *Light {
	return &Light{Kind: PointLight, Pos: pos, Color: color, Intensity: intensity}
}

// NewAreaLight creates a quad light spanned by i and j from pos, and
// pre-generates its sample grids.
func NewAreaLight(pos, i, j lin.V3, color Color, intensity float64, baseSamples, samples int) *Light {
	if baseSamples < 1 {
		baseSamples = 1
	}
	if samples < baseSamples {
		samples = baseSamples
	}
	l := &Light{
		Kind: AreaLight, Pos: pos, I: i, J: j, Color: color, Intensity: intensity,
		BaseSamples: baseSamples, Samples: samples,
	}
	l.points = samplePoints(pos, i, j, samples)
	l.basePoints = samplePoints(pos, i, j, baseSamples)
	return l
}

// samplePoints builds an n x n evenly spaced grid across the quad
// pos + i*u + j*v for u,v in [0,1].
func samplePoints(pos, i, j lin.V3, n int) []lin.V3 {
	pts := make([]lin.V3, 0, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			u := (float64(a) + 0.5) / float64(n)
			v := (float64(b) + 0.5) / float64(n)
			p := lin.V3{}
			iu, jv := i, j
			iu.Scale(&iu, u)
			jv.Scale(&jv, v)
			p.Add(&pos, &iu)
			p.Add(&p, &jv)
			pts = append(pts, p)
		}
	}
	return pts
}

// getTotalIlluminance implements spec.md §4.6's area-light sampling with
// the corrected early-out bookkeeping from §9's design note: explicit
// allVisible/allOccluded/mixed flags instead of a single early-break on
// visibility change, which is subtle enough to get wrong silently.
func (l *Light) getTotalIlluminance(p, n lin.V3, objects []*Object) float64 {
	distSqr := p.DistSqr(&l.Pos)
	falloff := 4 * math.Pi * distSqr / 1000
	luminance := l.Intensity / falloff
	if luminance > 1 {
		luminance = 1
	}

	allVisible, allOccluded, mixed := true, true, false
	visBase := make([]bool, len(l.basePoints))
	for i, q := range l.basePoints {
		vis := pointVisible(p, q, objects)
		visBase[i] = vis
		if vis {
			allOccluded = false
		} else {
			allVisible = false
		}
		if i > 0 && visBase[i] != visBase[i-1] {
			mixed = true
			break
		}
	}

	if !mixed {
		if allOccluded {
			return 0
		}
		if allVisible {
			sum := 0.0
			for _, q := range l.basePoints {
				sum += lightCosine(p, q, n)
			}
			return luminance * sum / float64(len(l.basePoints))
		}
	}

	sum := 0.0
	for _, q := range l.points {
		if pointVisible(p, q, objects) {
			sum += lightCosine(p, q, n)
		}
	}
	return luminance * sum / float64(len(l.points))
}

// pointVisible casts a shadow ray from p toward q, capping tNear at the
// distance to q so a hit beyond the light itself does not occlude.
func pointVisible(p, q lin.V3, objects []*Object) bool {
	dir := lin.V3{}
	dir.Sub(&q, &p)
	dist := dir.Len()
	if dist < lin.Epsilon {
		return true
	}
	r := physics.NewRay(p, dir, physics.Shadow)
	info := trace(&r, objects)
	return info.hitObject == nil || info.tNear >= dist-1e-6
}

// lightCosine returns max(0, n·(-lightDir)), where lightDir is the
// direction light travels from q to p (so -lightDir is the shadow ray
// direction from p toward q), i.e. the light's geometric contribution
// ignoring visibility.
func lightCosine(p, q, n lin.V3) float64 {
	dir := lin.V3{}
	dir.Sub(&q, &p)
	dir.Unit()
	c := n.Dot(&dir)
	if c < 0 {
		return 0
	}
	return c
}
