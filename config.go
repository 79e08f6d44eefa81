// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package raytrace

// config.go reduces the Scene construction API footprint using functional
// options. See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//      https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html

import (
	"math"

	"github.com/lumenray/raytrace/math/lin"
)

// Options holds the render settings plumbed through the scene. It is not
// modified while Render runs, avoiding module-level mutable state that
// would otherwise need its own synchronization in the parallel render path.
type Options struct {
	width, height int     // framebuffer dimensions in pixels.
	fov           float64 // vertical field of view, degrees.
	bias          float64 // self-intersection epsilon.
	maxRayDepth   int     // recursion cap for castRay.
	nWorkers      int     // render worker count.
	background    Color   // skybox-less background color.
	acPenalty     int     // BVH leaf threshold (LEAF_MIN equivalent override).
}

// optionDefaults provides reasonable defaults so a scene renders even if
// no option attributes are set.
var optionDefaults = Options{
	width:       800,
	height:      450,
	fov:         60,
	bias:        1e-4,
	maxRayDepth: 5,
	nWorkers:    1,
	background:  Color{X: 0, Y: 0, Z: 0},
	acPenalty:   10,
}

// Attr defines optional scene attributes used to configure the renderer.
//
//	sc := raytrace.NewScene(cam, objects, lights,
//	   raytrace.Size(800, 450),
//	   raytrace.FOV(60),
//	   raytrace.Workers(4),
//	)
type Attr func(*Options)

// Size sets the output image width and height in pixels.
func Size(w, h int) Attr {
	return func(o *Options) {
		if w > 0 {
			o.width = w
		}
		if h > 0 {
			o.height = h
		}
	}
}

// FOV sets the vertical field of view in degrees.
func FOV(degrees float64) Attr {
	return func(o *Options) {
		if degrees > 0 && degrees < 180 {
			o.fov = degrees
		}
	}
}

// Bias sets the shadow/reflection self-intersection epsilon.
func Bias(b float64) Attr {
	return func(o *Options) {
		if b >= 0 {
			o.bias = b
		}
	}
}

// MaxRayDepth sets the recursion cap for reflective/refractive rays.
func MaxRayDepth(depth int) Attr {
	return func(o *Options) {
		if depth >= 0 {
			o.maxRayDepth = depth
		}
	}
}

// Workers sets the number of render worker goroutines. A count below 1
// is ignored and leaves the current count (1 by default) in place.
func Workers(n int) Attr {
	return func(o *Options) {
		if n > 0 {
			o.nWorkers = n
		}
	}
}

// Background sets the flat background color used when no skybox is set.
func Background(c Color) Attr {
	return func(o *Options) { o.background = c }
}

// AcPenalty records the BVH leaf-threshold tuning knob in Options. Nothing
// reads it back from Options: a mesh's BVH is built by NewMesh, before
// NewScene applies attrs, from the leafMin argument NewMesh is given, so
// this attr does not change the BVH of any mesh.
func AcPenalty(p int) Attr {
	return func(o *Options) {
		if p > 0 {
			o.acPenalty = p
		}
	}
}

// Dimensions returns the configured framebuffer width and height, for
// callers (the CLI, image encoders) outside the package that need to size
// an output buffer without reaching into Options' unexported fields.
func (o *Options) Dimensions() (width, height int) { return o.width, o.height }

// Apply returns o with each attr applied on top, in order. This lets a
// caller layer an optional override set (a YAML render profile) onto an
// already-built Options value without discarding whatever produced it
// (a scene file's own [options] block).
func (o Options) Apply(attrs ...Attr) Options {
	for _, a := range attrs {
		a(&o)
	}
	return o
}

// aspect returns width/height as a float64.
func (o *Options) aspect() float64 { return float64(o.width) / float64(o.height) }

// scale returns tan(fov/2), the per-pixel projection scale factor.
func (o *Options) scale() float64 {
	return math.Tan(lin.Rad(o.fov) / 2)
}
