// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package raytrace

import "sync/atomic"

// Scene owns all objects, lights, the camera, the skybox, and render
// options. Meshes (owned by their Object) own their triangles and BVH
// root; BVH nodes own their children — a strict tree, no cycles. Callers
// may still set Sky or Options after NewScene; Scene and everything it
// owns is read-only while Render runs, so workers share it without
// synchronization.
type Scene struct {
	Camera  *Camera
	Objects []*Object
	Lights  []*Light
	Sky     *Skybox
	Options Options
	Stats   *Stats

	finishedPixels  int64
	finishedWorkers int64
}

// NewScene builds a scene from a camera, objects, and lights, applying
// Attr overrides on top of optionDefaults and finalizing the camera's
// rotation matrix before any render worker can observe it.
func NewScene(cam *Camera, objects []*Object, lights []*Light, attrs ...Attr) *Scene {
	opts := optionDefaults
	for _, a := range attrs {
		a(&opts)
	}
	cam.finalize()
	return &Scene{Camera: cam, Objects: objects, Lights: lights, Options: opts, Stats: &Stats{}}
}

// totalPixels returns the framebuffer's pixel count.
func (sc *Scene) totalPixels() int { return sc.Options.width * sc.Options.height }

func (sc *Scene) addFinishedPixels(n int64) {
	atomic.AddInt64(&sc.finishedPixels, n)
}

func (sc *Scene) finishedPixelCount() int64 { return atomic.LoadInt64(&sc.finishedPixels) }

func (sc *Scene) workerDone() { atomic.AddInt64(&sc.finishedWorkers, 1) }

func (sc *Scene) finishedWorkerCount() int64 { return atomic.LoadInt64(&sc.finishedWorkers) }
