// Copyright © 2024 Galvanized Logic Inc.

package physics

import "sync/atomic"

// statsEnabled gates the hot-path counter increments below. Disabled by
// default so the ray-triangle loop and BVH traversal stay
// branch-predictor-friendly when nobody asked for the numbers.
var statsEnabled int32

var rayTriangleTests, accelBoxTests, raysCast int64

// EnableStats turns the package's hot-path counters on or off.
func EnableStats(on bool) {
	v := int32(0)
	if on {
		v = 1
	}
	atomic.StoreInt32(&statsEnabled, v)
}

// Counts returns the current (raysCast, rayTriangleTests, accelBoxTests).
func Counts() (rays, triangleTests, boxTests int64) {
	return atomic.LoadInt64(&raysCast), atomic.LoadInt64(&rayTriangleTests), atomic.LoadInt64(&accelBoxTests)
}

// CountRayCast records a ray entering trace/castRay. Called from the root
// package since that is where a "ray" as a unit of work originates.
func CountRayCast() {
	if atomic.LoadInt32(&statsEnabled) != 0 {
		atomic.AddInt64(&raysCast, 1)
	}
}

func countRayTriangleTest() {
	if atomic.LoadInt32(&statsEnabled) != 0 {
		atomic.AddInt64(&rayTriangleTests, 1)
	}
}

func countAccelBoxTest() {
	if atomic.LoadInt32(&statsEnabled) != 0 {
		atomic.AddInt64(&accelBoxTests, 1)
	}
}
