// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"

	"github.com/lumenray/raytrace/math/lin"
)

func TestIntersectSphereHit(t *testing.T) {
	c := lin.V3{X: 0, Y: 0, Z: 0}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	hit, t0 := IntersectSphere(c, 1, &r)
	if !hit || !lin.Aeq(t0, 4) {
		t.Errorf("expected hit at t=4, got hit=%t t=%f", hit, t0)
	}
}

func TestIntersectSphereMiss(t *testing.T) {
	c := lin.V3{X: 10, Y: 10, Z: 0}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if hit, _ := IntersectSphere(c, 1, &r); hit {
		t.Error("expected miss")
	}
}

func TestIntersectSphereOriginInside(t *testing.T) {
	c := lin.V3{X: 0, Y: 0, Z: 0}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	hit, t0 := IntersectSphere(c, 1, &r)
	if !hit || !lin.Aeq(t0, 1) {
		t.Errorf("expected hit at far intersection t=1, got hit=%t t=%f", hit, t0)
	}
}

func TestIntersectSphereBehindRay(t *testing.T) {
	c := lin.V3{X: 0, Y: 0, Z: -10}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1}, Primary)
	if hit, _ := IntersectSphere(c, 1, &r); hit {
		t.Error("expected miss for a sphere entirely behind the ray")
	}
}
