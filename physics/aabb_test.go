// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	"testing"

	"github.com/lumenray/raytrace/math/lin"
)

func TestAABBExtend(t *testing.T) {
	box := EmptyAABB()
	p1 := lin.V3{X: -1, Y: 2, Z: 0}
	p2 := lin.V3{X: 3, Y: -4, Z: 5}
	box.Extend(&p1)
	box.Extend(&p2)
	if box.Min.X != -1 || box.Min.Y != -4 || box.Min.Z != 0 {
		t.Errorf("unexpected min %+v", box.Min)
	}
	if box.Max.X != 3 || box.Max.Y != 2 || box.Max.Z != 5 {
		t.Errorf("unexpected max %+v", box.Max)
	}
}

func TestAABBLongestAxis(t *testing.T) {
	tests := []struct {
		box  AABB
		want int
	}{
		{AABB{Min: lin.V3{}, Max: lin.V3{X: 10, Y: 1, Z: 1}}, 0},
		{AABB{Min: lin.V3{}, Max: lin.V3{X: 1, Y: 10, Z: 1}}, 1},
		{AABB{Min: lin.V3{}, Max: lin.V3{X: 1, Y: 1, Z: 10}}, 2},
		{AABB{Min: lin.V3{}, Max: lin.V3{X: 5, Y: 5, Z: 5}}, 0}, // tie breaks to x.
	}
	for _, tt := range tests {
		if got := tt.box.LongestAxis(); got != tt.want {
			t.Errorf("LongestAxis(%+v) = %d, want %d", tt.box, got, tt.want)
		}
	}
}

func TestIntersectAABBHit(t *testing.T) {
	box := AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if !IntersectAABB(&box, &r) {
		t.Error("expected hit")
	}
}

func TestIntersectAABBMiss(t *testing.T) {
	box := AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	r := NewRay(lin.V3{X: 10, Y: 10, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if IntersectAABB(&box, &r) {
		t.Error("expected miss")
	}
}

func TestIntersectAABBAxisAlignedRay(t *testing.T) {
	// a ray whose direction has a zero component must rely on IEEE
	// infinities from the 1/0 division, not a divide-by-zero panic.
	box := AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if !IntersectAABB(&box, &r) {
		t.Error("expected hit for axis-aligned ray")
	}
	miss := NewRay(lin.V3{X: 5, Y: 5, Z: 5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if IntersectAABB(&box, &miss) {
		t.Error("expected miss for axis-aligned ray outside the box's other slabs")
	}
}

func TestIntersectAABBBehindRay(t *testing.T) {
	box := AABB{Min: lin.V3{X: -1, Y: -1, Z: -1}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	r := NewRay(lin.V3{X: 0, Y: 0, Z: -5}, lin.V3{X: 0, Y: 0, Z: -1}, Primary)
	if IntersectAABB(&box, &r) {
		t.Error("expected miss for a box entirely behind the ray origin")
	}
}
