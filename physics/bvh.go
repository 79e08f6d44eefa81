// Copyright © 2024 Galvanized Logic Inc.

package physics

import "github.com/lumenray/raytrace/math/lin"

const (
	defaultLeafMin = 10 // below this triangle count, stop splitting, absent caller override.
	maxDepth       = 10 // nodes deeper than this become leaves.
)

// BVHNode is one node of a bounding volume hierarchy built over a mesh's
// triangles. Exactly one of Leaf or (Left, Right) is populated.
type BVHNode struct {
	Bounds AABB
	Depth  int
	Leaf   []int // indices into the owning mesh's triangle slice.
	Left   *BVHNode
	Right  *BVHNode
}

// BuildBVH builds a BVH over tris, indexed 0..len(tris)-1, using the
// default leaf-count threshold. It is deliberately simple: no SAH, no
// stack-ordered traversal, straddling triangles are referenced by both
// children.
func BuildBVH(tris []Triangle) *BVHNode {
	return BuildBVHLeafMin(tris, defaultLeafMin)
}

// BuildBVHLeafMin builds a BVH over tris like BuildBVH, but with leafMin
// (spec.md §3's acPenalty) as the triangle-count threshold below which a
// node stops splitting and becomes a leaf. leafMin <= 0 falls back to the
// default.
func BuildBVHLeafMin(tris []Triangle, leafMin int) *BVHNode {
	if leafMin <= 0 {
		leafMin = defaultLeafMin
	}
	idx := make([]int, len(tris))
	for i := range tris {
		idx[i] = i
	}
	bounds := boundsOf(tris, idx)
	return buildNode(tris, idx, 0, bounds, leafMin)
}

// buildNode splits idx using the node's own bounds (passed in, not
// recomputed from the root) so each split narrows correctly as the tree
// deepens.
func buildNode(tris []Triangle, idx []int, depth int, bounds AABB, leafMin int) *BVHNode {
	node := &BVHNode{Bounds: bounds, Depth: depth}

	if len(idx) < leafMin || depth > maxDepth {
		node.Leaf = idx
		return node
	}

	axis := bounds.LongestAxis()
	split := splitPosition(tris, idx, axis)

	var leftIdx, rightIdx []int
	for _, i := range idx {
		lo, hi := triangleExtent(&tris[i], axis)
		if lo <= split {
			leftIdx = append(leftIdx, i)
		}
		if hi >= split {
			rightIdx = append(rightIdx, i)
		}
	}

	// A degenerate split (every triangle straddling, or all triangles on
	// one side) would recurse forever on an unchanged index set; fall
	// back to a leaf instead.
	if len(leftIdx) == 0 || len(rightIdx) == 0 || (len(leftIdx) == len(idx) && len(rightIdx) == len(idx)) {
		node.Leaf = idx
		return node
	}

	leftBounds, rightBounds := bounds, bounds
	clipMax(&leftBounds, axis, split)
	clipMin(&rightBounds, axis, split)

	node.Left = buildNode(tris, leftIdx, depth+1, leftBounds, leafMin)
	node.Right = buildNode(tris, rightIdx, depth+1, rightBounds, leafMin)
	return node
}

func boundsOf(tris []Triangle, idx []int) AABB {
	bounds := EmptyAABB()
	for _, i := range idx {
		b := tris[i].Bounds()
		bounds.Extend(&b.Min)
		bounds.Extend(&b.Max)
	}
	return bounds
}

// splitPosition is the mean of the chosen axis's vertex coordinates across
// all triangles in idx, computed from the current node's triangle set so
// that each split narrows correctly as the tree deepens.
func splitPosition(tris []Triangle, idx []int, axis int) float64 {
	sum := 0.0
	for _, i := range idx {
		t := &tris[i]
		sum += axisCoord(&t.A, axis) + axisCoord(&t.B, axis) + axisCoord(&t.C, axis)
	}
	return sum / (3 * float64(len(idx)))
}

func triangleExtent(t *Triangle, axis int) (lo, hi float64) {
	a, b, c := axisCoord(&t.A, axis), axisCoord(&t.B, axis), axisCoord(&t.C, axis)
	lo, hi = a, a
	if b < lo {
		lo = b
	}
	if b > hi {
		hi = b
	}
	if c < lo {
		lo = c
	}
	if c > hi {
		hi = c
	}
	return lo, hi
}

func axisCoord(v *lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func clipMax(b *AABB, axis int, v float64) {
	switch axis {
	case 0:
		b.Max.X = v
	case 1:
		b.Max.Y = v
	default:
		b.Max.Z = v
	}
}

func clipMin(b *AABB, axis int, v float64) {
	switch axis {
	case 0:
		b.Min.X = v
	case 1:
		b.Min.Y = v
	default:
		b.Min.Z = v
	}
}

// IntersectBVH walks the tree rooted at n, keeping the nearest hit across
// both children with no distance-based pruning: a box miss stops descent,
// a box hit always visits both children. cullBackface forwards to the
// triangle test. tris is the owning mesh's triangle slice, indexed by the
// leaf indices stored at build time.
func IntersectBVH(n *BVHNode, tris []Triangle, r *Ray, cullBackface bool) (hit bool, t float64, triIdx int, u, v float64) {
	if n == nil || !IntersectAABB(&n.Bounds, r) {
		return false, 0, -1, 0, 0
	}

	if n.Leaf != nil {
		best := -1
		bestT, bestU, bestV := 0.0, 0.0, 0.0
		for _, i := range n.Leaf {
			h, tt, uu, vv := IntersectTriangle(&tris[i], r, cullBackface)
			if h && (best == -1 || tt < bestT) {
				best, bestT, bestU, bestV = i, tt, uu, vv
			}
		}
		return best != -1, bestT, best, bestU, bestV
	}

	lh, lt, li, lu, lv := IntersectBVH(n.Left, tris, r, cullBackface)
	rh, rt, ri, ru, rv := IntersectBVH(n.Right, tris, r, cullBackface)
	switch {
	case lh && rh:
		if lt <= rt {
			return true, lt, li, lu, lv
		}
		return true, rt, ri, ru, rv
	case lh:
		return true, lt, li, lu, lv
	case rh:
		return true, rt, ri, ru, rv
	default:
		return false, 0, -1, 0, 0
	}
}
