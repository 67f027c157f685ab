// Package octree implements MiniLight's SpatialIndex: an octree that
// bounds the eye point and every triangle, then answers nearest-hit
// queries via a grid walk that visits only the subcells a ray actually
// crosses.
//
// The tree shape is grounded on the teacher's pkg/core/bvh.go (a
// tagged-variant node: either child pointers or a flat leaf list, built
// recursively and owned value-wise by its parent); the branching factor,
// split rule and traversal are MiniLight's own.
package octree

import (
	"math"

	"github.com/hxa7241/minilight/pkg/core"
	"github.com/hxa7241/minilight/pkg/geometry"
)

const (
	maxItems  = 8
	maxLevels = 44
)

// Hit is a nearest-intersection result: the triangle hit and the world
// point on it.
type Hit struct {
	Triangle *geometry.Triangle
	Point    core.Vec3
}

// cell is one octree node: either a leaf holding a flat item list, or a
// branch holding up to eight child cells (nil entries are absent).
type cell struct {
	lo, hi   core.Vec3
	isLeaf   bool
	children [8]*cell
	items    []*geometry.Triangle
}

// SpatialIndex bounds the eye and a set of triangles and answers
// nearest-hit ray queries against them.
type SpatialIndex struct {
	root *cell
}

// Build constructs a SpatialIndex over items, with the root cubified to
// envelop both eye and every item's (already-inflated) bound.
func Build(eye core.Vec3, items []*geometry.Triangle) *SpatialIndex {
	lo, hi := eye, eye
	for _, it := range items {
		itLo, itHi := it.Bound()
		lo = lo.Min(itLo)
		hi = hi.Max(itHi)
	}
	lo, hi = cubify(lo, hi)
	return &SpatialIndex{root: build(lo, hi, items, 0)}
}

// cubify expands a rectangular bound into a cube of side equal to its
// longest dimension, anchored at the lower corner.
func cubify(lo, hi core.Vec3) (core.Vec3, core.Vec3) {
	size := hi.Subtract(lo)
	side := math.Max(size.X, math.Max(size.Y, size.Z))
	return lo, lo.Add(core.NewVec3(side, side, side))
}

// build recursively partitions items into an octree cell, curtailing
// degenerate subdivision per the construction rule in §4.2.
func build(lo, hi core.Vec3, items []*geometry.Triangle, level int) *cell {
	if len(items) > maxItems && level < maxLevels-1 {
		mid := lo.Add(hi).Multiply(0.5)

		var subItems [8][]*geometry.Triangle
		for k := 0; k < 8; k++ {
			subLo, subHi := subcellBound(lo, hi, mid, k)
			for _, item := range items {
				itLo, itHi := item.Bound()
				if overlaps(itLo, itHi, subLo, subHi) {
					subItems[k] = append(subItems[k], item)
				}
			}
		}

		q1 := 0
		for k := 0; k < 8; k++ {
			if len(subItems[k]) == len(items) {
				q1++
			}
		}

		c := &cell{lo: lo, hi: hi}
		for k := 0; k < 8; k++ {
			if len(subItems[k]) == 0 {
				continue
			}
			subLo, subHi := subcellBound(lo, hi, mid, k)
			q2 := subHi.X-subLo.X < 4*core.TOLERANCE
			childLevel := level + 1
			if q1 > 1 || q2 {
				childLevel = maxLevels
			}
			c.children[k] = build(subLo, subHi, subItems[k], childLevel)
		}
		return c
	}

	return &cell{lo: lo, hi: hi, isLeaf: true, items: items}
}

// subcellBound computes the bound of octree child k (bit m of k selects
// the high half of cell [lo,hi] on axis m).
func subcellBound(lo, hi, mid core.Vec3, k int) (core.Vec3, core.Vec3) {
	var subLo, subHi [3]float64
	loArr := [3]float64{lo.X, lo.Y, lo.Z}
	hiArr := [3]float64{hi.X, hi.Y, hi.Z}
	midArr := [3]float64{mid.X, mid.Y, mid.Z}
	for axis := 0; axis < 3; axis++ {
		if (k>>axis)&1 == 1 {
			subLo[axis] = midArr[axis]
			subHi[axis] = hiArr[axis]
		} else {
			subLo[axis] = loArr[axis]
			subHi[axis] = midArr[axis]
		}
	}
	return core.NewVec3(subLo[0], subLo[1], subLo[2]), core.NewVec3(subHi[0], subHi[1], subHi[2])
}

// overlaps reports whether two axis-aligned bounds intersect on every
// axis.
func overlaps(aLo, aHi, bLo, bHi core.Vec3) bool {
	return aLo.X <= bHi.X && aHi.X >= bLo.X &&
		aLo.Y <= bHi.Y && aHi.Y >= bLo.Y &&
		aLo.Z <= bHi.Z && aHi.Z >= bLo.Z
}

// Intersection returns the nearest triangle hit by the ray from origin in
// direction, excluding lastHit (by identity, to avoid self-intersection),
// or (nil, false) on a miss.
func (si *SpatialIndex) Intersection(origin, direction core.Vec3, lastHit *geometry.Triangle) (*Hit, bool) {
	return intersectCell(si.root, origin, direction, lastHit, origin)
}

func intersectCell(c *cell, origin, direction core.Vec3, lastHit *geometry.Triangle, start core.Vec3) (*Hit, bool) {
	if c.isLeaf {
		return intersectLeaf(c, origin, direction, lastHit)
	}
	return intersectBranch(c, origin, direction, lastHit, start)
}

func intersectLeaf(c *cell, origin, direction core.Vec3, lastHit *geometry.Triangle) (*Hit, bool) {
	var best *Hit
	bestT := math.Inf(1)

	for _, tri := range c.items {
		if tri == lastHit {
			continue
		}
		t, ok := tri.Intersection(origin, direction)
		if !ok || t >= bestT {
			continue
		}
		hitPoint := origin.Add(direction.Multiply(t))
		if !withinBound(hitPoint, c.lo, c.hi) {
			continue
		}
		bestT = t
		best = &Hit{Triangle: tri, Point: hitPoint}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

func withinBound(p, lo, hi core.Vec3) bool {
	return p.X >= lo.X-core.TOLERANCE && p.X <= hi.X+core.TOLERANCE &&
		p.Y >= lo.Y-core.TOLERANCE && p.Y <= hi.Y+core.TOLERANCE &&
		p.Z >= lo.Z-core.TOLERANCE && p.Z <= hi.Z+core.TOLERANCE
}

func axisOf(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// intersectBranch performs the grid walk: starting at the subcell
// containing start, it recurses into each subcell the ray passes through
// in crossing order until a hit is found or the ray leaves the cell.
func intersectBranch(c *cell, origin, direction core.Vec3, lastHit *geometry.Triangle, start core.Vec3) (*Hit, bool) {
	mid := c.lo.Add(c.hi).Multiply(0.5)

	k := 0
	for axis := 0; axis < 3; axis++ {
		if axisOf(start, axis) >= axisOf(mid, axis) {
			k |= 1 << axis
		}
	}

	for {
		if child := c.children[k]; child != nil {
			if hit, ok := intersectCell(child, origin, direction, lastHit, start); ok {
				return hit, true
			}
		}

		var s [3]float64
		for axis := 0; axis < 3; axis++ {
			high := (k>>axis)&1 == 1
			d := axisOf(direction, axis)
			var face float64
			if (d >= 0) == high {
				if high {
					face = axisOf(c.hi, axis)
				} else {
					face = axisOf(c.lo, axis)
				}
			} else {
				face = axisOf(mid, axis)
			}
			if d == 0 {
				s[axis] = math.Inf(1)
			} else {
				s[axis] = (face - axisOf(origin, axis)) / d
			}
		}

		a := 0
		for axis := 1; axis < 3; axis++ {
			if s[axis] < s[a] {
				a = axis
			}
		}

		highA := (k>>a)&1 == 1
		dA := axisOf(direction, a)
		if (dA < 0 && !highA) || (dA > 0 && highA) {
			return nil, false
		}

		k ^= 1 << a
		start = origin.Add(direction.Multiply(s[a]))
	}
}
