package geometry

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/cgmdust/internal/conv"
)

// leafSize is the range length below which a subtree is scanned linearly.
const leafSize = 8

var (
	// ErrLengthMismatch is returned when coordinate slices differ in length.
	ErrLengthMismatch = errors.New("geometry: coordinate length mismatch")

	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("geometry: non-finite coordinate")
)

// KDTree is an immutable 2D k-d tree over a snapshot of positions.
// It is safe for concurrent queries.
//
// The tree is stored implicitly: for a range [lo, hi) the median element at
// (lo+hi)/2 is the splitting node, [lo, mid) is its left subtree and
// (mid, hi) its right subtree.
type KDTree struct {
	xs, ys []float64 // coordinates in tree order
	ids    []uint32  // original index of each tree slot
	axes   []uint8   // split axis of the node stored at each slot
}

// NewKDTree builds a tree over the points (x[i], y[i]). The input slices are
// not retained.
func NewKDTree(x, y []float64) (*KDTree, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(x), len(y))
	}
	if _, err := conv.IntToUint32(len(x)); err != nil {
		return nil, fmt.Errorf("geometry: too many points: %w", err)
	}

	n := len(x)
	pts := make([]point, n)
	for i := range n {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("%w: point %d (%v, %v)", ErrNonFinite, i, x[i], y[i])
		}
		pts[i] = point{x: x[i], y: y[i], id: uint32(i)}
	}

	t := &KDTree{
		xs:   make([]float64, n),
		ys:   make([]float64, n),
		ids:  make([]uint32, n),
		axes: make([]uint8, n),
	}
	t.build(pts, 0)
	for i, p := range pts {
		t.xs[i] = p.x
		t.ys[i] = p.y
		t.ids[i] = p.id
	}
	return t, nil
}

type point struct {
	x, y float64
	id   uint32
}

func (p point) coord(axis uint8) float64 {
	if axis == 0 {
		return p.x
	}
	return p.y
}

// build orders pts in place so that every range follows the implicit layout.
// offset is the position of pts[0] in the full slot array.
func (t *KDTree) build(pts []point, offset int) {
	if len(pts) <= leafSize {
		return
	}

	// Split on the axis with the larger spread.
	minX, maxX := pts[0].x, pts[0].x
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	var axis uint8
	if maxY-minY > maxX-minX {
		axis = 1
	}

	slices.SortFunc(pts, func(a, b point) int {
		ca, cb := a.coord(axis), b.coord(axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return cmp.Compare(a.id, b.id)
		}
	})

	mid := len(pts) / 2
	t.axes[offset+mid] = axis
	t.build(pts[:mid], offset)
	t.build(pts[mid+1:], offset+mid+1)
}

// Len returns the number of indexed points.
func (t *KDTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

// Radius returns the original indices of all points whose Separation from
// (x, y) is <= r, in ascending order. A negative or NaN radius matches nothing.
func (t *KDTree) Radius(x, y, r float64) []uint32 {
	return t.AppendRadius(nil, x, y, r)
}

// AppendRadius is like Radius but appends to dst. Only the appended part is
// sorted.
func (t *KDTree) AppendRadius(dst []uint32, x, y, r float64) []uint32 {
	if t.Len() == 0 || !(r >= 0) {
		return dst
	}
	start := len(dst)
	dst = t.search(dst, 0, len(t.ids), x, y, r)
	slices.Sort(dst[start:])
	return dst
}

func (t *KDTree) search(dst []uint32, lo, hi int, x, y, r float64) []uint32 {
	if hi-lo <= leafSize {
		for i := lo; i < hi; i++ {
			if Separation(x, y, t.xs[i], t.ys[i]) <= r {
				dst = append(dst, t.ids[i])
			}
		}
		return dst
	}

	mid := (lo + hi) / 2
	if Separation(x, y, t.xs[mid], t.ys[mid]) <= r {
		dst = append(dst, t.ids[mid])
	}

	var d float64
	if t.axes[mid] == 0 {
		d = x - t.xs[mid]
	} else {
		d = y - t.ys[mid]
	}

	// Points left of the split have coord <= split, right have coord >= split.
	if d <= r {
		dst = t.search(dst, lo, mid, x, y, r)
	}
	if -d <= r {
		dst = t.search(dst, mid+1, hi, x, y, r)
	}
	return dst
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
