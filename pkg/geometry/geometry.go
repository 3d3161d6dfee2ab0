// Package geometry holds the integer canvas primitives used to match
// placements against search areas and to expand placements into tiles.
package geometry

import "math"

// Point is a single tile coordinate on the canvas grid.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle with inclusive bounds on all four
// edges. Callers must supply ordered bounds (Top <= Bottom and
// Left <= Right); predicates on an inverted rectangle silently return
// false rather than erroring.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Circle is a circular placement, as emitted by moderation tools in
// the newer datasets.
type Circle struct {
	X int
	Y int
	R int
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	if p.X < r.Left {
		return false
	}
	if p.Y < r.Top {
		return false
	}
	if p.X > r.Right {
		return false
	}
	if p.Y > r.Bottom {
		return false
	}
	return true
}

// corners returns the four corner points of r.
func (r Rect) corners() [4]Point {
	return [4]Point{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Left, r.Bottom},
		{r.Right, r.Bottom},
	}
}

// Intersects reports whether r and o overlap by checking whether any
// corner of either rectangle lies inside the other.
//
// This is a corner-sampling approximation, not a full separating-axis
// test: a thin rectangle crossing another only through its edge
// interior, with no corner inside either, is reported as
// non-intersecting. Historical matching results depend on this exact
// behaviour, so it is kept as-is.
func (r Rect) Intersects(o Rect) bool {
	for _, c := range o.corners() {
		if r.Contains(c) {
			return true
		}
	}
	for _, c := range r.corners() {
		if o.Contains(c) {
			return true
		}
	}
	return false
}

// Contains reports whether p lies strictly inside c. Points exactly on
// the boundary (distance == R) are excluded.
func (c Circle) Contains(p Point) bool {
	dx := p.X - c.X
	dy := p.Y - c.Y
	return dx*dx+dy*dy < c.R*c.R
}

// Intersects reports whether c and r overlap, checking the rectangle's
// four corners against the circle and the circle's four axis extremes
// against the rectangle. The same corner-sampling caveat as
// Rect.Intersects applies.
func (c Circle) Intersects(r Rect) bool {
	for _, p := range r.corners() {
		if c.Contains(p) {
			return true
		}
	}
	extremes := [4]Point{
		{c.X - c.R, c.Y},
		{c.X + c.R, c.Y},
		{c.X, c.Y - c.R},
		{c.X, c.Y + c.R},
	}
	for _, p := range extremes {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Rasterize expands c into the tiles it covers, scanline by scanline.
// For each scan line the half-width dx is the largest integer with
// dx^2 + dy^2 < R^2, and the tiles emitted are x in [X-dx, X+dx),
// half-open. The right boundary column is therefore excluded; which
// boundary tiles are included is part of the matching contract and
// must not change. The result is deterministic: rows ascend in y,
// tiles ascend in x, and no tile repeats.
func (c Circle) Rasterize() []Point {
	var points []Point
	for dy := -c.R; dy <= c.R; dy++ {
		rem := c.R*c.R - dy*dy
		if rem <= 0 {
			continue
		}
		dx := int(math.Sqrt(float64(rem)))
		for dx*dx >= rem {
			dx--
		}
		for x := c.X - dx; x < c.X+dx; x++ {
			points = append(points, Point{X: x, Y: c.Y + dy})
		}
	}
	return points
}
