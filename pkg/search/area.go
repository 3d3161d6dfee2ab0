// Package search narrows the set of canvas authors down to the ones
// whose activity matches a set of user-supplied search areas.
package search

import (
	"time"

	"github.com/canvaslab/placetrace/pkg/canvas"
	"github.com/canvaslab/placetrace/pkg/geometry"
)

// Area is one user-defined search constraint: a rectangle, an optional
// time window, an optional color allow-set, and whether a candidate is
// required to have touched it. Read-only after configuration load.
type Area struct {
	Region geometry.Rect

	// Start and End bound the event time window; the zero value means
	// unbounded on that side.
	Start time.Time
	End   time.Time

	// Colors is an allow-set; empty means any color matches.
	Colors map[string]bool

	// Optional areas contribute matches but are not required of a
	// candidate during reduction.
	Optional bool
}

// Matches reports whether rec satisfies the area: time window first,
// then color, then the spatial check dispatched on the placement
// shape. The checks are conjunctive and short-circuit.
func (a Area) Matches(rec *canvas.Record) bool {
	if !a.Start.IsZero() && rec.Time.Before(a.Start) {
		return false
	}
	if !a.End.IsZero() && rec.Time.After(a.End) {
		return false
	}
	if len(a.Colors) > 0 && !a.Colors[rec.Color] {
		return false
	}
	return a.ContainsPlacement(rec.Placement)
}

// ContainsPlacement is the spatial check alone. The exclusion pass
// uses it directly: an author is evicted for activity outside every
// area's region regardless of time windows and colors.
func (a Area) ContainsPlacement(p canvas.Placement) bool {
	switch v := p.(type) {
	case canvas.PointPlacement:
		return a.Region.Contains(geometry.Point(v))
	case canvas.RectPlacement:
		return a.Region.Intersects(geometry.Rect(v))
	case canvas.CirclePlacement:
		return geometry.Circle(v).Intersects(a.Region)
	default:
		return false
	}
}
