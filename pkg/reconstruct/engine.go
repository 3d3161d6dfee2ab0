// Package reconstruct replays a canvas-history log for one author and
// works out which of their tiles were still standing at two points in
// time: just before the whiteout checkpoint, and at the end of the log.
package reconstruct

import (
	"github.com/canvaslab/placetrace/pkg/canvas"
	"github.com/canvaslab/placetrace/pkg/geometry"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or
// any other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Result is the reconstruction output for one author.
type Result struct {
	// Placements counts the author's placement events, not the tiles
	// they expanded to.
	Placements int

	// Checkpoint maps each tile the author still owned just before
	// the whiteout to the color they placed there.
	Checkpoint map[geometry.Point]string

	// Final maps each tile the author still owned at end of log to
	// the raw timestamp of the placement that put it there.
	Final map[geometry.Point]string
}

// Engine replays the log for one target author. The pass is strictly
// sequential: every step's effect depends on all prior state, so this
// cannot be sharded the way the candidate scan can.
type Engine struct {
	User string

	// Checkpoint is the whiteout line number. Line numbers start at 1
	// on the first line after the CSV header.
	Checkpoint int

	Log Logger // optional; nil = no logging
}

// Run walks the log once in file order, applying last-writer-wins per
// tile: a later event by another author erases the target's claim to
// every tile it covers, and a later event by the target re-establishes
// it. Malformed lines are logged and skipped.
func (e *Engine) Run(path string, era canvas.Era) (*Result, error) {
	log := e.Log
	if log == nil {
		log = nopLogger{}
	}

	res := &Result{
		Checkpoint: make(map[geometry.Point]string),
		Final:      make(map[geometry.Point]string),
	}
	reached := false

	err := canvas.EachLine(path, func(lineNo int, line string) {
		// The flag flips before the line's content is processed, so
		// the event at the checkpoint line itself no longer updates
		// the checkpoint snapshot.
		if lineNo == e.Checkpoint {
			reached = true
		}

		rec, perr := canvas.ParseLine(line, era)
		if perr != nil {
			log.Warnf("Malformed line in data: %s", line)
			return
		}

		tiles := Expand(rec.Placement)
		if rec.User == e.User {
			res.Placements++
			log.Debugf("Found %s placement at line %d", rec.Color, lineNo)
			for _, tile := range tiles {
				if !reached {
					res.Checkpoint[tile] = rec.Color
				}
				res.Final[tile] = rec.Timestamp
			}
		} else {
			for _, tile := range tiles {
				if !reached {
					delete(res.Checkpoint, tile)
				}
				delete(res.Final, tile)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Expand flattens a placement into its constituent tiles. Rectangles
// expand half-open, [left,right) by [top,bottom): the right and bottom
// edge columns are excluded, matching how the datasets record
// moderation rectangles. Circles expand to their rasterization.
func Expand(p canvas.Placement) []geometry.Point {
	switch v := p.(type) {
	case canvas.PointPlacement:
		return []geometry.Point{geometry.Point(v)}
	case canvas.RectPlacement:
		var tiles []geometry.Point
		for x := v.Left; x < v.Right; x++ {
			for y := v.Top; y < v.Bottom; y++ {
				tiles = append(tiles, geometry.Point{X: x, Y: y})
			}
		}
		return tiles
	case canvas.CirclePlacement:
		return geometry.Circle(v).Rasterize()
	default:
		return nil
	}
}
