package canvas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/canvaslab/placetrace/pkg/geometry"
)

// TimestampLayout is the lexical timestamp format used by every
// dataset generation. The fractional second is optional.
const TimestampLayout = "2006-01-02 15:04:05.999 UTC"

// ParseTimestamp parses a dataset timestamp such as
// "2022-04-04 00:55:57.168 UTC".
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// Placement is the spatial payload of a record: a single tile, a
// moderation rectangle, or a moderation circle.
type Placement interface {
	placement()
}

// PointPlacement is a single placed tile.
type PointPlacement geometry.Point

// RectPlacement is a rectangle placed by moderation tooling.
type RectPlacement geometry.Rect

// CirclePlacement is a circle placed by moderation tooling.
type CirclePlacement geometry.Circle

func (PointPlacement) placement()  {}
func (RectPlacement) placement()   {}
func (CirclePlacement) placement() {}

// Record is one parsed canvas-history event: who placed what color
// where, and when. Ordering between records is implied by their file
// position; the log is already chronological.
type Record struct {
	Timestamp string    // raw timestamp text, as written in the log
	Time      time.Time // parsed form of Timestamp
	User      string
	Color     string
	Placement Placement
}

// ParseError reports a malformed log line. Lines that fail to parse
// are logged and skipped by every pass; parsing never panics.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed canvas line (%s): %q", e.Reason, e.Line)
}

// ParseLine parses one log line (without its trailing newline, header
// already skipped) according to the era's field order. Supported
// layouts are timestamp,user,color,coordinate (2022) and
// timestamp,user,coordinate,color (2023). The coordinate field may be
// quoted, since tile and rectangle coordinates contain commas.
func ParseLine(line string, era Era) (*Record, error) {
	ts, rest, ok := strings.Cut(line, ",")
	if !ok {
		return nil, &ParseError{Line: line, Reason: "missing timestamp field"}
	}
	t, err := ParseTimestamp(ts)
	if err != nil {
		return nil, &ParseError{Line: line, Reason: "bad timestamp"}
	}

	user, rest, ok := strings.Cut(rest, ",")
	if !ok || user == "" {
		return nil, &ParseError{Line: line, Reason: "missing user field"}
	}

	var color, coord string
	if era.ColorBeforeShape {
		color, coord, ok = strings.Cut(rest, ",")
		if !ok {
			return nil, &ParseError{Line: line, Reason: "missing coordinate field"}
		}
		coord = unquote(coord)
	} else {
		coord, color, ok = cutCoordinateField(rest)
		if !ok {
			return nil, &ParseError{Line: line, Reason: "missing color field"}
		}
	}
	if color == "" {
		return nil, &ParseError{Line: line, Reason: "empty color field"}
	}

	placement, reason := parsePlacement(coord, era)
	if reason != "" {
		return nil, &ParseError{Line: line, Reason: reason}
	}

	return &Record{
		Timestamp: ts,
		Time:      t,
		User:      user,
		Color:     color,
		Placement: placement,
	}, nil
}

// cutCoordinateField splits a quoted or unquoted coordinate field off
// the front of s, returning the coordinate text and the remainder
// after the separating comma. Unquoted coordinates are split at the
// last comma, since the coordinate itself may contain commas but the
// trailing color never does.
func cutCoordinateField(s string) (coord, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		end := strings.Index(s[1:], `"`)
		if end < 0 {
			return "", "", false
		}
		coord = s[1 : 1+end]
		after, found := strings.CutPrefix(s[1+end+1:], ",")
		return coord, after, found
	}
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// parsePlacement parses the three coordinate encodings: "x,y" (tile),
// "left,top,right,bottom" (rectangle; tried first, the tile form is
// only attempted once the four-integer form is ruled out) and
// "{X: n, Y: n, R: n}" (circle). A non-empty reason signals failure.
func parsePlacement(s string, era Era) (Placement, string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		return parseCircle(s, era)
	}

	parts := strings.Split(s, ",")
	switch len(parts) {
	case 4:
		var vals [4]int
		for i, p := range parts {
			v, ok := parseCoordinate(p, era)
			if !ok {
				return nil, fmt.Sprintf("bad rectangle coordinate %q", p)
			}
			vals[i] = v
		}
		return RectPlacement{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, ""
	case 2:
		x, ok := parseCoordinate(parts[0], era)
		if !ok {
			return nil, fmt.Sprintf("bad x coordinate %q", parts[0])
		}
		y, ok := parseCoordinate(parts[1], era)
		if !ok {
			return nil, fmt.Sprintf("bad y coordinate %q", parts[1])
		}
		return PointPlacement{X: x, Y: y}, ""
	default:
		return nil, fmt.Sprintf("coordinate field has %d components", len(parts))
	}
}

// parseCircle parses the bracketed circle form "{X: n, Y: n, R: n}".
func parseCircle(s string, era Era) (Placement, string) {
	if !strings.HasSuffix(s, "}") {
		return nil, "unterminated circle coordinate"
	}
	body := s[1 : len(s)-1]

	var c CirclePlacement
	var seenX, seenY, seenR bool
	for _, part := range strings.Split(body, ",") {
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Sprintf("bad circle component %q", part)
		}
		switch strings.TrimSpace(key) {
		case "X":
			c.X, ok = parseCoordinate(val, era)
			seenX = true
		case "Y":
			c.Y, ok = parseCoordinate(val, era)
			seenY = true
		case "R":
			c.R, ok = parseCoordinate(val, era)
			seenR = true
		default:
			return nil, fmt.Sprintf("unknown circle component %q", key)
		}
		if !ok {
			return nil, fmt.Sprintf("bad circle component %q", part)
		}
	}
	if !seenX || !seenY || !seenR {
		return nil, "incomplete circle coordinate"
	}
	if c.R < 0 {
		return nil, "negative circle radius"
	}
	return c, ""
}

// parseCoordinate parses one bounded 16-bit integer. The 2022 canvas
// used unsigned coordinates; the 2023 canvas was origin-centered and
// signed. Out-of-range values are a parse failure, not a saturation.
func parseCoordinate(s string, era Era) (int, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	if era.Signed {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return 0, false
		}
	} else {
		if v < 0 || v > math.MaxUint16 {
			return 0, false
		}
	}
	return int(v), true
}
