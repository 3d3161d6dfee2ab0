// Package settings resolves and validates an analysis run's
// configuration. The CLI assembles a Settings from flags, the viper
// config file and era defaults; everything below it receives the
// resolved values explicitly.
package settings

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/canvaslab/placetrace/pkg/canvas"
	"github.com/canvaslab/placetrace/pkg/geometry"
	"github.com/canvaslab/placetrace/pkg/search"
)

// ConfigError reports malformed or missing required settings. It is
// fatal: nothing is scanned when configuration fails.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// AreaDef mirrors one entry under the `areas:` key of the config file,
// or one element of a JSON area file. Timestamps use the dataset's
// lexical format, e.g. "2022-04-02 10:00:00.000 UTC".
type AreaDef struct {
	Left     int      `mapstructure:"left"`
	Top      int      `mapstructure:"top"`
	Right    int      `mapstructure:"right"`
	Bottom   int      `mapstructure:"bottom"`
	Start    string   `mapstructure:"start"`
	End      string   `mapstructure:"end"`
	Colors   []string `mapstructure:"colors"`
	Optional bool     `mapstructure:"optional"`
}

// Area converts the definition into a matcher, parsing the optional
// time bounds.
func (d AreaDef) Area() (search.Area, error) {
	a := search.Area{
		Region:   geometry.Rect{Left: d.Left, Top: d.Top, Right: d.Right, Bottom: d.Bottom},
		Optional: d.Optional,
	}
	if d.Start != "" {
		t, err := canvas.ParseTimestamp(d.Start)
		if err != nil {
			return search.Area{}, &ConfigError{Field: "areas.start", Reason: fmt.Sprintf("bad timestamp %q", d.Start)}
		}
		a.Start = t
	}
	if d.End != "" {
		t, err := canvas.ParseTimestamp(d.End)
		if err != nil {
			return search.Area{}, &ConfigError{Field: "areas.end", Reason: fmt.Sprintf("bad timestamp %q", d.End)}
		}
		a.End = t
	}
	if len(d.Colors) > 0 {
		a.Colors = make(map[string]bool, len(d.Colors))
		for _, c := range d.Colors {
			a.Colors[c] = true
		}
	}
	return a, nil
}

// ParseAreasJSON reads area definitions from a JSON document of the
// form {"areas": [{"left": 0, "top": 0, "right": 10, "bottom": 10}]}.
func ParseAreasJSON(data []byte) ([]AreaDef, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ConfigError{Field: "areas", Reason: "file is not valid JSON"}
	}
	list := gjson.GetBytes(data, "areas")
	if !list.Exists() || !list.IsArray() {
		return nil, &ConfigError{Field: "areas", Reason: "missing top-level \"areas\" array"}
	}

	var defs []AreaDef
	for _, e := range list.Array() {
		def := AreaDef{
			Left:     int(e.Get("left").Int()),
			Top:      int(e.Get("top").Int()),
			Right:    int(e.Get("right").Int()),
			Bottom:   int(e.Get("bottom").Int()),
			Start:    e.Get("start").String(),
			End:      e.Get("end").String(),
			Optional: e.Get("optional").Bool(),
		}
		for _, c := range e.Get("colors").Array() {
			def.Colors = append(def.Colors, c.String())
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Areas converts a slice of definitions, failing on the first bad one.
func Areas(defs []AreaDef) ([]search.Area, error) {
	var areas []search.Area
	for i, d := range defs {
		a, err := d.Area()
		if err != nil {
			return nil, fmt.Errorf("area %d: %w", i, err)
		}
		areas = append(areas, a)
	}
	return areas, nil
}

// Settings is the fully resolved configuration of one analysis run.
type Settings struct {
	// LogPath locates the canvas-history CSV (optionally gzipped).
	LogPath string

	// User, when set, bypasses the candidate search entirely and goes
	// straight to reconstruction.
	User string

	Era   canvas.Era
	Areas []search.Area

	// Restrict enables the exclusion pass of the candidate scan.
	Restrict bool

	// Checkpoint is the whiteout line number; zero is resolved to the
	// era default before validation.
	Checkpoint int

	// Workers sizes the scan worker pool; zero means the scanner's
	// default.
	Workers int
}

// Validate checks the resolved settings, applying the era's whiteout
// default for a zero checkpoint.
func (s *Settings) Validate() error {
	if s.LogPath == "" {
		return &ConfigError{Field: "log", Reason: "canvas history path is required"}
	}
	if s.Checkpoint == 0 {
		s.Checkpoint = s.Era.Whiteout
	}
	if s.Checkpoint <= 0 {
		return &ConfigError{Field: "checkpoint", Reason: "checkpoint line number must be positive"}
	}
	if s.User == "" && len(s.Areas) == 0 {
		return &ConfigError{Field: "areas", Reason: "at least one search area is required unless a target user is given"}
	}
	return nil
}
