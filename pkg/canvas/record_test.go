package canvas

import (
	"testing"
	"time"

	"github.com/canvaslab/placetrace/pkg/geometry"
)

func mustEra(t *testing.T, name string) Era {
	t.Helper()
	era, err := EraByName(name)
	if err != nil {
		t.Fatal(err)
	}
	return era
}

func TestParseLine_ColorFirstTile(t *testing.T) {
	era := mustEra(t, "2022")
	line := `2022-04-04 00:55:57.168 UTC,tPcrtm7OtEmSThdRSWmB7jmTF9lUVZ1pltNv1oKqPY9A==,#6A5CFF,"1908,1854"`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Timestamp != "2022-04-04 00:55:57.168 UTC" {
		t.Errorf("raw timestamp = %q", rec.Timestamp)
	}
	want := time.Date(2022, 4, 4, 0, 55, 57, 168000000, time.UTC)
	if !rec.Time.Equal(want) {
		t.Errorf("parsed time = %v, want %v", rec.Time, want)
	}
	if rec.User != "tPcrtm7OtEmSThdRSWmB7jmTF9lUVZ1pltNv1oKqPY9A==" {
		t.Errorf("user = %q", rec.User)
	}
	if rec.Color != "#6A5CFF" {
		t.Errorf("color = %q", rec.Color)
	}
	p, ok := rec.Placement.(PointPlacement)
	if !ok {
		t.Fatalf("placement = %T, want PointPlacement", rec.Placement)
	}
	if (geometry.Point(p) != geometry.Point{X: 1908, Y: 1854}) {
		t.Errorf("point = %v", p)
	}
}

func TestParseLine_ColorFirstRect(t *testing.T) {
	era := mustEra(t, "2022")
	line := `2022-04-04 22:47:40.185 UTC,modbot==,#FFFFFF,"1349,1718,1424,1752"`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := rec.Placement.(RectPlacement)
	if !ok {
		t.Fatalf("placement = %T, want RectPlacement", rec.Placement)
	}
	want := RectPlacement{Left: 1349, Top: 1718, Right: 1424, Bottom: 1752}
	if r != want {
		t.Errorf("rect = %v, want %v", r, want)
	}
}

func TestParseLine_ShapeFirstSignedTile(t *testing.T) {
	era := mustEra(t, "2023")
	line := `2023-07-25 13:01:00 UTC,ab12cd==,"-130,64",#FF4500`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Color != "#FF4500" {
		t.Errorf("color = %q", rec.Color)
	}
	p, ok := rec.Placement.(PointPlacement)
	if !ok {
		t.Fatalf("placement = %T, want PointPlacement", rec.Placement)
	}
	if p.X != -130 || p.Y != 64 {
		t.Errorf("point = %v", p)
	}
}

func TestParseLine_ShapeFirstUnquoted(t *testing.T) {
	// Some dataset exports leave the coordinate field unquoted; the
	// color still follows the last comma.
	era := mustEra(t, "2023")
	line := `2023-07-25 13:01:00 UTC,ab12cd==,-130,64,#FF4500`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Color != "#FF4500" {
		t.Errorf("color = %q", rec.Color)
	}
	if p, ok := rec.Placement.(PointPlacement); !ok || p.X != -130 || p.Y != 64 {
		t.Errorf("placement = %#v", rec.Placement)
	}
}

func TestParseLine_Circle(t *testing.T) {
	era := mustEra(t, "2023")
	line := `2023-07-26 00:00:01.500 UTC,mod==,"{X: 120, Y: -40, R: 30}",#FFFFFF`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := rec.Placement.(CirclePlacement)
	if !ok {
		t.Fatalf("placement = %T, want CirclePlacement", rec.Placement)
	}
	if c.X != 120 || c.Y != -40 || c.R != 30 {
		t.Errorf("circle = %v", c)
	}
}

func TestParseLine_RectBeforePointGreedy(t *testing.T) {
	// A four-integer coordinate must parse as a rectangle, never as a
	// tile with trailing garbage.
	era := mustEra(t, "2022")
	line := `2022-04-04 01:00:00 UTC,user==,#000000,"0,0,10,10"`

	rec, err := ParseLine(line, era)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rec.Placement.(RectPlacement); !ok {
		t.Fatalf("placement = %T, want RectPlacement", rec.Placement)
	}
}

func TestParseLine_CoordinateBounds(t *testing.T) {
	era2022 := mustEra(t, "2022")
	era2023 := mustEra(t, "2023")

	cases := []struct {
		name string
		era  Era
		line string
	}{
		{"negative in unsigned era", era2022, `2022-04-04 01:00:00 UTC,u==,#000000,"-1,5"`},
		{"beyond uint16", era2022, `2022-04-04 01:00:00 UTC,u==,#000000,"65536,5"`},
		{"beyond int16", era2023, `2023-07-25 13:01:00 UTC,u==,"40000,5",#FFFFFF`},
		{"below int16", era2023, `2023-07-25 13:01:00 UTC,u==,"-40000,5",#FFFFFF`},
	}
	for _, c := range cases {
		if _, err := ParseLine(c.line, c.era); err == nil {
			t.Errorf("%s: expected parse failure", c.name)
		}
	}
}

func TestParseLine_Malformed(t *testing.T) {
	era := mustEra(t, "2022")

	lines := []string{
		``,
		`not a timestamp,u==,#000000,"1,2"`,
		`2022-04-04 01:00:00 UTC`,
		`2022-04-04 01:00:00 UTC,u==`,
		`2022-04-04 01:00:00 UTC,u==,#000000`,
		`2022-04-04 01:00:00 UTC,u==,#000000,"1,2,3"`,
		`2022-04-04 01:00:00 UTC,u==,#000000,"{X: 1, Y: 2}"`,
		`2022-04-04 01:00:00 UTC,u==,#000000,"{X: 1, Y: 2, R: oops}"`,
	}
	for _, line := range lines {
		rec, err := ParseLine(line, era)
		if err == nil {
			t.Errorf("expected failure for %q, got %#v", line, rec)
			continue
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("error for %q is %T, want *ParseError", line, err)
		}
	}
}

func TestParseTimestamp_OptionalFraction(t *testing.T) {
	with, err := ParseTimestamp("2022-04-04 21:32:37.541 UTC")
	if err != nil {
		t.Fatal(err)
	}
	without, err := ParseTimestamp("2022-04-04 21:32:37 UTC")
	if err != nil {
		t.Fatal(err)
	}
	if !with.After(without) {
		t.Error("fractional timestamp should compare after the whole second")
	}
}

func TestEras(t *testing.T) {
	eras := Eras()
	if len(eras) != 2 {
		t.Fatalf("expected 2 built-in eras, got %d", len(eras))
	}

	e2022, err := EraByName("2022")
	if err != nil {
		t.Fatal(err)
	}
	if !e2022.ColorBeforeShape || e2022.Signed || e2022.Whiteout <= 0 {
		t.Errorf("unexpected 2022 descriptor: %+v", e2022)
	}

	e2023, err := EraByName("2023")
	if err != nil {
		t.Fatal(err)
	}
	if e2023.ColorBeforeShape || !e2023.Signed {
		t.Errorf("unexpected 2023 descriptor: %+v", e2023)
	}

	if _, err := EraByName("2017"); err == nil {
		t.Error("expected error for unknown era")
	}
}
