package canvas

import (
	_ "embed"
	"fmt"

	"github.com/tidwall/gjson"
)

// Era describes one published canvas-history dataset generation. The
// generations differ in CSV field order, coordinate signedness and the
// line at which the end-of-event whiteout began.
type Era struct {
	Name string

	// ColorBeforeShape selects the field order: true for
	// timestamp,user,color,coordinate (2022), false for
	// timestamp,user,coordinate,color (2023).
	ColorBeforeShape bool

	// Signed selects 16-bit signed coordinates. The 2023 canvas was
	// centered on the origin and used negative coordinates; 2022
	// coordinates are unsigned.
	Signed bool

	// Whiteout is the default checkpoint line number: the first log
	// line of the mass-clearing event that ended the canvas.
	Whiteout int
}

//go:embed eras.json
var erasJSON []byte

// Eras returns the built-in dataset descriptors in declaration order.
func Eras() []Era {
	var eras []Era
	for _, e := range gjson.GetBytes(erasJSON, "eras").Array() {
		eras = append(eras, Era{
			Name:             e.Get("name").String(),
			ColorBeforeShape: e.Get("layout").String() == "color-first",
			Signed:           e.Get("signed").Bool(),
			Whiteout:         int(e.Get("whiteout").Int()),
		})
	}
	return eras
}

// EraByName looks up a built-in era descriptor.
func EraByName(name string) (Era, error) {
	for _, e := range Eras() {
		if e.Name == name {
			return e, nil
		}
	}
	return Era{}, fmt.Errorf("unknown dataset era %q", name)
}
