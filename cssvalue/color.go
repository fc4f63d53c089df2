package cssvalue

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses CSS color syntax (hex, rgb()/rgba(), hsl(), named
// colors, ...) into a declared Color value. `currentcolor` is intentionally
// rejected here: it resolves to the inherited text color, which is a
// cascade-time concern (csscascade), not a parse-time one, so callers
// handle that keyword before reaching ParseColor.
func ParseColor(css string) (Color, error) {
	c, err := csscolorparser.Parse(css)
	if err != nil {
		return Color{}, fmt.Errorf("cssvalue: parse color %q: %w", css, err)
	}
	return Color{
		Color: colorful.Color{R: c.R, G: c.G, B: c.B},
		Alpha: c.A,
	}, nil
}
