// Package colors converts between color.RGBA and its textual forms: hex
// notation and the SVG 1.1 color keywords.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"propbind/coerce"
)

var ErrInvalidColor = errors.New("invalid color")

// Parse accepts "#RGB", "#RRGGBB", "#AARRGGBB" and color keywords such as
// "red" or "cornflowerblue", case-insensitively. "transparent" is the zero
// color.
func Parse(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		name := strings.ToLower(s)
		if name == "transparent" {
			return color.RGBA{}, nil
		}

		if c, ok := colornames.Map[name]; ok {
			return c, nil
		}

		return color.RGBA{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	switch len(hex) {
	case 6:
		hex = "ff" + hex
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q has %d hex digits", ErrInvalidColor, s, len(hex))
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}

	return color.RGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Format renders c as "#RRGGBB" when opaque and "#AARRGGBB" otherwise.
func Format(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}

	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// Register installs the textual color converter into r.
func Register(r *coerce.Registry) {
	r.Register(reflect.TypeFor[color.RGBA](), coerce.Text(Parse, Format))
}
