// Package colour implements the colour science behind contrast
// auditing: parsing and normalisation of colour literals, colour-space
// conversions, WCAG luminance and contrast ratios, the lightness-search
// contrast fixer, and colour-vision-deficiency simulation.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Colour represents an opaque sRGB colour with 8-bit channels.
// Alpha is stripped during parsing; a Colour always round-trips
// through its 6-digit hex form without loss.
type Colour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Black and White are the fallback colours used when no hue-preserving
// contrast fix exists.
var (
	Black = Colour{R: 0, G: 0, B: 0}
	White = Colour{R: 255, G: 255, B: 255}
)

// Hex returns the colour as a lowercase hex string (e.g., "#1a2b3c").
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the colour as a string in the format "rgb(r, g, b)".
func (c Colour) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// FromColor converts a color.Color to a Colour, discarding alpha.
func FromColor(c color.Color) Colour {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return Colour{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// InvalidColourError reports a colour literal that could not be parsed.
// Value holds the offending input after named-colour substitution and
// hex normalisation.
type InvalidColourError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidColourError) Error() string {
	return fmt.Sprintf("invalid color: #%s", e.Value)
}

// namedColours maps the supported CSS colour names to their hex values.
// This is a deliberately small set, not the full CSS named-colour list.
var namedColours = map[string]string{
	"black":      "#000000",
	"white":      "#ffffff",
	"red":        "#ff0000",
	"green":      "#008000",
	"blue":       "#0000ff",
	"yellow":     "#ffff00",
	"gray":       "#808080",
	"grey":       "#808080",
	"silver":     "#c0c0c0",
	"orange":     "#ffa500",
	"purple":     "#800080",
	"navy":       "#000080",
	"teal":       "#008080",
	"maroon":     "#800000",
	"olive":      "#808000",
	"aqua":       "#00ffff",
	"fuchsia":    "#ff00ff",
	"lime":       "#00ff00",
	"coral":      "#ff7f50",
	"salmon":     "#fa8072",
	"tomato":     "#ff6347",
	"gold":       "#ffd700",
	"khaki":      "#f0e68c",
	"plum":       "#dda0dd",
	"ivory":      "#fffff0",
	"linen":      "#faf0e6",
	"beige":      "#f5f5dc",
	"lavender":   "#e6e6fa",
	"slategray":  "#708090",
	"dimgray":    "#696969",
	"darkgray":   "#a9a9a9",
	"lightgray":  "#d3d3d3",
	"gainsboro":  "#dcdcdc",
	"whitesmoke": "#f5f5f5",
}

// Parse converts a colour literal to a Colour. Accepted forms are a
// supported colour name or 3, 4, 6 or 8 hex digits with an optional
// leading "#" (case-insensitive). 3-digit channels expand by digit
// duplication; 4- and 8-digit forms have their alpha stripped.
func Parse(input string) (Colour, error) {
	v := strings.ToLower(strings.TrimSpace(input))
	if hex, ok := namedColours[v]; ok {
		v = hex
	}
	v = strings.TrimPrefix(v, "#")

	// Strip the alpha digit(s) before expansion.
	if len(v) == 4 {
		v = v[:3]
	}
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 8 {
		v = v[:6]
	}

	if len(v) != 6 {
		return Colour{}, &InvalidColourError{Value: v}
	}
	r, err := strconv.ParseUint(v[0:2], 16, 8)
	if err != nil {
		return Colour{}, &InvalidColourError{Value: v}
	}
	g, err := strconv.ParseUint(v[2:4], 16, 8)
	if err != nil {
		return Colour{}, &InvalidColourError{Value: v}
	}
	b, err := strconv.ParseUint(v[4:6], 16, 8)
	if err != nil {
		return Colour{}, &InvalidColourError{Value: v}
	}

	return Colour{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Normalize converts a colour literal to its canonical 6-digit hex
// form.
func Normalize(input string) (string, error) {
	c, err := Parse(input)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// Named looks up a colour by name alone, without falling back to hex
// parsing. Scanners use it to test single words against the supported
// name table.
func Named(name string) (Colour, bool) {
	hex, ok := namedColours[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Colour{}, false
	}
	c, err := Parse(hex)
	if err != nil {
		return Colour{}, false
	}
	return c, true
}
