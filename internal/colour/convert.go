package colour

import "math"

// HSL converts the colour to HSL space.
// Returns hue (0-360), saturation (0-100), lightness (0-100).
func (c Colour) HSL() (h, s, l float64) {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Saturation.
	if delta == 0 {
		return 0, 0, l * 100
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue.
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s * 100, l * 100
}

// FromHSL converts HSL values to a Colour.
// h is hue (0-360), s is saturation (0-100), l is lightness (0-100).
// Channels round to the nearest integer so a round-trip through HSL
// stays within one channel unit.
func FromHSL(h, s, l float64) Colour {
	s /= 100
	l /= 100

	if s == 0 {
		// Achromatic (grey).
		v := uint8(math.Round(l * 255))
		return Colour{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToChannel(p, q, h+120)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-120)

	return Colour{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

// hueToChannel is a helper for HSL to RGB conversion.
func hueToChannel(p, q, t float64) float64 {
	// Normalize t to 0-360 range.
	for t < 0 {
		t += 360
	}
	for t >= 360 {
		t -= 360
	}

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// linearize converts a gamma-encoded sRGB channel in [0,1] to linear
// light. https://www.w3.org/TR/WCAG21/#dfn-relative-luminance
func linearize(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// delinearize converts a linear-light channel back to gamma-encoded
// sRGB. Exact inverse of linearize.
func delinearize(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// XYZ converts the colour to CIE XYZ space (D65, sRGB primaries).
func (c Colour) XYZ() (x, y, z float64) {
	rl := linearize(float64(c.R) / 255.0)
	gl := linearize(float64(c.G) / 255.0)
	bl := linearize(float64(c.B) / 255.0)

	x = 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y = 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z = 0.0193339*rl + 0.1191920*gl + 0.9503041*bl
	return x, y, z
}

// D65 reference white.
const (
	refWhiteX = 0.95047
	refWhiteY = 1.0
	refWhiteZ = 1.08883
)

// Lab converts the colour to CIE Lab space (D65 reference white).
func (c Colour) Lab() (l, a, b float64) {
	x, y, z := c.XYZ()

	fx := labF(x / refWhiteX)
	fy := labF(y / refWhiteY)
	fz := labF(z / refWhiteZ)

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return l, a, b
}

// labF is the piecewise XYZ-to-Lab transfer function.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// DeltaE returns the CIE76 colour difference between two colours:
// the Euclidean distance in Lab space. A coarse proxy for perceived
// difference, not a full perceptual-uniform metric.
func DeltaE(c1, c2 Colour) float64 {
	l1, a1, b1 := c1.Lab()
	l2, a2, b2 := c2.Lab()
	return math.Sqrt((l1-l2)*(l1-l2) + (a1-a2)*(a1-a2) + (b1-b2)*(b1-b2))
}
