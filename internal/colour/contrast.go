package colour

// WCAG 2.x contrast thresholds.
// https://www.w3.org/TR/WCAG21/#contrast-minimum
const (
	// AABodyRatio is the minimum contrast for body text at level AA.
	AABodyRatio = 4.5
	// AALargeRatio is the minimum contrast for large text and non-text
	// elements (SC 1.4.11) at level AA.
	AALargeRatio = 3.0
	// AAABodyRatio is the minimum contrast for body text at level AAA.
	AAABodyRatio = 7.0
	// AAALargeRatio is the minimum contrast for large text at level AAA.
	AAALargeRatio = 4.5
)

// Luminance calculates the relative luminance of a colour according to
// WCAG 2.x. Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance
func Luminance(c Colour) float64 {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the contrast ratio between two colours
// according to WCAG 2.x. Returns a value between 1 and 21, where 21 is
// maximum contrast (black vs white). Order-independent.
// https://www.w3.org/TR/WCAG21/#dfn-contrast-ratio
func ContrastRatio(c1, c2 Colour) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Rating holds the four WCAG pass flags for a contrast ratio.
type Rating struct {
	AABody   bool `json:"aa_body_text"`
	AALarge  bool `json:"aa_large_text"`
	AAABody  bool `json:"aaa_body_text"`
	AAALarge bool `json:"aaa_large_text"`
}

// Rate evaluates a contrast ratio against the WCAG 2.x thresholds.
// The ratio must be unrounded; rounding happens only on display.
func Rate(ratio float64) Rating {
	return Rating{
		AABody:   ratio >= AABodyRatio,
		AALarge:  ratio >= AALargeRatio,
		AAABody:  ratio >= AAABodyRatio,
		AAALarge: ratio >= AAALargeRatio,
	}
}
