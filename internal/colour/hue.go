package colour

// Fixed warnings for hue combinations known to be hard to tell apart
// under colour vision deficiencies.
const (
	warnRedGreen    = "RED-GREEN combination — critical risk for Protanopia & Deuteranopia (~6% of men)"
	warnRedBrown    = "RED-BROWN combination — high risk for Protanopia & Deuteranopia"
	warnBluePurple  = "BLUE-PURPLE combination — high risk for Tritanopia"
	warnGreenYellow = "GREEN-YELLOW combination — high risk for Deuteranopia"
)

// Coarse hue-band predicates over (hue 0-360, saturation 0-100,
// lightness 0-100). The degree cutoffs are a fixed heuristic table,
// not a colorimetric computation.

func isRed(h, s float64) bool {
	return (h < 20 || h > 340) && s > 30
}

func isGreen(h, s float64) bool {
	return 80 < h && h < 170 && s > 30
}

func isBlue(h, s float64) bool {
	return 200 < h && h < 260 && s > 30
}

func isPurple(h, s float64) bool {
	return 260 < h && h < 320 && s > 30
}

func isYellow(h, s float64) bool {
	return 40 < h && h < 70 && s > 30
}

func isBrown(h, s, l float64) bool {
	return (h < 40 || h > 350) && s > 15 && l < 50
}

// RiskyHueWarnings checks a pair for known high-risk hue combinations,
// in both directions. Purely advisory and independent of simulation
// and contrast ratio.
func RiskyHueWarnings(text, bg Colour) []string {
	var warnings []string

	th, ts, tl := text.HSL()
	bh, bs, bl := bg.HSL()

	if (isRed(th, ts) && isGreen(bh, bs)) || (isGreen(th, ts) && isRed(bh, bs)) {
		warnings = append(warnings, warnRedGreen)
	}
	if (isRed(th, ts) && isBrown(bh, bs, bl)) || (isBrown(th, ts, tl) && isRed(bh, bs)) {
		warnings = append(warnings, warnRedBrown)
	}
	if (isBlue(th, ts) && isPurple(bh, bs)) || (isPurple(th, ts) && isBlue(bh, bs)) {
		warnings = append(warnings, warnBluePurple)
	}
	if (isGreen(th, ts) && isYellow(bh, bs)) || (isYellow(th, ts) && isGreen(bh, bs)) {
		warnings = append(warnings, warnGreenYellow)
	}

	return warnings
}
