package colour

import "math"

const (
	// fixTolerance is the convergence tolerance for the lightness
	// search: the search stops once the candidate's ratio is within
	// this distance of the target.
	fixTolerance = 0.05

	// fixMaxIterations bounds the binary search so the fixer always
	// terminates.
	fixMaxIterations = 50
)

// FindFixedColour searches for the colour nearest to failing (by
// lightness distance) that achieves target contrast against anchor,
// preserving the failing colour's hue and saturation. When no
// hue-preserving fix exists it falls back to whichever of pure black
// or white has the higher contrast against the anchor.
func FindFixedColour(failing, anchor Colour, target float64) Colour {
	h, s, l := failing.HSL()
	originalL := l

	// Try darkening first, then lightening.
	bestDark, okDark := searchLightness(h, s, originalL, 0, anchor, target)
	bestLight, okLight := searchLightness(h, s, originalL, 100, anchor, target)

	// Pick the candidate closest to the original lightness. Lightness
	// is re-derived from the rounded candidate, since channel rounding
	// shifts it slightly.
	switch {
	case okDark && okLight:
		_, _, dl := bestDark.HSL()
		_, _, ll := bestLight.HSL()
		if math.Abs(dl-originalL) <= math.Abs(ll-originalL) {
			return bestDark
		}
		return bestLight
	case okDark:
		return bestDark
	case okLight:
		return bestLight
	}

	// Fallback: black or white.
	if ContrastRatio(Black, anchor) >= ContrastRatio(White, anchor) {
		return Black
	}
	return White
}

// searchLightness binary-searches lightness between startL and endL
// for a colour meeting the target ratio against the anchor. Returns
// false when even the extreme endpoint cannot reach the target.
func searchLightness(h, s, startL, endL float64, anchor Colour, target float64) (Colour, bool) {
	low := math.Min(startL, endL)
	high := math.Max(startL, endL)

	// A solution only exists in this direction if the endpoint passes.
	if ContrastRatio(FromHSL(h, s, endL), anchor) < target {
		return Colour{}, false
	}

	for i := 0; i < fixMaxIterations; i++ {
		mid := (low + high) / 2
		candidate := FromHSL(h, s, mid)
		ratio := ContrastRatio(candidate, anchor)

		if math.Abs(ratio-target) < fixTolerance {
			return candidate, true
		}

		if ratio >= target {
			// Move closer to the original lightness.
			if endL < startL {
				low = mid
			} else {
				high = mid
			}
		} else {
			// Move further from the original lightness.
			if endL < startL {
				high = mid
			} else {
				low = mid
			}
		}
	}

	return FromHSL(h, s, (low+high)/2), true
}
