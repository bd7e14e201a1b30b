package colour

// Options controls a pair analysis.
type Options struct {
	// IncludeCVD adds colour-vision-deficiency simulation and hue
	// warnings to the result.
	IncludeCVD bool

	// MinRatio, when positive, records an additional pass/fail
	// judgement against a role-specific minimum (3.0 for borders and
	// non-text graphics). It does not alter the four WCAG flags or
	// the fix targets.
	MinRatio float64
}

// Result is the full analysis of one colour pair. Fix fields are
// populated only when the corresponding check fails; CVD fields only
// when requested.
type Result struct {
	TextColour       string  `json:"text_color"`
	BackgroundColour string  `json:"background_color"`
	Ratio            float64 `json:"ratio"`
	Rating

	FixAA       string  `json:"fix_aa,omitempty"`
	FixAARatio  float64 `json:"fix_aa_ratio,omitempty"`
	FixAAA      string  `json:"fix_aaa,omitempty"`
	FixAAARatio float64 `json:"fix_aaa_ratio,omitempty"`

	RequiredRatio  float64 `json:"required_ratio,omitempty"`
	PassesRequired *bool   `json:"passes_required,omitempty"`

	CVD         []CVDAnalysis `json:"cvd,omitempty"`
	HueWarnings []string      `json:"hue_warnings,omitempty"`
}

// AnalyzePair analyses a foreground/background pair given as colour
// literals. Returns an *InvalidColourError when either literal cannot
// be parsed; this is the only error the engine produces.
func AnalyzePair(text, bg string, opts Options) (*Result, error) {
	textColour, err := Parse(text)
	if err != nil {
		return nil, err
	}
	bgColour, err := Parse(bg)
	if err != nil {
		return nil, err
	}

	ratio := ContrastRatio(textColour, bgColour)
	rating := Rate(ratio)

	result := &Result{
		TextColour:       textColour.Hex(),
		BackgroundColour: bgColour.Hex(),
		Ratio:            round2(ratio),
		Rating:           rating,
	}

	if !rating.AABody {
		fix := FindFixedColour(textColour, bgColour, AABodyRatio)
		result.FixAA = fix.Hex()
		result.FixAARatio = round2(ContrastRatio(fix, bgColour))
	}
	if !rating.AAABody {
		fix := FindFixedColour(textColour, bgColour, AAABodyRatio)
		result.FixAAA = fix.Hex()
		result.FixAAARatio = round2(ContrastRatio(fix, bgColour))
	}

	if opts.MinRatio > 0 {
		passes := ratio >= opts.MinRatio
		result.RequiredRatio = opts.MinRatio
		result.PassesRequired = &passes
	}

	if opts.IncludeCVD {
		result.CVD = AnalyzeCVD(textColour, bgColour, ratio)
		result.HueWarnings = RiskyHueWarnings(textColour, bgColour)
	}

	return result, nil
}
