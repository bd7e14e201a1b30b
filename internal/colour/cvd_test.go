package colour

import "testing"

func TestSimulateNeutralsUnchanged(t *testing.T) {
	// Each matrix's rows sum to ~1, so black and white map to
	// themselves under every deficiency type.
	for _, d := range Deficiencies {
		if got := Simulate(Black, d); got != Black {
			t.Errorf("Simulate(black, %s) = %s, want #000000", d, got.Hex())
		}
		if got := Simulate(White, d); got != White {
			t.Errorf("Simulate(white, %s) = %s, want #ffffff", d, got.Hex())
		}
	}
}

func TestSimulateKnownValues(t *testing.T) {
	tests := []struct {
		name       string
		colour     Colour
		deficiency Deficiency
		want       string
	}{
		{
			name:       "red under protanopia",
			colour:     Colour{R: 255, G: 0, B: 0},
			deficiency: Protanopia,
			want:       "#6d5f0d",
		},
		{
			name:       "red under deuteranopia",
			colour:     Colour{R: 255, G: 0, B: 0},
			deficiency: Deuteranopia,
			want:       "#a39000",
		},
		{
			name:       "red under tritanopia",
			colour:     Colour{R: 255, G: 0, B: 0},
			deficiency: Tritanopia,
			want:       "#ff000f",
		},
		{
			name:       "blue under protanopia",
			colour:     Colour{R: 0, G: 0, B: 255},
			deficiency: Protanopia,
			want:       "#0059ff",
		},
		{
			name:       "blue under deuteranopia",
			colour:     Colour{R: 0, G: 0, B: 255},
			deficiency: Deuteranopia,
			want:       "#003dfb",
		},
		{
			name:       "blue under tritanopia",
			colour:     Colour{R: 0, G: 0, B: 255},
			deficiency: Tritanopia,
			want:       "#006b96",
		},
		{
			name:       "brand red under protanopia",
			colour:     Colour{R: 0xe5, G: 0x3e, B: 0x3e},
			deficiency: Protanopia,
			want:       "#6f6640",
		},
		{
			name:       "brand green under protanopia",
			colour:     Colour{R: 0x38, G: 0xa1, B: 0x69},
			deficiency: Protanopia,
			want:       "#a09565",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simulate(tt.colour, tt.deficiency); got.Hex() != tt.want {
				t.Errorf("Simulate(%s, %s) = %s, want %s",
					tt.colour.Hex(), tt.deficiency, got.Hex(), tt.want)
			}
		})
	}
}

func TestSimulateClampsChannels(t *testing.T) {
	// Pure blue under protanopia drives the red channel negative
	// before clamping; the output must still be a valid colour.
	got := Simulate(Colour{R: 0, G: 0, B: 255}, Protanopia)
	if got.R != 0 {
		t.Errorf("expected red channel clamped to 0, got %d", got.R)
	}
	if got.B != 255 {
		t.Errorf("expected blue channel clamped to 255, got %d", got.B)
	}
}

func TestDeficiencyValid(t *testing.T) {
	for _, d := range Deficiencies {
		if !d.Valid() {
			t.Errorf("Valid(%s) = false, want true", d)
		}
	}
	if Deficiency("achromatopsia").Valid() {
		t.Error("Valid(achromatopsia) = true, want false")
	}
}

func TestAnalyzeCVD(t *testing.T) {
	text := Colour{R: 0xe5, G: 0x3e, B: 0x3e}
	bg := Colour{R: 0x38, G: 0xa1, B: 0x69}
	ratio := ContrastRatio(text, bg)

	got := AnalyzeCVD(text, bg, ratio)
	if len(got) != 3 {
		t.Fatalf("AnalyzeCVD() returned %d entries, want 3", len(got))
	}

	want := []CVDAnalysis{
		{
			Type:           Protanopia,
			SimulatedText:  "#6f6640",
			SimulatedBg:    "#a09565",
			SimulatedRatio: 1.91,
			DeltaE:         18.9,
			Risk:           RiskHigh,
		},
		{
			Type:           Deuteranopia,
			SimulatedText:  "#998a38",
			SimulatedBg:    "#928b6d",
			SimulatedRatio: 1.01,
			DeltaE:         27.8,
			Risk:           RiskHigh,
		},
		{
			Type:           Tritanopia,
			SimulatedText:  "#fc0040",
			SimulatedBg:    "#00a092",
			SimulatedRatio: 1.24,
			DeltaE:         126.2,
			Risk:           RiskHigh,
		},
	}

	for i, w := range want {
		if got[i] != w {
			t.Errorf("AnalyzeCVD()[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name          string
		deltaE        float64
		simRatio      float64
		originalRatio float64
		want          string
	}{
		{
			name:          "tiny delta e is critical regardless of ratio",
			deltaE:        2.9,
			simRatio:      20,
			originalRatio: 20,
			want:          RiskCritical,
		},
		{
			name:          "low delta e is high regardless of ratio",
			deltaE:        9.9,
			simRatio:      20,
			originalRatio: 20,
			want:          RiskHigh,
		},
		{
			name:          "ratio below large text threshold",
			deltaE:        50,
			simRatio:      2.9,
			originalRatio: 3.2,
			want:          RiskHigh,
		},
		{
			name:          "drops below body threshold after simulation",
			deltaE:        50,
			simRatio:      4.2,
			originalRatio: 4.8,
			want:          RiskWarning,
		},
		{
			name:          "was already below body threshold",
			deltaE:        50,
			simRatio:      4.2,
			originalRatio: 4.2,
			want:          RiskOK,
		},
		{
			name:          "healthy pair",
			deltaE:        80,
			simRatio:      10,
			originalRatio: 12,
			want:          RiskOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRisk(tt.deltaE, tt.simRatio, tt.originalRatio); got != tt.want {
				t.Errorf("classifyRisk(%v, %v, %v) = %s, want %s",
					tt.deltaE, tt.simRatio, tt.originalRatio, got, tt.want)
			}
		})
	}
}
