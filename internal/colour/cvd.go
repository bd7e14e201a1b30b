package colour

import "math"

// Deficiency identifies a colour vision deficiency type.
type Deficiency string

// The supported deficiency types. Protanopia, deuteranopia and
// tritanopia are dichromatic (one cone class absent); protanomaly and
// deuteranomaly are the milder anomalous-trichromatic forms.
const (
	Protanopia    Deficiency = "protanopia"
	Deuteranopia  Deficiency = "deuteranopia"
	Tritanopia    Deficiency = "tritanopia"
	Protanomaly   Deficiency = "protanomaly"
	Deuteranomaly Deficiency = "deuteranomaly"
)

// Deficiencies lists every supported deficiency type.
var Deficiencies = []Deficiency{
	Protanopia,
	Deuteranopia,
	Tritanopia,
	Protanomaly,
	Deuteranomaly,
}

// dichromatic lists the three dichromatic types analysed by
// AnalyzeCVD, where contrast loss is most severe.
var dichromatic = []Deficiency{Protanopia, Deuteranopia, Tritanopia}

// cvdMatrix is a 3x3 linear-RGB transform approximating one
// deficiency type. Rows produce output R, G, B from input R, G, B.
type cvdMatrix [3][3]float64

// cvdMatrices holds the simulation matrices (Brettel/Viénot/Mollon
// derived constants). Read-only.
var cvdMatrices = map[Deficiency]cvdMatrix{
	Protanopia: {
		{0.152286, 1.052583, -0.204868},
		{0.114503, 0.786281, 0.099216},
		{0.003882, -0.048116, 1.044234},
	},
	Deuteranopia: {
		{0.367322, 0.860646, -0.227968},
		{0.280085, 0.672501, 0.047413},
		{-0.011820, 0.042940, 0.968881},
	},
	Tritanopia: {
		{1.255528, -0.076749, -0.178779},
		{-0.078411, 0.930809, 0.147602},
		{0.004733, 0.691367, 0.303900},
	},
	Protanomaly: {
		{0.458064, 0.679578, -0.137642},
		{0.092785, 0.846313, 0.060902},
		{-0.007494, -0.016807, 1.024301},
	},
	Deuteranomaly: {
		{0.547494, 0.607765, -0.155259},
		{0.181692, 0.781742, 0.036566},
		{-0.010410, 0.027275, 0.983136},
	},
}

// Valid reports whether d names a supported deficiency type.
func (d Deficiency) Valid() bool {
	_, ok := cvdMatrices[d]
	return ok
}

// Simulate approximates how a colour appears under the given
// deficiency: linearize, apply the transform matrix, clamp each linear
// channel to [0,1], delinearize and round.
func Simulate(c Colour, d Deficiency) Colour {
	m := cvdMatrices[d]

	rl := linearize(float64(c.R) / 255.0)
	gl := linearize(float64(c.G) / 255.0)
	bl := linearize(float64(c.B) / 255.0)

	sr := m[0][0]*rl + m[0][1]*gl + m[0][2]*bl
	sg := m[1][0]*rl + m[1][1]*gl + m[1][2]*bl
	sb := m[2][0]*rl + m[2][1]*gl + m[2][2]*bl

	// Clamp before converting back to sRGB.
	sr = math.Max(0, math.Min(1, sr))
	sg = math.Max(0, math.Min(1, sg))
	sb = math.Max(0, math.Min(1, sb))

	return Colour{
		R: uint8(math.Round(delinearize(sr) * 255)),
		G: uint8(math.Round(delinearize(sg) * 255)),
		B: uint8(math.Round(delinearize(sb) * 255)),
	}
}

// Risk labels for a simulated pair, from worst to best.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskWarning  = "warning"
	RiskOK       = "ok"
)

// CVDAnalysis describes how a colour pair holds up under one
// deficiency type.
type CVDAnalysis struct {
	Type           Deficiency `json:"type"`
	SimulatedText  string     `json:"simulated_text"`
	SimulatedBg    string     `json:"simulated_bg"`
	SimulatedRatio float64    `json:"simulated_ratio"`
	DeltaE         float64    `json:"delta_e"`
	Risk           string     `json:"risk"`
}

// AnalyzeCVD simulates the pair under the three dichromatic types and
// classifies the risk of each. originalRatio is the pair's contrast
// ratio with normal vision.
func AnalyzeCVD(text, bg Colour, originalRatio float64) []CVDAnalysis {
	results := make([]CVDAnalysis, 0, len(dichromatic))

	for _, d := range dichromatic {
		simText := Simulate(text, d)
		simBg := Simulate(bg, d)
		simRatio := ContrastRatio(simText, simBg)
		de := DeltaE(simText, simBg)

		results = append(results, CVDAnalysis{
			Type:           d,
			SimulatedText:  simText.Hex(),
			SimulatedBg:    simBg.Hex(),
			SimulatedRatio: round2(simRatio),
			DeltaE:         round1(de),
			Risk:           classifyRisk(de, simRatio, originalRatio),
		})
	}

	return results
}

// classifyRisk assigns a risk label. The precedence matters: a very
// low ΔE means the simulated colours are nearly indistinguishable,
// which overrides any ratio-based check.
func classifyRisk(deltaE, simRatio, originalRatio float64) string {
	switch {
	case deltaE < 3:
		return RiskCritical
	case deltaE < 10:
		return RiskHigh
	case simRatio < AALargeRatio:
		return RiskHigh
	case simRatio < AABodyRatio && originalRatio >= AABodyRatio:
		return RiskWarning
	default:
		return RiskOK
	}
}

// round2 rounds to two decimal places for display and serialisation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
