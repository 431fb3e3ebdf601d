package outcome

// Stop probability per pick index (14 tiles). Lookups past the end clamp to
// the last entry.
var stopCurves = map[Profile][]float64{
	ProfileNormal:  {0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.10, 0.12, 0.14, 0.16, 0.18, 0.20, 0.22, 0.25},
	ProfileLow:     {0.08, 0.09, 0.10, 0.11, 0.12, 0.14, 0.16, 0.18, 0.20, 0.22, 0.25, 0.28, 0.30, 0.35},
	ProfileJackpot: {0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.10, 0.12, 0.14, 0.16, 0.18, 0.20},
}

// Multiplier probability per pick index.
var multCurves = map[Profile][]float64{
	ProfileNormal:  {0.02, 0.02, 0.02, 0.025, 0.03, 0.03, 0.035, 0.035, 0.04, 0.04, 0.045, 0.045, 0.05, 0.05},
	ProfileLow:     {0.01, 0.01, 0.015, 0.015, 0.02, 0.02, 0.025, 0.025, 0.03, 0.03, 0.035, 0.035, 0.04, 0.04},
	ProfileJackpot: {0.04, 0.04, 0.05, 0.05, 0.055, 0.055, 0.06, 0.06, 0.065, 0.065, 0.07, 0.07, 0.075, 0.08},
}

// Weight of the x1.5 multiplier; the rest goes to x2.0.
const multWeightX15 = 0.85

// Profile draw weights: low 15%, normal 82%, jackpot 3%.
const (
	profileWeightLow    = 0.15
	profileWeightNormal = 0.82
)

func curveAt(curve []float64, i int) float64 {
	if i >= len(curve) {
		i = len(curve) - 1
	}
	return curve[i]
}
