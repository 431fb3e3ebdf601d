package outcome

import "math"

// DefaultMinGuaranteed is the bank floor below which a STOP cannot trigger,
// so a round never busts at near-zero right after it starts.
const DefaultMinGuaranteed = 2000

// Generator produces round sequences. It holds no shared state beyond its
// random source, so one instance serves all rounds.
type Generator struct {
	rng           RandomSource
	minGuaranteed int
}

func NewGenerator(rng RandomSource, minGuaranteed int) *Generator {
	if rng == nil {
		rng = DefaultRNG()
	}
	if minGuaranteed <= 0 {
		minGuaranteed = DefaultMinGuaranteed
	}
	return &Generator{rng: rng, minGuaranteed: minGuaranteed}
}

// SelectProfile draws a round profile: low 15%, normal 82%, jackpot 3%.
func (g *Generator) SelectProfile() Profile {
	r := g.rng.Float64()
	if r < profileWeightLow {
		return ProfileLow
	}
	if r < profileWeightLow+profileWeightNormal {
		return ProfileNormal
	}
	return ProfileJackpot
}

// Result is the output of GenerateSequence.
type Result struct {
	Sequence      []Outcome
	Profile       Profile
	ExpectedValue int
}

// GenerateSequence builds the full fixed-length outcome sequence for a round.
// A forced profile takes precedence over the random draw. Once a STOP is
// emitted the remaining slots are padded with ADD(0) to keep the sequence at
// maxPicks entries; those are never applied.
func (g *Generator) GenerateSequence(targetAvg, maxWin, maxPicks int, forced Profile) Result {
	profile := forced
	if profile == ProfileNone {
		profile = g.SelectProfile()
	}

	stopCurve := stopCurves[profile]
	multCurve := multCurves[profile]
	cap := profile.Cap(maxWin)

	baseAmounts := g.generateBaseAddAmounts(targetAvg, maxPicks, profile)

	sequence := make([]Outcome, 0, maxPicks)
	runningTotal := 0
	stopped := false

	for i := 0; i < maxPicks; i++ {
		if stopped {
			sequence = append(sequence, Add(0))
			continue
		}

		stopProb := curveAt(stopCurve, i)
		multProb := curveAt(multCurve, i)
		r := g.rng.Float64()

		switch {
		case r < stopProb && runningTotal >= g.minGuaranteed:
			sequence = append(sequence, Stop())
			stopped = true
		case r < stopProb+multProb:
			factor := FactorX2
			if g.rng.Float64() < multWeightX15 {
				factor = FactorX15
			}
			sequence = append(sequence, Mult(factor))
			runningTotal = min(MultiplyFloor(runningTotal, factor), cap)
		default:
			amount := baseAmounts[i]
			if runningTotal+amount > cap {
				amount = max(0, cap-runningTotal)
			}
			sequence = append(sequence, Add(amount))
			runningTotal += amount
		}
	}

	return Result{
		Sequence:      sequence,
		Profile:       profile,
		ExpectedValue: CalculateBank(sequence, maxPicks-1),
	}
}

// varianceStrategy shapes the spread of base ADD amounts. One strategy is
// drawn per round.
type varianceStrategy int

const (
	varianceExponential varianceStrategy = iota
	varianceBimodal
	varianceUniform
)

func (g *Generator) pickVarianceStrategy() varianceStrategy {
	r := g.rng.Float64()
	switch {
	case r < 0.33:
		return varianceExponential
	case r < 0.66:
		return varianceBimodal
	default:
		return varianceUniform
	}
}

// generateBaseAddAmounts splits targetAvg across maxPicks picks, spreads the
// per-pick share with the round's variance strategy, floors each amount at 5
// and shuffles so amount size does not correlate with pick position. The only
// contract is: the pre-clamp average approximates targetAvg/maxPicks and
// individual amounts vary widely.
func (g *Generator) generateBaseAddAmounts(targetAvg, maxPicks int, profile Profile) []int {
	basePerPick := float64(targetAvg) / float64(maxPicks)
	strategy := g.pickVarianceStrategy()

	amounts := make([]int, 0, maxPicks)
	for i := 0; i < maxPicks; i++ {
		var variance float64

		switch strategy {
		case varianceExponential:
			// Some very low, some high.
			exp := -math.Log(g.rng.Float64() + 0.01)
			variance = math.Min(exp*0.5, 3.0)
		case varianceBimodal:
			if g.rng.Float64() < 0.4 {
				variance = 0.1 + g.rng.Float64()*0.4
			} else {
				variance = 1.2 + g.rng.Float64()*1.5
			}
		default:
			switch profile {
			case ProfileJackpot:
				variance = 0.2 + g.rng.Float64()*2.5
			case ProfileLow:
				variance = 0.1 + g.rng.Float64()*0.8
			default:
				variance = 0.15 + g.rng.Float64()*2.0
			}
		}

		amount := int(math.Round(basePerPick * variance))
		amounts = append(amounts, max(5, amount))
	}

	g.shuffle(amounts)
	return amounts
}

// shuffle is an in-place Fisher-Yates permutation driven by the generator's
// random source.
func (g *Generator) shuffle(amounts []int) {
	for i := len(amounts) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		amounts[i], amounts[j] = amounts[j], amounts[i]
	}
}
