package outcome

import "sort"

// Forced sequences must look like an ordinary lucky round: varied ADD
// amounts, one or two multipliers placed mid-game, no STOP, and no visible
// discontinuity when an in-progress round is patched. The exactness contract
// is that replaying the result lands on maxWin to the unit.

// GenerateForcedMaxWinSequence builds a sequence whose full replay yields
// exactly maxWin. Valid for any maxWin > 0 and maxPicks >= 2.
func (g *Generator) GenerateForcedMaxWinSequence(maxWin, maxPicks int) []Outcome {
	// One or two multipliers, placed in the middle third of the picks.
	midStart := maxPicks / 4
	midEnd := maxPicks * 7 / 10
	if midEnd <= midStart {
		midEnd = midStart + 1
	}

	numMults := 1
	if g.rng.Float64() > 0.6 && midEnd-midStart >= 2 {
		numMults = 2
	}

	positions := make([]int, 0, numMults)
	for len(positions) < numMults {
		pos := midStart + g.rng.IntN(midEnd-midStart)
		if !containsInt(positions, pos) {
			positions = append(positions, pos)
		}
	}
	sort.Ints(positions)

	factors := make([]float64, numMults)
	expectedMultiplier := 1.0
	for i := range factors {
		factors[i] = FactorX2
		if g.rng.Float64() < 0.8 {
			factors[i] = FactorX15
		}
		expectedMultiplier *= factors[i]
	}

	lastMult := positions[len(positions)-1]

	// Work backwards from the target: the adds before the last multiplier
	// carry the bulk, the trailing adds close the remaining gap exactly.
	preMultTarget := int(float64(maxWin) / expectedMultiplier)
	preCount := lastMult + 1 - len(positions)
	preAmounts := g.variedAmounts(preMultTarget, preCount)

	sequence := make([]Outcome, maxPicks)
	multIdx, preIdx := 0, 0
	for i := 0; i <= lastMult; i++ {
		if multIdx < len(positions) && positions[multIdx] == i {
			sequence[i] = Mult(factors[multIdx])
			multIdx++
			continue
		}
		sequence[i] = Add(preAmounts[preIdx])
		preIdx++
	}

	// Trailing adds after the last multiplier sum to the exact remainder, so
	// rounding lost to the floors above cannot shift the final bank.
	bankAtLastMult := CalculateBank(sequence, lastMult)
	postAmounts := g.variedAmounts(max(0, maxWin-bankAtLastMult), maxPicks-lastMult-1)
	for i := lastMult + 1; i < maxPicks; i++ {
		sequence[i] = Add(postAmounts[i-lastMult-1])
	}

	return sequence
}

// ForceSequenceToMaxWin rewrites the unplayed tail of an in-progress sequence
// so the final bank equals maxWin exactly. Outcomes before currentPickIndex
// are left untouched; any STOP in the tail becomes a neutral ADD(0) so the
// round cannot bust.
func (g *Generator) ForceSequenceToMaxWin(
	currentBank, currentPickIndex, maxWin, maxPicks int,
	existing []Outcome,
) []Outcome {
	sequence := make([]Outcome, len(existing))
	copy(sequence, existing)

	remaining := maxPicks - currentPickIndex
	if remaining <= 0 {
		return sequence
	}

	for i := currentPickIndex; i < len(sequence); i++ {
		if sequence[i].Kind == KindStop {
			sequence[i] = Add(0)
		}
	}

	deficit := max(0, maxWin-currentBank)

	// A single multiplier keeps the climb plausible when the bank is far
	// below target; otherwise the deficit spreads across plain adds.
	needMult := remaining >= 3 && float64(currentBank) < float64(maxWin)*0.2

	if !needMult {
		amounts := g.variedAmounts(deficit, remaining)
		for k, amount := range amounts {
			sequence[currentPickIndex+k] = Add(amount)
		}
		return sequence
	}

	multPos := currentPickIndex + g.rng.IntN(max(1, remaining/2))
	factor := FactorX2
	if g.rng.Float64() < 0.7 {
		factor = FactorX15
	}

	// Reserve roughly 30% of the deficit for after the multiplier.
	postShare := deficit * 3 / 10
	targetBeforeMult := int(float64(maxWin-postShare) / factor)
	neededBefore := max(0, targetBeforeMult-currentBank)

	before := g.variedAmounts(neededBefore, multPos-currentPickIndex)
	for k, amount := range before {
		sequence[currentPickIndex+k] = Add(amount)
	}
	sequence[multPos] = Mult(factor)

	bankAtMult := replayFrom(currentBank, sequence, currentPickIndex, multPos)
	after := g.variedAmounts(max(0, maxWin-bankAtMult), maxPicks-multPos-1)
	for k, amount := range after {
		sequence[multPos+1+k] = Add(amount)
	}

	return sequence
}

// variedAmounts distributes target across count non-negative integers that
// sum to target exactly. All but the last are drawn at 40%-160% of the even
// share (reserving headroom for the rest) and shuffled; the last entry is the
// exact remainder and stays in place.
func (g *Generator) variedAmounts(target, count int) []int {
	if count <= 0 {
		return nil
	}
	if target < 0 {
		target = 0
	}

	base := target / count
	amounts := make([]int, 0, count)
	remaining := target

	for i := 0; i < count-1; i++ {
		variance := 0.4 + g.rng.Float64()*1.2
		amount := int(float64(base) * variance)
		reserve := (count - i - 1) * (base * 3 / 10)
		if amount > remaining-reserve {
			amount = remaining - reserve
		}
		if amount < 0 {
			amount = 0
		}
		amounts = append(amounts, amount)
		remaining -= amount
	}
	amounts = append(amounts, remaining)

	g.shuffle(amounts[:count-1])
	return amounts
}

// replayFrom applies outcomes [from, through] on top of an already-played
// bank value.
func replayFrom(bank int, sequence []Outcome, from, through int) int {
	for i := from; i <= through && i < len(sequence); i++ {
		o := sequence[i]
		switch o.Kind {
		case KindStop:
			return bank
		case KindAdd:
			bank += o.Amount
		case KindMult:
			bank = MultiplyFloor(bank, o.Factor)
		}
	}
	return bank
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
