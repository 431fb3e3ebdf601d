package outcome

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateForcedMaxWinSequenceExact(t *testing.T) {
	maxWins := []int{5000, 20000, 100000, 500000}
	maxPicks := []int{2, 3, 5, 10, 14}

	for _, mw := range maxWins {
		for _, mp := range maxPicks {
			for seed := uint64(1); seed <= 20; seed++ {
				g := NewGenerator(NewSeededRNG(seed), 0)
				seq := g.GenerateForcedMaxWinSequence(mw, mp)

				label := fmt.Sprintf("maxWin=%d maxPicks=%d seed=%d", mw, mp, seed)
				require.Len(t, seq, mp, label)
				assert.Equal(t, mw, CalculateBank(seq, mp-1), label)

				for _, o := range seq {
					assert.NotEqual(t, KindStop, o.Kind, label)
				}
			}
		}
	}
}

func TestGenerateForcedMaxWinSequenceHasMidGameMult(t *testing.T) {
	g := NewGenerator(NewSeededRNG(3), 0)
	seq := g.GenerateForcedMaxWinSequence(20000, 10)

	mults := 0
	for i, o := range seq {
		if o.Kind == KindMult {
			mults++
			assert.GreaterOrEqual(t, i, 10/4)
			assert.Less(t, i, 7)
		}
	}
	assert.GreaterOrEqual(t, mults, 1)
	assert.LessOrEqual(t, mults, 2)
}

func TestForceSequenceToMaxWinMidRound(t *testing.T) {
	// Round in progress: 3 picks played, bank 1500, target 20000 over 10
	// picks. The already-played prefix must survive byte for byte and the
	// full replay must land exactly on maxWin.
	for seed := uint64(1); seed <= 30; seed++ {
		g := NewGenerator(NewSeededRNG(seed), 0)
		existing := []Outcome{
			Add(500), Add(700), Add(300),
			Stop(), Add(100), Mult(FactorX2), Add(50), Stop(), Add(10), Add(20),
		}
		bank := CalculateBank(existing, 2)
		require.Equal(t, 1500, bank)

		forced := g.ForceSequenceToMaxWin(bank, 3, 20000, 10, existing)

		label := fmt.Sprintf("seed=%d", seed)
		require.Len(t, forced, 10, label)
		assert.Equal(t, existing[:3], forced[:3], label)
		assert.Equal(t, 20000, replayFrom(bank, forced, 3, 9), label)

		for _, o := range forced[3:] {
			assert.NotEqual(t, KindStop, o.Kind, label)
		}
	}
}

func TestForceSequenceToMaxWinHighBankSkipsMult(t *testing.T) {
	// Bank already above 20% of target: deficit spreads across plain adds.
	g := NewGenerator(NewSeededRNG(5), 0)
	existing := make([]Outcome, 10)
	for i := range existing {
		existing[i] = Add(100)
	}
	bank := 8000

	forced := g.ForceSequenceToMaxWin(bank, 4, 20000, 10, existing)

	for _, o := range forced[4:] {
		assert.Equal(t, KindAdd, o.Kind)
	}
	assert.Equal(t, 20000, replayFrom(bank, forced, 4, 9))
}

func TestForceSequenceToMaxWinNoPicksLeft(t *testing.T) {
	g := NewGenerator(NewSeededRNG(1), 0)
	existing := []Outcome{Add(1), Add(2), Add(3)}

	forced := g.ForceSequenceToMaxWin(100, 3, 20000, 3, existing)
	assert.Equal(t, existing, forced)
}

func TestForceSequenceToMaxWinBankAlreadyAtTarget(t *testing.T) {
	g := NewGenerator(NewSeededRNG(9), 0)
	existing := make([]Outcome, 10)
	for i := range existing {
		existing[i] = Add(0)
	}

	forced := g.ForceSequenceToMaxWin(20000, 5, 20000, 10, existing)
	assert.Equal(t, 20000, replayFrom(20000, forced, 5, 9))
}

func TestVariedAmountsSumExactly(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		g := NewGenerator(NewSeededRNG(seed), 0)
		for _, tc := range []struct{ target, count int }{
			{10000, 5}, {0, 3}, {7, 10}, {1, 1}, {999999, 7},
		} {
			amounts := g.variedAmounts(tc.target, tc.count)
			require.Len(t, amounts, tc.count)

			sum := 0
			for _, a := range amounts {
				assert.GreaterOrEqual(t, a, 0)
				sum += a
			}
			assert.Equal(t, tc.target, sum,
				"seed=%d target=%d count=%d", seed, tc.target, tc.count)
		}
	}
}

func TestVariedAmountsDegenerate(t *testing.T) {
	g := NewGenerator(NewSeededRNG(1), 0)
	assert.Nil(t, g.variedAmounts(100, 0))
	assert.Equal(t, []int{0}, g.variedAmounts(-5, 1))
}
