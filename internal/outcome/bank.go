package outcome

import "github.com/shopspring/decimal"

// MultiplyFloor returns floor(bank * factor) computed exactly; float math
// would drift on large banks.
func MultiplyFloor(bank int, factor float64) int {
	d := decimal.NewFromInt(int64(bank)).Mul(decimal.NewFromFloat(factor))
	return int(d.Floor().IntPart())
}

// CalculateBank replays outcomes 0..upToIndex inclusive and returns the bank.
// Replay stops at the first STOP; ADD adds, MULT multiplies then floors.
// Pure and deterministic given a sequence.
func CalculateBank(sequence []Outcome, upToIndex int) int {
	bank := 0

	for i := 0; i <= upToIndex && i < len(sequence); i++ {
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
