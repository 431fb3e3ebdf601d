package outcome

// Kind discriminates the three tile outcome variants.
type Kind string

const (
	KindAdd  Kind = "ADD"
	KindMult Kind = "MULT"
	KindStop Kind = "STOP"
)

// Multiplier factors a MULT outcome may carry.
const (
	FactorX15 = 1.5
	FactorX2  = 2.0
)

// Outcome is one entry of a round sequence. Amount is meaningful only for
// ADD, Factor only for MULT; use the constructors so the unused field stays
// zero.
type Outcome struct {
	Kind   Kind    `json:"t"`
	Amount int     `json:"amount,omitempty"`
	Factor float64 `json:"value,omitempty"`
}

func Add(amount int) Outcome {
	if amount < 0 {
		amount = 0
	}
	return Outcome{Kind: KindAdd, Amount: amount}
}

func Mult(factor float64) Outcome {
	return Outcome{Kind: KindMult, Factor: factor}
}

func Stop() Outcome {
	return Outcome{Kind: KindStop}
}

// Profile is the statistical regime governing a round's stop and multiplier
// curves.
type Profile string

const (
	// ProfileNone means "draw one randomly".
	ProfileNone    Profile = ""
	ProfileLow     Profile = "low"
	ProfileNormal  Profile = "normal"
	ProfileJackpot Profile = "jackpot"
)

// Cap returns the running-total ceiling for a round. Non-jackpot rounds are
// capped below maxWin so hitting the maximum organically stays rare.
func (p Profile) Cap(maxWin int) int {
	if p == ProfileJackpot {
		return maxWin
	}
	return maxWin * 3 / 4
}
