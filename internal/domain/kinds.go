package domain

type WagerKind string

const (
	KindTwoDigitLo       WagerKind = "two_digit_lo"
	KindThreeDigitLo     WagerKind = "three_digit_lo"
	KindDeSpecial        WagerKind = "de_special"
	KindDeFirst          WagerKind = "de_first"
	KindDeSecond         WagerKind = "de_second"
	KindDeThird          WagerKind = "de_third"
	KindDeFourth         WagerKind = "de_fourth"
	KindDeFifth          WagerKind = "de_fifth"
	KindDeSixth          WagerKind = "de_sixth"
	KindDeSeventh        WagerKind = "de_seventh"
	KindThreeDigitDirect WagerKind = "three_digit_direct"
	KindParlay2          WagerKind = "parlay_2"
	KindParlay3          WagerKind = "parlay_3"
	KindParlay4          WagerKind = "parlay_4"
)

const (
	// PendingWagerStatus ставка принята, ждёт результата тиража;
	PendingWagerStatus string = "pending"
	// WonWagerStatus ставка выиграла, выплата зачислена;
	WonWagerStatus string = "won"
	// LostWagerStatus ставка проиграла;
	LostWagerStatus string = "lost"
)

const (
	StakeTransaction    string = "stake"
	PayoutTransaction   string = "payout"
	DepositTransaction  string = "deposit"
	WithdrawTransaction string = "withdraw"
)

var allKinds = map[WagerKind]struct{}{
	KindTwoDigitLo: {}, KindThreeDigitLo: {},
	KindDeSpecial: {}, KindDeFirst: {}, KindDeSecond: {}, KindDeThird: {},
	KindDeFourth: {}, KindDeFifth: {}, KindDeSixth: {}, KindDeSeventh: {},
	KindThreeDigitDirect: {}, KindParlay2: {}, KindParlay3: {}, KindParlay4: {},
}

// KnownKind reports whether k is one of the supported bet kinds.
func KnownKind(k WagerKind) bool {
	_, ok := allKinds[k]
	return ok
}

// DigitLen returns the required digit count for wagered numbers of kind k.
func (k WagerKind) DigitLen() int {
	switch k {
	case KindThreeDigitLo, KindThreeDigitDirect:
		return 3
	default:
		return 2
	}
}

// ParlaySize returns the required number count for parlay kinds, 0 otherwise.
func (k WagerKind) ParlaySize() int {
	switch k {
	case KindParlay2:
		return 2
	case KindParlay3:
		return 3
	case KindParlay4:
		return 4
	default:
		return 0
	}
}

func (k WagerKind) IsParlay() bool { return k.ParlaySize() > 0 }

// Stake is the total debited on placement: flat for parlays,
// amount per number otherwise.
func (k WagerKind) Stake(amount int64, numberCount int) int64 {
	if k.IsParlay() {
		return amount
	}
	return amount * int64(numberCount)
}
