package lottery

import (
	"errors"
	"fmt"

	"github.com/lodelab/lode/internal/domain"
)

var (
	ErrDateMismatch = errors.New("draw result date does not match wager draw date")
	ErrMissingRate  = errors.New("rate table has no entry for wager kind")
	ErrUnknownKind  = errors.New("unknown wager kind")
)

type Outcome struct {
	Status string
	Payout int64
	Rate   int64
}

// Settle evaluates one pending wager against a finalized draw result.
// Pure: no side effects, the caller commits status and payout.
func Settle(w *domain.Wager, d *domain.DrawResult, rates *domain.RateTable) (Outcome, error) {
	if w.DrawDate != d.DrawDate {
		return Outcome{}, fmt.Errorf("%w: wager %s, draw %s", ErrDateMismatch, w.DrawDate, d.DrawDate)
	}
	rate, ok := rates.Rate(w.Kind)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrMissingRate, w.Kind)
	}

	var payout int64
	switch {
	case w.Kind == domain.KindTwoDigitLo || w.Kind == domain.KindThreeDigitLo:
		// Each number is an independent sub-wager staking Amount.
		// A number matching several tiers still pays once.
		for _, num := range w.Numbers {
			if matchAny(d, num) {
				payout += rate * w.Amount
			}
		}
	case w.Kind == domain.KindThreeDigitDirect:
		for _, num := range w.Numbers {
			if t, ok := tail(d.Special, 3); ok && t == num {
				payout += rate * w.Amount
			}
		}
	case w.Kind.IsParlay():
		// All numbers must hit for a flat payout.
		won := true
		for _, num := range w.Numbers {
			if !matchAny(d, num) {
				won = false
				break
			}
		}
		if won {
			payout = rate * w.Amount
		}
	default:
		tier, ok := deKindTier[w.Kind]
		if !ok {
			return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownKind, w.Kind)
		}
		for _, num := range w.Numbers {
			if matchTier(d, tier, num) {
				payout += rate * w.Amount
			}
		}
	}

	status := domain.LostWagerStatus
	if payout > 0 {
		status = domain.WonWagerStatus
	}
	return Outcome{Status: status, Payout: payout, Rate: rate}, nil
}

// matchAny reports whether num equals the trailing digits of any of the 27
// winning numbers. Prize numbers shorter than num are skipped.
func matchAny(d *domain.DrawResult, num string) bool {
	for _, prize := range AllNumbers(d) {
		if t, ok := tail(prize, len(num)); ok && t == num {
			return true
		}
	}
	return false
}

// matchTier reports whether num equals the trailing digits of any occurrence
// within the named tier.
func matchTier(d *domain.DrawResult, tier Tier, num string) bool {
	for _, prize := range TierNumbers(d, tier) {
		if t, ok := tail(prize, len(num)); ok && t == num {
			return true
		}
	}
	return false
}
