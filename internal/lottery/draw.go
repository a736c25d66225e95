package lottery

import (
	"fmt"

	"github.com/lodelab/lode/internal/domain"
)

type Tier string

const (
	TierSpecial Tier = "special"
	TierFirst   Tier = "first"
	TierSecond  Tier = "second"
	TierThird   Tier = "third"
	TierFourth  Tier = "fourth"
	TierFifth   Tier = "fifth"
	TierSixth   Tier = "sixth"
	TierSeventh Tier = "seventh"
)

// tierSizes is the official XSMB prize structure: 27 numbers across 8 tiers.
var tierSizes = map[Tier]int{
	TierSpecial: 1,
	TierFirst:   1,
	TierSecond:  2,
	TierThird:   6,
	TierFourth:  4,
	TierFifth:   6,
	TierSixth:   3,
	TierSeventh: 4,
}

var deKindTier = map[domain.WagerKind]Tier{
	domain.KindDeSpecial: TierSpecial,
	domain.KindDeFirst:   TierFirst,
	domain.KindDeSecond:  TierSecond,
	domain.KindDeThird:   TierThird,
	domain.KindDeFourth:  TierFourth,
	domain.KindDeFifth:   TierFifth,
	domain.KindDeSixth:   TierSixth,
	domain.KindDeSeventh: TierSeventh,
}

// TierNumbers returns the winning numbers of one tier, in published order.
func TierNumbers(d *domain.DrawResult, tier Tier) []string {
	switch tier {
	case TierSpecial:
		return []string{d.Special}
	case TierFirst:
		return []string{d.First}
	case TierSecond:
		return d.Second
	case TierThird:
		return d.Third
	case TierFourth:
		return d.Fourth
	case TierFifth:
		return d.Fifth
	case TierSixth:
		return d.Sixth
	case TierSeventh:
		return d.Seventh
	}
	return nil
}

var tierOrder = []Tier{
	TierSpecial, TierFirst, TierSecond, TierThird,
	TierFourth, TierFifth, TierSixth, TierSeventh,
}

// AllNumbers returns all 27 winning numbers in tier order.
func AllNumbers(d *domain.DrawResult) []string {
	nums := make([]string, 0, 27)
	for _, tier := range tierOrder {
		nums = append(nums, TierNumbers(d, tier)...)
	}
	return nums
}

// ValidateDraw checks the tier cardinality of a draw result.
func ValidateDraw(d *domain.DrawResult) error {
	for _, tier := range tierOrder {
		nums := TierNumbers(d, tier)
		if len(nums) != tierSizes[tier] {
			return fmt.Errorf("tier %s: expected %d numbers, got %d", tier, tierSizes[tier], len(nums))
		}
		for _, n := range nums {
			if n == "" {
				return fmt.Errorf("tier %s: empty prize number", tier)
			}
		}
	}
	return nil
}

// tail returns the trailing n digits of s; false when s is shorter than n.
func tail(s string, n int) (string, bool) {
	if len(s) < n {
		return "", false
	}
	return s[len(s)-n:], true
}

// Tails is the derived lo view over a draw: the trailing n digits of every
// prize number in tier order, skipping numbers shorter than n.
func Tails(d *domain.DrawResult, n int) []string {
	nums := AllNumbers(d)
	tails := make([]string, 0, len(nums))
	for _, num := range nums {
		if t, ok := tail(num, n); ok {
			tails = append(tails, t)
		}
	}
	return tails
}
