package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lodelab/lode/internal/domain"
)

func testRates() *domain.RateTable {
	return &domain.RateTable{
		ID: 1,
		Rates: map[string]int64{
			"two_digit_lo":       70,
			"three_digit_lo":     600,
			"de_special":         70,
			"de_first":           70,
			"de_second":          70,
			"de_third":           70,
			"de_fourth":          70,
			"de_fifth":           70,
			"de_sixth":           70,
			"de_seventh":         70,
			"three_digit_direct": 400,
			"parlay_2":           10,
			"parlay_3":           40,
			"parlay_4":           100,
		},
	}
}

func TestSettle(t *testing.T) {
	draw := testDraw()
	rates := testRates()

	tests := []struct {
		name           string
		wager          domain.Wager
		expectedStatus string
		expectedPayout int64
		expectedRate   int64
	}{
		{
			name: "Two digit lo wins on a matching tail",
			wager: domain.Wager{
				Kind:     domain.KindTwoDigitLo,
				Numbers:  []string{"47"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 700000,
			expectedRate:   70,
		},
		{
			name: "Two digit lo pays once per number despite multiple tier hits",
			wager: domain.Wager{
				// "47" appears in the second, fourth, sixth and seventh
				// tiers but is still a single win.
				Kind:     domain.KindTwoDigitLo,
				Numbers:  []string{"47", "68", "11"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 1400000,
			expectedRate:   70,
		},
		{
			name: "Two digit lo loses when nothing matches",
			wager: domain.Wager{
				Kind:     domain.KindTwoDigitLo,
				Numbers:  []string{"11", "22"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.LostWagerStatus,
			expectedPayout: 0,
			expectedRate:   70,
		},
		{
			name: "Three digit lo wins on a three digit tail",
			wager: domain.Wager{
				Kind:     domain.KindThreeDigitLo,
				Numbers:  []string{"347"},
				Amount:   1000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 600000,
			expectedRate:   600,
		},
		{
			name: "De special wins against the special prize tail",
			wager: domain.Wager{
				Kind:     domain.KindDeSpecial,
				Numbers:  []string{"68"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 700000,
			expectedRate:   70,
		},
		{
			name: "De special ignores matches in other tiers",
			wager: domain.Wager{
				Kind:     domain.KindDeSpecial,
				Numbers:  []string{"47"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.LostWagerStatus,
			expectedPayout: 0,
			expectedRate:   70,
		},
		{
			name: "De first wins against the first prize tail",
			wager: domain.Wager{
				Kind:     domain.KindDeFirst,
				Numbers:  []string{"15"},
				Amount:   5000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 350000,
			expectedRate:   70,
		},
		{
			name: "De seventh matches any occurrence within the tier",
			wager: domain.Wager{
				Kind:     domain.KindDeSeventh,
				Numbers:  []string{"83"},
				Amount:   2000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 140000,
			expectedRate:   70,
		},
		{
			name: "Three digit direct wins only on the special prize tail",
			wager: domain.Wager{
				Kind:     domain.KindThreeDigitDirect,
				Numbers:  []string{"568"},
				Amount:   1000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 400000,
			expectedRate:   400,
		},
		{
			name: "Three digit direct loses on non-special matches",
			wager: domain.Wager{
				Kind:     domain.KindThreeDigitDirect,
				Numbers:  []string{"347"},
				Amount:   1000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.LostWagerStatus,
			expectedPayout: 0,
			expectedRate:   400,
		},
		{
			name: "Parlay wins when all numbers hit",
			wager: domain.Wager{
				Kind:     domain.KindParlay2,
				Numbers:  []string{"47", "68"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 100000,
			expectedRate:   10,
		},
		{
			name: "Parlay loses when any number misses",
			wager: domain.Wager{
				Kind:     domain.KindParlay2,
				Numbers:  []string{"27", "68"},
				Amount:   10000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.LostWagerStatus,
			expectedPayout: 0,
			expectedRate:   10,
		},
		{
			name: "Four leg parlay pays flat with no per-number accumulation",
			wager: domain.Wager{
				Kind:     domain.KindParlay4,
				Numbers:  []string{"47", "68", "15", "83"},
				Amount:   1000,
				DrawDate: "2024-11-20",
			},
			expectedStatus: domain.WonWagerStatus,
			expectedPayout: 100000,
			expectedRate:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Settle(&tt.wager, draw, rates)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, outcome.Status)
			assert.Equal(t, tt.expectedPayout, outcome.Payout)
			assert.Equal(t, tt.expectedRate, outcome.Rate)
		})
	}
}

func TestSettleErrors(t *testing.T) {
	draw := testDraw()

	t.Run("Date mismatch", func(t *testing.T) {
		wager := &domain.Wager{
			Kind:     domain.KindTwoDigitLo,
			Numbers:  []string{"47"},
			Amount:   10000,
			DrawDate: "2024-11-21",
		}
		_, err := Settle(wager, draw, testRates())
		assert.ErrorIs(t, err, ErrDateMismatch)
	})

	t.Run("Missing rate", func(t *testing.T) {
		wager := &domain.Wager{
			Kind:     domain.KindTwoDigitLo,
			Numbers:  []string{"47"},
			Amount:   10000,
			DrawDate: "2024-11-20",
		}
		rates := &domain.RateTable{Rates: map[string]int64{"de_special": 70}}
		_, err := Settle(wager, draw, rates)
		assert.ErrorIs(t, err, ErrMissingRate)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		wager := &domain.Wager{
			Kind:     domain.WagerKind("bao_lo"),
			Numbers:  []string{"47"},
			Amount:   10000,
			DrawDate: "2024-11-20",
		}
		rates := &domain.RateTable{Rates: map[string]int64{"bao_lo": 70}}
		_, err := Settle(wager, draw, rates)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}
