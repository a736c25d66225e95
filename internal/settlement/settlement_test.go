package settlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockWagerRepo, *MockDrawRepo, *MockRateRepo, *MockLedger, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	wagerRepo := NewMockWagerRepo(ctrl)
	drawRepo := NewMockDrawRepo(ctrl)
	rateRepo := NewMockRateRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(wagerRepo, drawRepo, rateRepo, ledger, txManager)
	defer ctrl.Finish()
	return service, wagerRepo, drawRepo, rateRepo, ledger, txManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func testDraw() *domain.DrawResult {
	return &domain.DrawResult{
		DrawDate: "2024-11-20",
		Special:  "92568",
		First:    "37815",
		Second:   []string{"52847", "91236"},
		Third:    []string{"40517", "82649", "13957", "60238", "75926", "28401"},
		Fourth:   []string{"1947", "6350", "4782", "9013"},
		Fifth:    []string{"5524", "8167", "3390", "7245", "0861", "4473"},
		Sixth:    []string{"347", "128", "905"},
		Seventh:  []string{"47", "83", "20", "56"},
	}
}

func testRates() *domain.RateTable {
	return &domain.RateTable{
		ID: 1,
		Rates: map[string]int64{
			"two_digit_lo": 70,
			"de_special":   70,
		},
	}
}

func TestSettle(t *testing.T) {
	t.Run("No result for date", func(t *testing.T) {
		service, _, drawRepo, _, _, _ := NewMock(t)
		drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(nil, nil)

		report, err := service.Settle(context.Background(), "2024-11-20")
		assert.ErrorIs(t, err, ErrNoResult)
		assert.Nil(t, report)
	})

	t.Run("No rate table", func(t *testing.T) {
		service, _, drawRepo, rateRepo, _, _ := NewMock(t)
		drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(testDraw(), nil)
		rateRepo.EXPECT().Current(gomock.Any()).Return(nil, nil)

		report, err := service.Settle(context.Background(), "2024-11-20")
		assert.ErrorIs(t, err, ErrNoRates)
		assert.Nil(t, report)
	})

	t.Run("Settles winners and losers in one batch", func(t *testing.T) {
		service, wagerRepo, drawRepo, rateRepo, ledger, txManager := NewMock(t)
		passthroughTx(txManager)

		drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(testDraw(), nil)
		rateRepo.EXPECT().Current(gomock.Any()).Return(testRates(), nil)
		wagerRepo.EXPECT().FindPendingByDate(gomock.Any(), "2024-11-20").Return([]domain.Wager{
			{ID: 1, UserID: 10, Kind: domain.KindTwoDigitLo, Numbers: []string{"47"}, Amount: 10000, DrawDate: "2024-11-20"},
			{ID: 2, UserID: 11, Kind: domain.KindTwoDigitLo, Numbers: []string{"11"}, Amount: 10000, DrawDate: "2024-11-20"},
		}, nil)

		wagerRepo.EXPECT().
			MarkSettled(gomock.Any(), 1, domain.WonWagerStatus, int64(700000), int64(70)).
			Return(true, nil)
		wagerRepo.EXPECT().
			MarkSettled(gomock.Any(), 2, domain.LostWagerStatus, int64(0), int64(70)).
			Return(true, nil)
		ledger.EXPECT().Credit(gomock.Any(), 10, int64(700000), gomock.Any()).Return(&domain.Transaction{}, nil)

		report, err := service.Settle(context.Background(), "2024-11-20")
		assert.NoError(t, err)
		assert.Equal(t, 2, report.Count)
		assert.Equal(t, 1, report.Won)
		assert.Equal(t, int64(700000), report.TotalPayout)
		assert.Equal(t, 0, report.Skipped)
	})

	t.Run("Second run never double-credits", func(t *testing.T) {
		service, wagerRepo, drawRepo, rateRepo, _, txManager := NewMock(t)
		passthroughTx(txManager)

		drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(testDraw(), nil)
		rateRepo.EXPECT().Current(gomock.Any()).Return(testRates(), nil)
		wagerRepo.EXPECT().FindPendingByDate(gomock.Any(), "2024-11-20").Return([]domain.Wager{
			{ID: 1, UserID: 10, Kind: domain.KindTwoDigitLo, Numbers: []string{"47"}, Amount: 10000, DrawDate: "2024-11-20"},
		}, nil)

		// Another run already flipped the wager out of pending: no credit,
		// no report entry.
		wagerRepo.EXPECT().
			MarkSettled(gomock.Any(), 1, domain.WonWagerStatus, int64(700000), int64(70)).
			Return(false, nil)

		report, err := service.Settle(context.Background(), "2024-11-20")
		assert.NoError(t, err)
		assert.Equal(t, 0, report.Count)
		assert.Equal(t, 0, report.Won)
		assert.Equal(t, int64(0), report.TotalPayout)
	})

	t.Run("Missing rate skips the wager and keeps the batch going", func(t *testing.T) {
		service, wagerRepo, drawRepo, rateRepo, _, txManager := NewMock(t)
		passthroughTx(txManager)

		drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(testDraw(), nil)
		rateRepo.EXPECT().Current(gomock.Any()).Return(testRates(), nil)
		wagerRepo.EXPECT().FindPendingByDate(gomock.Any(), "2024-11-20").Return([]domain.Wager{
			{ID: 1, UserID: 10, Kind: domain.KindParlay2, Numbers: []string{"47", "68"}, Amount: 10000, DrawDate: "2024-11-20"},
			{ID: 2, UserID: 11, Kind: domain.KindTwoDigitLo, Numbers: []string{"11"}, Amount: 10000, DrawDate: "2024-11-20"},
		}, nil)

		wagerRepo.EXPECT().
			MarkSettled(gomock.Any(), 2, domain.LostWagerStatus, int64(0), int64(70)).
			Return(true, nil)

		report, err := service.Settle(context.Background(), "2024-11-20")
		assert.NoError(t, err)
		assert.Equal(t, 1, report.Count)
		assert.Equal(t, 1, report.Skipped)
	})
}

func TestSweep(t *testing.T) {
	service, wagerRepo, drawRepo, rateRepo, _, txManager := NewMock(t)
	passthroughTx(txManager)

	wagerRepo.EXPECT().PendingDates(gomock.Any()).Return([]string{"2024-11-20", "2024-11-21"}, nil)

	// One date has a published result, the other is left for the next pass.
	drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-20").Return(testDraw(), nil)
	rateRepo.EXPECT().Current(gomock.Any()).Return(testRates(), nil)
	wagerRepo.EXPECT().FindPendingByDate(gomock.Any(), "2024-11-20").Return(nil, nil)
	drawRepo.EXPECT().FindByDate(gomock.Any(), "2024-11-21").Return(nil, nil)

	service.sweep(context.Background())
}

func TestStart(t *testing.T) {
	service, _, _, _, _, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	cancel()
}
