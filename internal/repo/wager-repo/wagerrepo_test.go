package wagerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()
}

func TestRepository_Save(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	passthroughTx(txManager)

	query := regexp.QuoteMeta(`
        INSERT INTO wagers (user_id, kind, numbers, amount, stake, draw_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully saves wager",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now())
				mock.ExpectQuery(query).
					WithArgs(1, "two_digit_lo", []string{"47", "68"}, int64(10000), int64(20000), "2024-11-20", "pending").
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(1, "two_digit_lo", []string{"47", "68"}, int64(10000), int64(20000), "2024-11-20", "pending").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			wager := &domain.Wager{
				UserID:   1,
				Kind:     domain.KindTwoDigitLo,
				Numbers:  []string{"47", "68"},
				Amount:   10000,
				Stake:    20000,
				DrawDate: "2024-11-20",
				Status:   domain.PendingWagerStatus,
			}
			err := repo.Save(context.Background(), wager)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, wager.ID)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT id, user_id, kind, numbers, amount, stake, draw_date, status, payout, rate_value, created_at, settled_at
        FROM wagers
        WHERE user_id = $1
        ORDER BY created_at DESC`)

	createdAt := time.Now()
	drawDate := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "user_id", "kind", "numbers", "amount", "stake", "draw_date", "status", "payout", "rate_value", "created_at", "settled_at"}).
		AddRow(1, 1, "two_digit_lo", []string{"47"}, int64(10000), int64(10000), drawDate, "won", int64(700000), int64(70), createdAt, &createdAt).
		AddRow(2, 1, "parlay_2", []string{"27", "68"}, int64(5000), int64(5000), drawDate, "pending", int64(0), int64(0), createdAt, nil)
	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)

	wagers, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, wagers, 2)
	assert.Equal(t, "2024-11-20", wagers[0].DrawDate)
	assert.Equal(t, domain.KindTwoDigitLo, wagers[0].Kind)
	assert.Equal(t, int64(700000), wagers[0].Payout)
	assert.Nil(t, wagers[1].SettledAt)
}

func TestRepository_FindPendingByDate(t *testing.T) {
	repo, mock, _ := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT id, user_id, kind, numbers, amount, stake, draw_date, status, payout, rate_value, created_at, settled_at
        FROM wagers
        WHERE status = 'pending' AND draw_date = $1
        ORDER BY created_at ASC`)

	drawDate := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "user_id", "kind", "numbers", "amount", "stake", "draw_date", "status", "payout", "rate_value", "created_at", "settled_at"}).
		AddRow(3, 2, "de_special", []string{"68"}, int64(10000), int64(10000), drawDate, "pending", int64(0), int64(0), time.Now(), nil)
	mock.ExpectQuery(query).WithArgs("2024-11-20").WillReturnRows(rows)

	wagers, err := repo.FindPendingByDate(context.Background(), "2024-11-20")
	assert.NoError(t, err)
	assert.Len(t, wagers, 1)
	assert.Equal(t, domain.PendingWagerStatus, wagers[0].Status)
}

func TestRepository_PendingDates(t *testing.T) {
	repo, mock, _ := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT DISTINCT draw_date
        FROM wagers
        WHERE status = 'pending'
        ORDER BY draw_date ASC`)

	rows := pgxmock.NewRows([]string{"draw_date"}).
		AddRow(time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)).
		AddRow(time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(query).WillReturnRows(rows)

	dates, err := repo.PendingDates(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-11-20", "2024-11-21"}, dates)
}

func TestRepository_MarkSettled(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	passthroughTx(txManager)

	query := regexp.QuoteMeta(`
        UPDATE wagers
        SET status = $1, payout = $2, rate_value = $3, settled_at = now()
        WHERE id = $4 AND status = 'pending'`)

	tests := []struct {
		name      string
		mockSetup func()
		settled   bool
		expectErr bool
	}{
		{
			name: "Pending wager transitions",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("won", int64(700000), int64(70), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			settled: true,
		},
		{
			name: "Already settled wager is left alone",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("won", int64(700000), int64(70), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			settled: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("won", int64(700000), int64(70), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			settled, err := repo.MarkSettled(context.Background(), 1, domain.WonWagerStatus, 700000, 70)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.settled, settled)
			}
		})
	}
}
