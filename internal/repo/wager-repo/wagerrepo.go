package wagerrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Save(ctx context.Context, wager *domain.Wager) error {
	query := `
        INSERT INTO wagers (user_id, kind, numbers, amount, stake, draw_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			wager.UserID, string(wager.Kind), wager.Numbers, wager.Amount,
			wager.Stake, wager.DrawDate, wager.Status)
		if err := row.Scan(&wager.ID, &wager.CreatedAt); err != nil {
			zap.L().Error("can't save wager", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Wager, error) {
	query := `
        SELECT id, user_id, kind, numbers, amount, stake, draw_date, status, payout, rate_value, created_at, settled_at
        FROM wagers
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get wagers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanWagers(rows)
}

func (r *Repository) FindPendingByDate(ctx context.Context, date string) ([]domain.Wager, error) {
	query := `
        SELECT id, user_id, kind, numbers, amount, stake, draw_date, status, payout, rate_value, created_at, settled_at
        FROM wagers
        WHERE status = 'pending' AND draw_date = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		zap.L().Error("can't get pending wagers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanWagers(rows)
}

// PendingDates lists distinct draw dates that still have pending wagers.
func (r *Repository) PendingDates(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT draw_date
        FROM wagers
        WHERE status = 'pending'
        ORDER BY draw_date ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get pending draw dates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			zap.L().Error("can't scan pending date", zap.Error(err))
			return nil, err
		}
		dates = append(dates, d.Format(domain.DateLayout))
	}
	return dates, nil
}

// MarkSettled transitions a wager out of pending. The status guard makes the
// transition fire at most once; false means the wager was already settled.
func (r *Repository) MarkSettled(ctx context.Context, wagerID int, status string, payout, rateValue int64) (bool, error) {
	query := `
        UPDATE wagers
        SET status = $1, payout = $2, rate_value = $3, settled_at = now()
        WHERE id = $4 AND status = 'pending'
    `
	var settled bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, status, payout, rateValue, wagerID)
		if err != nil {
			zap.L().Error("failed to settle wager", zap.Error(err))
			return err
		}
		settled = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return settled, nil
}

func scanWagers(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]domain.Wager, error) {
	var wagers []domain.Wager
	for rows.Next() {
		var w domain.Wager
		var drawDate time.Time
		err := rows.Scan(&w.ID, &w.UserID, &w.Kind, &w.Numbers, &w.Amount, &w.Stake,
			&drawDate, &w.Status, &w.Payout, &w.RateValue, &w.CreatedAt, &w.SettledAt)
		if err != nil {
			zap.L().Error("can't scan wager row", zap.Error(err))
			return nil, err
		}
		w.DrawDate = drawDate.Format(domain.DateLayout)
		wagers = append(wagers, w)
	}
	return wagers, nil
}
