package drawrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

// ErrDuplicateDate is returned when a result for the date is already stored.
var ErrDuplicateDate = errors.New("draw result exists for date")

const uniqueViolationCode = "23505"

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

// Save stores a finalized draw result. The unique constraint on draw_date
// keeps results immutable: a second publish for the same date fails.
func (r *Repository) Save(ctx context.Context, d *domain.DrawResult) error {
	query := `
        INSERT INTO draw_results (draw_date, special, first_prize, second_prize, third_prize, fourth_prize, fifth_prize, sixth_prize, seventh_prize)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			d.DrawDate, d.Special, d.First, d.Second, d.Third,
			d.Fourth, d.Fifth, d.Sixth, d.Seventh)
		if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return ErrDuplicateDate
			}
			zap.L().Error("can't save draw result", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByDate(ctx context.Context, date string) (*domain.DrawResult, error) {
	query := `
        SELECT id, draw_date, special, first_prize, second_prize, third_prize, fourth_prize, fifth_prize, sixth_prize, seventh_prize, created_at
        FROM draw_results
        WHERE draw_date = $1
    `
	row := r.db.QueryRow(ctx, query, date)

	var d domain.DrawResult
	var drawDate time.Time
	err := row.Scan(&d.ID, &drawDate, &d.Special, &d.First, &d.Second, &d.Third,
		&d.Fourth, &d.Fifth, &d.Sixth, &d.Seventh, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find draw result", zap.Error(err))
		return nil, err
	}
	d.DrawDate = drawDate.Format(domain.DateLayout)
	return &d, nil
}
