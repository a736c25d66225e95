package raterepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Current returns the rate table in effect now. Tables are never updated in
// place: SetRates appends a new version.
func (r *Repository) Current(ctx context.Context) (*domain.RateTable, error) {
	query := `
        SELECT id, rates, effective_from
        FROM rate_tables
        WHERE effective_from <= now()
        ORDER BY effective_from DESC, id DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query)

	var table domain.RateTable
	err := row.Scan(&table.ID, &table.Rates, &table.EffectiveFrom)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't get current rate table", zap.Error(err))
		return nil, err
	}
	return &table, nil
}

func (r *Repository) Save(ctx context.Context, table *domain.RateTable) error {
	query := `
        INSERT INTO rate_tables (rates)
        VALUES ($1)
        RETURNING id, effective_from
    `
	row := r.db.QueryRow(ctx, query, table.Rates)
	if err := row.Scan(&table.ID, &table.EffectiveFrom); err != nil {
		zap.L().Error("can't save rate table", zap.Error(err))
		return err
	}
	return nil
}
