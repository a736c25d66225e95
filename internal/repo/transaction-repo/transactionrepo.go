package transactionrepo

import (
	"context"

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

// Save appends one transaction to the log. The log is append-only: there is
// no update or delete path in this repository.
func (r *Repository) Save(ctx context.Context, t *domain.Transaction) error {
	query := `
        INSERT INTO transactions (user_id, type, amount, wager_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, t.UserID, t.Type, t.Amount, t.WagerID)
		if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
			zap.L().Error("can't save transaction", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
        SELECT id, user_id, type, amount, wager_id, created_at
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.WagerID, &t.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// SumByUserID recomputes the balance projection from the log.
func (r *Repository) SumByUserID(ctx context.Context, userID int) (int64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE user_id = $1
    `
	var sum int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		zap.L().Error("can't sum transactions", zap.Error(err))
		return 0, err
	}
	return sum, nil
}
