package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
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

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance
        FROM balances
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// GetUserBalanceForUpdate reads the balance row with a FOR UPDATE lock.
// Inside a transaction the row stays locked until commit, so a concurrent
// mutation for the same user blocks here and then sees the committed value.
func (r *Repository) GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance
        FROM balances
        WHERE user_id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, current_balance)
        VALUES ($1, 0)
        RETURNING id, user_id, current_balance
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Current)
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) UpdateUserBalance(ctx context.Context, userID int, current int64) (*domain.Balance, error) {
	var updated domain.Balance
	query := `
		UPDATE balances
		SET current_balance = $1
		WHERE user_id = $2
		RETURNING id, user_id, current_balance
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, current, userID)
		err := row.Scan(&updated.ID, &updated.UserID, &updated.Current)
		if err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &updated, nil
}
