package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
)

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	UpdateUserBalance(ctx context.Context, userID int, current int64) (*domain.Balance, error)
}

type TransactionRepo interface {
	Save(ctx context.Context, t *domain.Transaction) error
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
	SumByUserID(ctx context.Context, userID int) (int64, error)
}

// Service is the ledger: an append-only transaction log plus a cached
// balance projection. Same-user mutations serialize on the balance row
// lock taken by GetUserBalanceForUpdate: when a mutation runs inside an
// enclosing transaction (wager placement, settlement) the row stays locked
// until that transaction commits, so {read balance, validate, write
// transaction, write balance} and the commit form one unit. The per-user
// mutex on top keeps in-process callers from piling up on the DB lock.
type Service struct {
	balanceRepo BalanceRepo
	txRepo      TransactionRepo
	txManager   pg.TXManager

	userLocks sync.Map
}

func New(balanceRepo BalanceRepo, txRepo TransactionRepo, txManager pg.TXManager) *Service {
	return &Service{
		balanceRepo: balanceRepo,
		txRepo:      txRepo,
		txManager:   txManager,
	}
}

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoBalance         = errors.New("no balance for user")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

func (s *Service) lockUser(userID int) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

// Debit atomically appends a negative stake transaction and updates the
// cached balance. Fails with ErrInsufficientFunds before any mutation if
// the resulting balance would go negative.
func (s *Service) Debit(ctx context.Context, userID int, amount int64, wagerID *int) (*domain.Transaction, error) {
	return s.apply(ctx, userID, domain.StakeTransaction, -amount, wagerID)
}

// Credit appends a positive payout transaction for a settled wager.
func (s *Service) Credit(ctx context.Context, userID int, amount int64, wagerID *int) (*domain.Transaction, error) {
	return s.apply(ctx, userID, domain.PayoutTransaction, amount, wagerID)
}

func (s *Service) Deposit(ctx context.Context, userID int, amount int64) (*domain.Transaction, error) {
	return s.apply(ctx, userID, domain.DepositTransaction, amount, nil)
}

func (s *Service) Withdraw(ctx context.Context, userID int, amount int64) (*domain.Transaction, error) {
	return s.apply(ctx, userID, domain.WithdrawTransaction, -amount, nil)
}

func (s *Service) apply(ctx context.Context, userID int, txType string, amount int64, wagerID *int) (*domain.Transaction, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}

	unlock := s.lockUser(userID)
	defer unlock()

	t := &domain.Transaction{
		UserID:  userID,
		Type:    txType,
		Amount:  amount,
		WagerID: wagerID,
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID)
		if err != nil {
			zap.L().Error("failed to lock balance", zap.Error(err))
			return err
		}
		if balance == nil {
			return fmt.Errorf("%w: %d", ErrNoBalance, userID)
		}

		next := balance.Current + amount
		if next < 0 {
			return ErrInsufficientFunds
		}

		if err := s.txRepo.Save(ctx, t); err != nil {
			return err
		}
		if _, err := s.balanceRepo.UpdateUserBalance(ctx, userID, next); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// BalanceOf returns the cached projection.
func (s *Service) BalanceOf(ctx context.Context, userID int) (int64, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	if balance == nil {
		return 0, fmt.Errorf("%w: %d", ErrNoBalance, userID)
	}
	return balance.Current, nil
}

func (s *Service) Transactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.txRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

// VerifyBalance checks that the cached projection equals the recomputed sum
// of the transaction log.
func (s *Service) VerifyBalance(ctx context.Context, userID int) (bool, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return false, err
	}
	if balance == nil {
		return false, fmt.Errorf("%w: %d", ErrNoBalance, userID)
	}
	sum, err := s.txRepo.SumByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance.Current == sum, nil
}
