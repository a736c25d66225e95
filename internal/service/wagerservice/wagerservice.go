package wagerservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/pg"
	"github.com/lodelab/lode/pkg/validate"
)

type WagerRepo interface {
	Save(ctx context.Context, wager *domain.Wager) error
	FindByUserID(ctx context.Context, userID int) ([]domain.Wager, error)
}

type DrawRepo interface {
	FindByDate(ctx context.Context, date string) (*domain.DrawResult, error)
}

type Ledger interface {
	Debit(ctx context.Context, userID int, amount int64, wagerID *int) (*domain.Transaction, error)
}

// cutoff is when betting for the current date closes; the XSMB draw starts
// at 18:15 local time.
const (
	cutoffHour   = 18
	cutoffMinute = 15
)

type Service struct {
	wagerRepo WagerRepo
	drawRepo  DrawRepo
	ledger    Ledger
	txManager pg.TXManager
	loc       *time.Location
	now       func() time.Time
}

func New(wagerRepo WagerRepo, drawRepo DrawRepo, ledger Ledger, txManager pg.TXManager) *Service {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		zap.L().Warn("can't load draw timezone, falling back to UTC+7", zap.Error(err))
		loc = time.FixedZone("ICT", 7*60*60)
	}
	return &Service{
		wagerRepo: wagerRepo,
		drawRepo:  drawRepo,
		ledger:    ledger,
		txManager: txManager,
		loc:       loc,
		now:       time.Now,
	}
}

var (
	ErrInvalidNumbers   = errors.New("invalid wager numbers")
	ErrInvalidAmount    = errors.New("wager amount must be positive")
	ErrUnknownKind      = errors.New("unknown wager kind")
	ErrClosedForBetting = errors.New("betting is closed for this draw date")
)

// OpenDrawDate resolves the draw date new wagers are accepted for: today
// before the cutoff, tomorrow after. Placement and settlement for one date
// never race because wagers only ever target a date without a result.
func (s *Service) OpenDrawDate() string {
	now := s.now().In(s.loc)
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), cutoffHour, cutoffMinute, 0, 0, s.loc)
	if !now.Before(cutoff) {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format(domain.DateLayout)
}

// PlaceWager validates the wager, debits the stake and persists the wager
// record as one atomic unit. No partial state on failure.
func (s *Service) PlaceWager(ctx context.Context, userID int, kind domain.WagerKind, numbers []string, amount int64) (*domain.Wager, error) {
	if !domain.KnownKind(kind) {
		return nil, ErrUnknownKind
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := validateNumbers(kind, numbers); err != nil {
		return nil, err
	}

	drawDate := s.OpenDrawDate()
	result, err := s.drawRepo.FindByDate(ctx, drawDate)
	if err != nil {
		return nil, err
	}
	if result != nil {
		zap.L().Info("draw already has a result, betting closed", zap.String("drawDate", drawDate))
		return nil, ErrClosedForBetting
	}

	wager := &domain.Wager{
		UserID:   userID,
		Kind:     kind,
		Numbers:  numbers,
		Amount:   amount,
		Stake:    kind.Stake(amount, len(numbers)),
		DrawDate: drawDate,
		Status:   domain.PendingWagerStatus,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.wagerRepo.Save(ctx, wager); err != nil {
			zap.L().Error("can't save wager: ", zap.Error(err))
			return err
		}
		if _, err := s.ledger.Debit(ctx, userID, wager.Stake, &wager.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("wager placed",
		zap.Int("userID", userID),
		zap.String("kind", string(kind)),
		zap.String("drawDate", drawDate),
		zap.Int64("stake", wager.Stake),
	)
	return wager, nil
}

func (s *Service) GetWagers(ctx context.Context, userID int) ([]domain.Wager, error) {
	wagers, err := s.wagerRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wagers", zap.Error(err))
		return nil, err
	}
	return wagers, nil
}

func validateNumbers(kind domain.WagerKind, numbers []string) error {
	if len(numbers) == 0 {
		return ErrInvalidNumbers
	}
	if n := kind.ParlaySize(); n > 0 && len(numbers) != n {
		return ErrInvalidNumbers
	}
	if !validate.Distinct(numbers) {
		return ErrInvalidNumbers
	}
	digits := kind.DigitLen()
	for _, num := range numbers {
		if !validate.IsDigits(num, digits) {
			return ErrInvalidNumbers
		}
	}
	return nil
}
