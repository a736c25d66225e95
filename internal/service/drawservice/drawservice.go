package drawservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/lottery"
	drawrepo "github.com/lodelab/lode/internal/repo/draw-repo"
)

type DrawRepo interface {
	Save(ctx context.Context, d *domain.DrawResult) error
	FindByDate(ctx context.Context, date string) (*domain.DrawResult, error)
}

type RateRepo interface {
	Current(ctx context.Context) (*domain.RateTable, error)
	Save(ctx context.Context, table *domain.RateTable) error
}

type Service struct {
	drawRepo DrawRepo
	rateRepo RateRepo
}

func New(drawRepo DrawRepo, rateRepo RateRepo) *Service {
	return &Service{
		drawRepo: drawRepo,
		rateRepo: rateRepo,
	}
}

var (
	ErrResultExists    = errors.New("draw result already published for date")
	ErrMalformedResult = errors.New("malformed draw result")
	ErrNoRates         = errors.New("no rate table configured")
	ErrUnknownKind     = errors.New("unknown wager kind in rate table")
	ErrInvalidRate     = errors.New("rate must be positive")
)

// PublishResult stores a finalized draw result. Results are immutable and
// unique per date; a second publish for the same date is rejected.
func (s *Service) PublishResult(ctx context.Context, d *domain.DrawResult) error {
	if _, err := time.Parse(domain.DateLayout, d.DrawDate); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrMalformedResult, d.DrawDate)
	}
	if err := lottery.ValidateDraw(d); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	existing, err := s.drawRepo.FindByDate(ctx, d.DrawDate)
	if err != nil {
		return err
	}
	if existing != nil {
		zap.L().Info("draw result already published", zap.String("drawDate", d.DrawDate))
		return ErrResultExists
	}

	if err := s.drawRepo.Save(ctx, d); err != nil {
		// Two concurrent publishes can both pass the FindByDate check; the
		// loser hits the unique constraint instead.
		if errors.Is(err, drawrepo.ErrDuplicateDate) {
			zap.L().Info("draw result already published", zap.String("drawDate", d.DrawDate))
			return ErrResultExists
		}
		zap.L().Error("can't save draw result: ", zap.Error(err))
		return err
	}

	zap.L().Info("draw result published", zap.String("drawDate", d.DrawDate), zap.String("special", d.Special))
	return nil
}

func (s *Service) ResultByDate(ctx context.Context, date string) (*domain.DrawResult, error) {
	result, err := s.drawRepo.FindByDate(ctx, date)
	if err != nil {
		zap.L().Error("failed to get draw result", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *Service) CurrentRates(ctx context.Context) (*domain.RateTable, error) {
	table, err := s.rateRepo.Current(ctx)
	if err != nil {
		zap.L().Error("failed to get rate table", zap.Error(err))
		return nil, err
	}
	if table == nil {
		return nil, ErrNoRates
	}
	return table, nil
}

// SetRates appends a new rate table version effective immediately. Wagers
// settled afterwards use the new rates regardless of placement time.
func (s *Service) SetRates(ctx context.Context, rates map[string]int64) (*domain.RateTable, error) {
	if len(rates) == 0 {
		return nil, ErrInvalidRate
	}
	for kind, rate := range rates {
		if !domain.KnownKind(domain.WagerKind(kind)) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRate, kind)
		}
	}

	table := &domain.RateTable{Rates: rates}
	if err := s.rateRepo.Save(ctx, table); err != nil {
		zap.L().Error("can't save rate table: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("rate table updated", zap.Int("version", table.ID))
	return table, nil
}
