package settlement

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/lottery"
	"github.com/lodelab/lode/internal/pg"
)

type WagerRepo interface {
	FindPendingByDate(ctx context.Context, date string) ([]domain.Wager, error)
	PendingDates(ctx context.Context) ([]string, error)
	MarkSettled(ctx context.Context, wagerID int, status string, payout, rateValue int64) (bool, error)
}

type DrawRepo interface {
	FindByDate(ctx context.Context, date string) (*domain.DrawResult, error)
}

type RateRepo interface {
	Current(ctx context.Context) (*domain.RateTable, error)
}

type Ledger interface {
	Credit(ctx context.Context, userID int, amount int64, wagerID *int) (*domain.Transaction, error)
}

var settlingWagers sync.Map

var (
	ErrNoResult = errors.New("no draw result for date")
	ErrNoRates  = errors.New("no rate table configured")
)

// Report summarizes one settlement batch. Skipped wagers stay pending and
// are flagged in the log for manual review.
type Report struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	Won         int    `json:"won"`
	TotalPayout int64  `json:"total_payout"`
	Skipped     int    `json:"skipped"`
}

// Service settles pending wagers against published draw results. It runs a
// periodic sweep and also settles on demand via Settle.
type Service struct {
	wagerRepo     WagerRepo
	drawRepo      DrawRepo
	rateRepo      RateRepo
	ledger        Ledger
	txManager     pg.TXManager
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(wagerRepo WagerRepo, drawRepo DrawRepo, rateRepo RateRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		wagerRepo:     wagerRepo,
		drawRepo:      drawRepo,
		rateRepo:      rateRepo,
		ledger:        ledger,
		txManager:     txManager,
		workerPool:    NewWorkerPool(10),
		sweepInterval: time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settlement service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settlement service")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep settles every pending date that already has a published result.
// Dates without a result are left for the next pass.
func (s *Service) sweep(ctx context.Context) {
	dates, err := s.wagerRepo.PendingDates(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch pending draw dates", zap.Error(err))
		return
	}

	for _, date := range dates {
		report, err := s.Settle(ctx, date)
		if err != nil {
			if errors.Is(err, ErrNoResult) {
				continue
			}
			zap.L().Error("Failed to settle draw date", zap.String("drawDate", date), zap.Error(err))
			continue
		}
		if report.Count > 0 {
			zap.L().Info("Settled draw date",
				zap.String("drawDate", date),
				zap.Int("count", report.Count),
				zap.Int64("totalPayout", report.TotalPayout),
			)
		}
	}
}

// Settle runs the settlement batch for one date. Idempotent: wagers already
// out of pending are never touched again, so re-running never double-credits.
func (s *Service) Settle(ctx context.Context, date string) (*Report, error) {
	draw, err := s.drawRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if draw == nil {
		return nil, ErrNoResult
	}

	rates, err := s.rateRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		return nil, ErrNoRates
	}

	wagers, err := s.wagerRepo.FindPendingByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &Report{Date: date}
	var mu sync.Mutex

	var g errgroup.Group
	for _, wager := range wagers {
		wager := wager

		if _, loaded := settlingWagers.LoadOrStore(wager.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			done := make(chan error, 1)
			err := s.workerPool.AddTask(ctx, func() error {
				defer settlingWagers.Delete(wager.ID)
				err := s.settleWager(ctx, wager, draw, rates, report, &mu)
				done <- err
				return err
			})
			if err != nil {
				settlingWagers.Delete(wager.ID)
				return err
			}
			// The report is only complete once every task has run.
			return <-done
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error settling wagers", zap.Error(err))
		return report, err
	}
	return report, nil
}

func (s *Service) settleWager(ctx context.Context, wager domain.Wager, draw *domain.DrawResult, rates *domain.RateTable, report *Report, mu *sync.Mutex) error {
	outcome, err := lottery.Settle(&wager, draw, rates)
	if err != nil {
		// Flagged for manual review; the batch keeps going.
		zap.L().Warn("Wager skipped during settlement",
			zap.Int("wagerID", wager.ID),
			zap.String("kind", string(wager.Kind)),
			zap.Error(err),
		)
		mu.Lock()
		report.Skipped++
		mu.Unlock()
		return nil
	}

	var settled bool
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		settled, err = s.wagerRepo.MarkSettled(ctx, wager.ID, outcome.Status, outcome.Payout, outcome.Rate)
		if err != nil {
			return err
		}
		if !settled {
			// Already settled by an earlier run.
			return nil
		}
		if outcome.Status == domain.WonWagerStatus {
			if _, err := s.ledger.Credit(ctx, wager.UserID, outcome.Payout, &wager.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !settled {
		return nil
	}

	mu.Lock()
	report.Count++
	if outcome.Status == domain.WonWagerStatus {
		report.Won++
		report.TotalPayout += outcome.Payout
	}
	mu.Unlock()
	return nil
}
