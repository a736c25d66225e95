package kqxs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/lodelab/lode/internal/config"
	"github.com/lodelab/lode/internal/domain"
	"github.com/lodelab/lode/internal/service/drawservice"
	"github.com/lodelab/lode/internal/settlement"
	"github.com/lodelab/lode/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type DrawService interface {
	PublishResult(ctx context.Context, d *domain.DrawResult) error
}

type Settler interface {
	Settle(ctx context.Context, date string) (*settlement.Report, error)
}

// Service fetches the daily XSMB result from the upstream feed on a cron
// schedule, publishes it and triggers settlement for the date.
type Service struct {
	url     string
	spec    string
	draws   DrawService
	settler Settler
	client  clients.HTTPClientI
	cron    *cron.Cron
	loc     *time.Location
}

func New(cfg *config.Config, draws DrawService, settler Settler, client clients.HTTPClientI) *Service {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		zap.L().Warn("can't load draw timezone, falling back to UTC+7", zap.Error(err))
		loc = time.FixedZone("ICT", 7*60*60)
	}
	return &Service{
		url:     cfg.FeedAddress,
		spec:    cfg.FetchSpec,
		draws:   draws,
		settler: settler,
		client:  client,
		cron:    cron.New(cron.WithLocation(loc)),
		loc:     loc,
	}
}

func (s *Service) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		date := time.Now().In(s.loc).Format(domain.DateLayout)
		if err := s.FetchDate(ctx, date); err != nil {
			zap.L().Error("Failed to fetch draw result", zap.String("drawDate", date), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("can't schedule result fetch: %w", err)
	}

	s.cron.Start()
	zap.L().Info("Result fetch scheduled", zap.String("spec", s.spec))

	go func() {
		<-ctx.Done()
		s.cron.Stop()
		zap.L().Info("Context canceled, stopping result fetcher")
	}()

	return nil
}

// FetchDate pulls the result for one date from the feed, with bounded
// retries. Publishing an already-known result is not an error.
func (s *Service) FetchDate(ctx context.Context, date string) error {
	url := s.url + "/api/xsmb/" + date
	var err error
	var statusCode int
	var respBody []byte
	var respHeaders http.Header

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = s.client.Get(url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to fetch result for %s after %d retries: %w", date, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				if attempt < maxRetries {
					s.waitRateLimit(date, respHeaders, attempt)
					continue
				}
				return fmt.Errorf("feed rate limited result for %s after %d retries", date, maxRetries)
			case http.StatusNoContent, http.StatusNotFound:
				zap.L().Warn("Result not published in feed yet, retrying", zap.String("drawDate", date), zap.Int("attempt", attempt))
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("result for %s not available after %d retries", date, maxRetries)

			case http.StatusOK:
				return s.processResult(ctx, date, respBody)

			default:
				zap.L().Error("Unexpected status code from feed", zap.Int("status", statusCode), zap.String("drawDate", date))
				return errors.New("unexpected status code")
			}
		}
	}
	return nil
}

func (s *Service) processResult(ctx context.Context, date string, respBody []byte) error {
	result, err := parseResult(date, respBody)
	if err != nil {
		return err
	}

	if err := s.draws.PublishResult(ctx, result); err != nil {
		if errors.Is(err, drawservice.ErrResultExists) {
			zap.L().Info("Result already published, triggering settlement only", zap.String("drawDate", date))
		} else {
			return fmt.Errorf("failed to publish draw result: %w", err)
		}
	}

	report, err := s.settler.Settle(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to settle draw date %s: %w", date, err)
	}
	zap.L().Info("Draw settled after fetch",
		zap.String("drawDate", date),
		zap.Int("count", report.Count),
		zap.Int64("totalPayout", report.TotalPayout),
	)
	return nil
}

// parseResult extracts the 8 prize tiers from the feed payload.
func parseResult(date string, body []byte) (*domain.DrawResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid feed payload")
	}
	root := gjson.ParseBytes(body)

	if got := root.Get("date").String(); got != "" && got != date {
		return nil, fmt.Errorf("draw date mismatch: expected %s, got %s", date, got)
	}

	result := &domain.DrawResult{
		DrawDate: date,
		Special:  root.Get("special").String(),
		First:    root.Get("first").String(),
		Second:   strSlice(root.Get("second")),
		Third:    strSlice(root.Get("third")),
		Fourth:   strSlice(root.Get("fourth")),
		Fifth:    strSlice(root.Get("fifth")),
		Sixth:    strSlice(root.Get("sixth")),
		Seventh:  strSlice(root.Get("seventh")),
	}
	return result, nil
}

func strSlice(res gjson.Result) []string {
	arr := res.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, v.String())
	}
	return out
}

func (s *Service) waitRateLimit(date string, respHeaders http.Header, attempt int) {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Feed rate limit detected, retrying",
		zap.String("drawDate", date),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
