package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/notification"

	"go.uber.org/zap"
)

type CompanyLister interface {
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type DayEvaluator interface {
	EvaluateDay(ctx context.Context, companyID string) (attendance.EvaluationResult, error)
}

// RunSummary aggregates one pass over every active company.
type RunSummary struct {
	Companies int
	Failed    int
	Created   int
	Absent    int
	OnLeave   int
}

// EvaluatorScheduler runs the daily attendance evaluation for every active
// company once at startup and then on each tick.
type EvaluatorScheduler struct {
	companies CompanyLister
	evaluator DayEvaluator
	interval  time.Duration
	logger    *zap.Logger
	alerter   notification.Alerter

	// serializes RunNow with the ticker loop
	mu sync.Mutex
}

func NewEvaluatorScheduler(
	companies CompanyLister,
	evaluator DayEvaluator,
	interval time.Duration,
	logger ...*zap.Logger,
) *EvaluatorScheduler {
	l := zap.L().Named("jobs.evaluator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &EvaluatorScheduler{
		companies: companies,
		evaluator: evaluator,
		interval:  interval,
		logger:    l,
	}
}

// WithAlerter reports runs with failing companies to a.
func (s *EvaluatorScheduler) WithAlerter(a notification.Alerter) *EvaluatorScheduler {
	s.alerter = a
	return s
}

// Start blocks until ctx is cancelled.
func (s *EvaluatorScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("evaluator scheduler started", zap.Duration("interval", s.interval))

	if _, err := s.RunNow(ctx); err != nil {
		s.logger.Error("initial evaluation failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("evaluator scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunNow(ctx); err != nil {
				s.logger.Error("scheduled evaluation failed", zap.Error(err))
			}
		}
	}
}

// RunNow evaluates today for every active company. A failing company is
// logged and counted; only a failure to list companies is returned.
func (s *EvaluatorScheduler) RunNow(ctx context.Context) (RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary RunSummary

	ids, err := s.companies.ListActiveIDs(ctx)
	if err != nil {
		return summary, err
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		summary.Companies++
		result, err := s.evaluator.EvaluateDay(ctx, id)
		if err != nil {
			summary.Failed++
			s.logger.Error("evaluate company failed",
				zap.String("company_id", id),
				zap.Error(err),
			)
			continue
		}

		summary.Created += result.Created
		summary.Absent += result.Absent
		summary.OnLeave += result.OnLeave

		if len(result.Failures) > 0 {
			s.logger.Warn("evaluation finished with employee failures",
				zap.String("company_id", id),
				zap.Int("failures", len(result.Failures)),
			)
		}
	}

	s.logger.Info("evaluation run finished",
		zap.Int("companies", summary.Companies),
		zap.Int("failed", summary.Failed),
		zap.Int("created", summary.Created),
	)

	if summary.Failed > 0 && s.alerter != nil {
		s.alerter.Alert(ctx, fmt.Sprintf(
			"attendance evaluation failed for %d of %d companies",
			summary.Failed, summary.Companies,
		))
	}

	return summary, nil
}
