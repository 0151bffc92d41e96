package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	superAdminCacheKey = "dashboard:super-admin"
	superAdminCacheTTL = time.Minute
)

// AttendanceSummarizer is satisfied by attendance.Service.
type AttendanceSummarizer interface {
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[attendance.Status]int64, error)
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	SuperAdmin(ctx context.Context) (SuperAdminSummary, error)
	Admin(ctx context.Context, actor domain.Identity) (AdminSummary, error)
	User(ctx context.Context, actor domain.Identity) (UserSummary, error)
}

type service struct {
	repo       Repository
	attendance AttendanceSummarizer
	rdb        *redis.Client
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(repo Repository, attendance AttendanceSummarizer, rdb *redis.Client, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:       repo,
		attendance: attendance,
		rdb:        rdb,
		loc:        loc,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) SuperAdmin(ctx context.Context) (SuperAdminSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, superAdminCacheKey).Result(); err == nil {
			var summary SuperAdminSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return summary, nil
			}
		}
	}

	var summary SuperAdminSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Companies, summary.ActiveCompanies, err = s.repo.CountCompanies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Users, err = s.repo.CountUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("super admin dashboard failed", zap.Error(err))
		return SuperAdminSummary{}, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.rdb.Set(ctx, superAdminCacheKey, data, superAdminCacheTTL)
		}
	}
	return summary, nil
}

func (s *service) Admin(ctx context.Context, actor domain.Identity) (AdminSummary, error) {
	if actor.CompanyID == "" {
		return AdminSummary{}, apperror.ErrForbidden
	}
	today := attendance.DateOf(s.now().In(s.loc))

	var (
		summary = AdminSummary{Date: today.Format("2006-01-02")}
		counts  map[attendance.Status]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.ActiveEmployees, err = s.repo.CountActiveEmployees(gctx, actor.CompanyID)
		return err
	})
	g.Go(func() error {
		var err error
		summary.PendingLeaves, err = s.repo.CountPendingLeaves(gctx, actor.CompanyID, "")
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.attendance.Summary(gctx, actor.CompanyID, "", today, today)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("admin dashboard failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return AdminSummary{}, err
	}

	summary.Attendance = byStatus(counts)
	return summary, nil
}

func (s *service) User(ctx context.Context, actor domain.Identity) (UserSummary, error) {
	if actor.EmployeeID == "" {
		return UserSummary{}, apperror.ErrForbidden
	}
	today := attendance.DateOf(s.now().In(s.loc))
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	counts, err := s.attendance.Summary(ctx, actor.CompanyID, actor.EmployeeID, from, today)
	if err != nil {
		return UserSummary{}, err
	}
	pending, err := s.repo.CountPendingLeaves(ctx, actor.CompanyID, actor.EmployeeID)
	if err != nil {
		return UserSummary{}, err
	}

	return UserSummary{
		Month:         today.Format("2006-01"),
		Attendance:    byStatus(counts),
		PendingLeaves: pending,
	}, nil
}

func byStatus(counts map[attendance.Status]int64) map[string]int64 {
	out := make(map[string]int64, len(attendance.Statuses))
	for _, st := range attendance.Statuses {
		out[string(st)] = counts[st]
	}
	return out
}
