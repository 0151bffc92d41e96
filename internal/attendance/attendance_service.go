package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"go-hrpay/internal/activity"
	attendanceerrors "go-hrpay/internal/attendance/errors"
	"go-hrpay/internal/company"
	"go-hrpay/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsProvider supplies the company's check-in window and minimum hours.
type SettingsProvider interface {
	GetSettings(ctx context.Context, companyID string) (company.Settings, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, actor domain.Identity, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, actor domain.Identity, req ClockOutRequest) (ClockOutResponse, error)
	GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]AttendanceResponse, error)
	Evaluate(ctx context.Context, actor domain.Identity, companyID string) (EvaluationResult, error)
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[Status]int64, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	settings  SettingsProvider
	evaluator *Evaluator
	activity  activity.Recorder
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	settings SettingsProvider,
	recorder activity.Recorder,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:        db,
		repo:      repo,
		settings:  settings,
		evaluator: NewEvaluator(repo, loc, l.Named("evaluator")),
		activity:  recorder,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, actor domain.Identity, req ClockInRequest) (AttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrNoEmployeeProfile
	}

	settings, err := s.settings.GetSettings(ctx, actor.CompanyID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.now().In(s.loc)
	start, err := company.ClockOn(now, settings.CheckInStartTime)
	if err != nil {
		return AttendanceResponse{}, err
	}
	end, err := company.ClockOn(now, settings.CheckInEndTime)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if now.Before(start) {
		s.logger.Warn("check-in before window",
			zap.String("employee_id", actor.EmployeeID),
			zap.String("opens_at", settings.CheckInStartTime),
		)
		return AttendanceResponse{}, attendanceerrors.ErrCheckInTooEarly
	}

	status := StatusPresent
	if now.After(end) {
		status = StatusLate
	}

	today := DateOf(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForDate(ctx, actor.EmployeeID, today)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if exists {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(actor.CompanyID),
		EmployeeID:     uuid.MustParse(actor.EmployeeID),
		AttendanceDate: today,
		CheckIn:        &now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         SourceManual,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked in",
		zap.String("employee_id", actor.EmployeeID),
		zap.String("status", string(status)),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, actor domain.Identity, req ClockOutRequest) (ClockOutResponse, error) {
	if actor.EmployeeID == "" {
		return ClockOutResponse{}, attendanceerrors.ErrNoEmployeeProfile
	}

	settings, err := s.settings.GetSettings(ctx, actor.CompanyID)
	if err != nil {
		return ClockOutResponse{}, err
	}

	now := s.now().In(s.loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockOutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, actor.CompanyID, actor.EmployeeID, DateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClockOutResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return ClockOutResponse{}, err
	}
	// evaluator rows (ABSENT, ON_LEAVE) carry no check-in
	if row.CheckIn == nil {
		return ClockOutResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		return ClockOutResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return ClockOutResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClockOutResponse{}, err
	}

	worked := math.Round(now.Sub(*row.CheckIn).Hours()*100) / 100
	return ClockOutResponse{
		AttendanceResponse: s.mapToResponse(*row),
		WorkedHours:        worked,
		MinimumWorkHours:   settings.MinimumWorkHours,
		MetMinimum:         worked >= settings.MinimumWorkHours,
	}, nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]AttendanceResponse, error) {
	if actor.Role == domain.RoleEmployee {
		if actor.EmployeeID == "" {
			return nil, attendanceerrors.ErrNoEmployeeProfile
		}
		filter.EmployeeID = actor.EmployeeID
	}
	if err := validateRange(filter.From, filter.To); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = s.mapToResponse(r)
	}
	return resp, nil
}

func (s *service) Evaluate(ctx context.Context, actor domain.Identity, companyID string) (EvaluationResult, error) {
	target := actor.CompanyID
	if actor.IsPlatformAdmin() && companyID != "" {
		target = companyID
	}
	if target == "" {
		return EvaluationResult{}, attendanceerrors.ErrCompanyRequired
	}
	if _, err := uuid.Parse(target); err != nil {
		return EvaluationResult{}, attendanceerrors.ErrInvalidCompanyID
	}

	result, err := s.evaluator.EvaluateDay(ctx, target)
	if err != nil {
		return EvaluationResult{}, err
	}

	entry := activity.NewEntry(actor, activity.ActionSystem, "attendance", target,
		fmt.Sprintf("Attendance evaluated for %s", result.Date))
	entry.CompanyID = target
	entry.Metadata = map[string]any{
		"date":     result.Date,
		"created":  result.Created,
		"skipped":  result.Skipped,
		"on_leave": result.OnLeave,
		"absent":   result.Absent,
		"failures": len(result.Failures),
	}
	s.activity.Record(ctx, entry)

	return result, nil
}

func (s *service) Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx, companyID, employeeID, from, to)
}

func validateRange(from, to string) error {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return attendanceerrors.ErrInvalidDateRange
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return attendanceerrors.ErrInvalidDateRange
		}
	}
	if from != "" && to != "" && start.After(end) {
		return attendanceerrors.ErrInvalidDateRange
	}
	return nil
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.In(s.loc).Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.In(s.loc).Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
