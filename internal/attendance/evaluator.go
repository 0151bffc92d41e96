package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultEvaluatorConcurrency = 8

type EvaluationFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type EvaluationResult struct {
	CompanyID string              `json:"company_id"`
	Date      string              `json:"date"`
	Total     int                 `json:"total"`
	Created   int                 `json:"created"`
	Skipped   int                 `json:"skipped"`
	OnLeave   int                 `json:"on_leave"`
	Absent    int                 `json:"absent"`
	Failures  []EvaluationFailure `json:"failures"`
}

// Evaluator fills in the day's attendance for employees that did not check
// in: ON_LEAVE when an approved leave covers the day, ABSENT otherwise.
// Rows that already exist are left alone, so running it twice for the same
// day is harmless.
type Evaluator struct {
	repo        Repository
	loc         *time.Location
	now         func() time.Time
	concurrency int
	logger      *zap.Logger
}

func NewEvaluator(repo Repository, loc *time.Location, logger ...*zap.Logger) *Evaluator {
	l := zap.L().Named("attendance.evaluator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{
		repo:        repo,
		loc:         loc,
		now:         time.Now,
		concurrency: defaultEvaluatorConcurrency,
		logger:      l,
	}
}

// Today is the evaluator's current calendar date in its configured zone.
func (e *Evaluator) Today() time.Time {
	return DateOf(e.now().In(e.loc))
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeOnLeave
	outcomeAbsent
)

func (e *Evaluator) EvaluateDay(ctx context.Context, companyID string) (EvaluationResult, error) {
	date := e.Today()
	result := EvaluationResult{
		CompanyID: companyID,
		Date:      date.Format(dateLayout),
		Failures:  []EvaluationFailure{},
	}

	employeeIDs, err := e.repo.ListActiveEmployeeIDs(ctx, companyID)
	if err != nil {
		e.logger.Error("list active employees failed", zap.String("company_id", companyID), zap.Error(err))
		return result, err
	}
	result.Total = len(employeeIDs)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, employeeID := range employeeIDs {
		g.Go(func() error {
			out, err := e.evaluateEmployee(gctx, companyID, employeeID, date)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.logger.Warn("evaluate employee failed",
					zap.String("company_id", companyID),
					zap.String("employee_id", employeeID),
					zap.Error(err),
				)
				result.Failures = append(result.Failures, EvaluationFailure{EmployeeID: employeeID, Error: err.Error()})
				return nil
			}
			switch out {
			case outcomeSkipped:
				result.Skipped++
			case outcomeOnLeave:
				result.Created++
				result.OnLeave++
			case outcomeAbsent:
				result.Created++
				result.Absent++
			}
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Info("attendance evaluated",
		zap.String("company_id", companyID),
		zap.String("date", result.Date),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failures", len(result.Failures)),
	)
	return result, nil
}

func (e *Evaluator) evaluateEmployee(ctx context.Context, companyID, employeeID string, date time.Time) (outcome, error) {
	exists, err := e.repo.ExistsForDate(ctx, employeeID, date)
	if err != nil {
		return outcomeSkipped, err
	}
	if exists {
		return outcomeSkipped, nil
	}

	onLeave, err := e.repo.HasApprovedLeaveOn(ctx, employeeID, date)
	if err != nil {
		return outcomeSkipped, err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return outcomeSkipped, err
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return outcomeSkipped, err
	}

	status, out := StatusAbsent, outcomeAbsent
	if onLeave {
		status, out = StatusOnLeave, outcomeOnLeave
	}

	inserted, err := e.repo.InsertIfAbsent(ctx, &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: date,
		Status:         status,
		Source:         SourceEvaluator,
	})
	if err != nil {
		return outcomeSkipped, err
	}
	if !inserted {
		// lost the race to a check-in or a concurrent evaluation
		return outcomeSkipped, nil
	}
	return out, nil
}
