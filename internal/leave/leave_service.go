package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrpay/internal/activity"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/events"
	leaveerrors "go-hrpay/internal/leave/errors"
	"go-hrpay/internal/messaging/kafka"
	"go-hrpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyChecker is satisfied by company.Repository.
type CompanyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Identity, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Identity, id string, req UpdateStatusRequest) (LeaveResponse, error)

	CreatePolicy(ctx context.Context, actor domain.Identity, req CreatePolicyRequest) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, actor domain.Identity, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	ListPolicies(ctx context.Context, actor domain.Identity, companyID string) ([]PolicyResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	companies CompanyChecker
	outbox    kafka.OutboxRepository
	activity  activity.Recorder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	companies CompanyChecker,
	outbox kafka.OutboxRepository,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{
		db:        db,
		repo:      repo,
		companies: companies,
		outbox:    outbox,
		activity:  recorder,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Identity, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, leaveType, startDate, endDate, err := validateCreateRequest(actor, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	createdBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, actor.CompanyID, employeeID.String())
	if err != nil {
		s.logger.Error("create leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, actor.CompanyID, employeeID.String(), startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", employeeID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	if err := s.checkQuota(ctx, qtx, actor.CompanyID, employeeID.String(), leaveType, startDate); err != nil {
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(actor.CompanyID),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  createdBy,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)

	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionCreate, "leave", l.ID.String(),
		fmt.Sprintf("%s leave requested from %s to %s", l.LeaveType, req.StartDate, req.EndDate)))

	return mapToResponse(*l), nil
}

// checkQuota rejects the request once the approved days in the policy
// window already reach the allowance. No policy means no limit.
func (s *service) checkQuota(ctx context.Context, qtx Repository, companyID, employeeID string, leaveType LeaveType, startDate time.Time) error {
	policy, err := qtx.FindActivePolicy(ctx, companyID, leaveType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	strategy, err := quotaStrategyFor(policy.Frequency)
	if err != nil {
		return err
	}
	from, to := strategy.Window(startDate)

	consumed, err := qtx.SumApprovedDays(ctx, employeeID, leaveType, from, to)
	if err != nil {
		return err
	}
	if consumed >= policy.AllowedDays {
		s.logger.Warn("leave quota exceeded",
			zap.String("employee_id", employeeID),
			zap.String("leave_type", string(leaveType)),
			zap.Int("consumed", consumed),
			zap.Int("allowed", policy.AllowedDays),
		)
		return leaveerrors.ErrLeaveQuotaExceeded
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]LeaveResponse, error) {
	if actor.Role == domain.RoleEmployee {
		filter.EmployeeID = actor.EmployeeID
	}
	leaves, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Identity, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if actor.Role == domain.RoleEmployee && l.EmployeeID.String() != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Identity, id string, req UpdateStatusRequest) (LeaveResponse, error) {
	target := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !target.Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	if actor.Role == domain.RoleEmployee && target != StatusCancelled {
		return LeaveResponse{}, leaveerrors.ErrEmployeeMayOnlyCancel
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeMayOnlyCancel
	}

	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", string(target)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if actor.Role == domain.RoleEmployee && l.EmployeeID.String() != actor.EmployeeID {
		return LeaveResponse{}, leaveerrors.ErrEmployeeMayOnlyCancel
	}

	from := l.Status
	if !CanTransition(from, target) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", string(from)),
			zap.String("to_status", string(target)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	l.Status = target
	switch target {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		l.ApprovedAt = &now
	case StatusRejected:
		l.RejectionReason = req.RejectionReason
	case StatusCancelled:
		l.CancelledBy = &actorUUID
		l.CancelledAt = &now
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveStatusChangedEvent{
		EventType:  events.LeaveStatusChangedEventType,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		CompanyID:  l.CompanyID.String(),
		LeaveType:  string(l.LeaveType),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		FromStatus: string(from),
		ToStatus:   string(target),
		ChangedBy:  actor.UserID,
		OccurredAt: now,
	}
	if err := kafka.Enqueue(ctx, s.outbox, tx, event.RequestID, "leave", event.LeaveID,
		events.LeaveStatusChangedEventType, events.LeaveStatusChangedTopic, event); err != nil {
		s.logger.Error("enqueue leave status event failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)

	s.activity.Record(ctx, transitionEntry(actor, l, from))

	return mapToResponse(*l), nil
}

func transitionEntry(actor domain.Identity, l *Leave, from Status) activity.Entry {
	action := activity.ActionUpdate
	if l.Status == StatusCancelled {
		action = activity.ActionCancelled
	}

	entry := activity.NewEntry(actor, action, "leave", l.ID.String(),
		fmt.Sprintf("Leave %s changed from %s to %s", l.ID, from, l.Status))
	entry.Metadata = map[string]any{
		"from_status": string(from),
		"to_status":   string(l.Status),
		"employee_id": l.EmployeeID.String(),
	}
	if l.Status == StatusCancelled {
		entry.Metadata["cancelled_by_employee_id"] = actor.EmployeeID
	}
	return entry
}

func (s *service) CreatePolicy(ctx context.Context, actor domain.Identity, req CreatePolicyRequest) (PolicyResponse, error) {
	companyID, err := targetCompany(actor, req.CompanyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	leaveType := LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return PolicyResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return PolicyResponse{}, err
	}
	if !exists {
		return PolicyResponse{}, leaveerrors.ErrCompanyNotFound
	}

	dup, err := s.repo.PolicyExists(ctx, companyID, leaveType)
	if err != nil {
		return PolicyResponse{}, err
	}
	if dup {
		return PolicyResponse{}, leaveerrors.ErrDuplicatePolicy
	}

	p := &LeavePolicy{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		LeaveType:   leaveType,
		AllowedDays: req.AllowedDays,
		Frequency:   req.Frequency,
		IsActive:    true,
	}
	if err := s.repo.CreatePolicy(ctx, p); err != nil {
		s.logger.Warn("create leave policy failed", zap.String("company_id", companyID), zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	entry := activity.NewEntry(actor, activity.ActionCreate, "leave_policy", p.ID.String(),
		fmt.Sprintf("%s leave policy created: %d days %s", p.LeaveType, p.AllowedDays, strings.ToLower(p.Frequency)))
	entry.CompanyID = companyID
	s.activity.Record(ctx, entry)

	return mapPolicyResponse(*p), nil
}

func (s *service) UpdatePolicy(ctx context.Context, actor domain.Identity, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PolicyResponse{}, leaveerrors.ErrInvalidPolicyID
	}

	p, err := s.repo.FindPolicyByID(ctx, id)
	if err != nil {
		return PolicyResponse{}, mapPolicyError(err)
	}
	if !actor.CanManageCompany(p.CompanyID.String()) {
		return PolicyResponse{}, leaveerrors.ErrPolicyNotFound
	}

	changes := map[string]any{}
	if req.AllowedDays != nil {
		p.AllowedDays = *req.AllowedDays
		changes["allowed_days"] = *req.AllowedDays
	}
	if req.Frequency != nil {
		p.Frequency = *req.Frequency
		changes["frequency"] = *req.Frequency
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
		changes["is_active"] = *req.IsActive
	}

	if err := s.repo.UpdatePolicy(ctx, p); err != nil {
		return PolicyResponse{}, mapPolicyError(err)
	}

	entry := activity.NewEntry(actor, activity.ActionUpdate, "leave_policy", p.ID.String(),
		fmt.Sprintf("%s leave policy updated", p.LeaveType))
	entry.CompanyID = p.CompanyID.String()
	entry.Metadata = changes
	s.activity.Record(ctx, entry)

	return mapPolicyResponse(*p), nil
}

func (s *service) ListPolicies(ctx context.Context, actor domain.Identity, companyID string) ([]PolicyResponse, error) {
	target, err := targetCompany(actor, companyID)
	if err != nil {
		return nil, err
	}
	policies, err := s.repo.ListPolicies(ctx, target)
	if err != nil {
		return nil, err
	}
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapPolicyResponse(p)
	}
	return resp, nil
}

// targetCompany lets platform admins address any company; everyone else is
// pinned to their own.
func targetCompany(actor domain.Identity, requested string) (string, error) {
	if actor.IsPlatformAdmin() && requested != "" {
		if _, err := uuid.Parse(requested); err != nil {
			return "", leaveerrors.ErrCompanyNotFound
		}
		return requested, nil
	}
	if actor.CompanyID == "" {
		return "", leaveerrors.ErrCompanyRequired
	}
	return actor.CompanyID, nil
}

func validateCreateRequest(actor domain.Identity, req CreateLeaveRequest) (uuid.UUID, LeaveType, time.Time, time.Time, error) {
	employee := actor.EmployeeID
	if actor.Role != domain.RoleEmployee && req.EmployeeID != "" {
		employee = req.EmployeeID
	}
	if employee == "" {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrNoEmployeeProfile
	}
	employeeID, err := uuid.Parse(employee)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}

	leaveType := LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, "", time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, "", time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeID, leaveType, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       string(l.LeaveType),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		CreatedBy:       l.CreatedBy.String(),
		ApprovedBy:      formatUUID(l.ApprovedBy),
		ApprovedAt:      formatTime(l.ApprovedAt),
		RejectionReason: l.RejectionReason,
		CancelledBy:     formatUUID(l.CancelledBy),
		CancelledAt:     formatTime(l.CancelledAt),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapPolicyResponse(p LeavePolicy) PolicyResponse {
	return PolicyResponse{
		ID:          p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		LeaveType:   string(p.LeaveType),
		AllowedDays: p.AllowedDays,
		Frequency:   p.Frequency,
		IsActive:    p.IsActive,
	}
}
