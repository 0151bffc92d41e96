package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrpay/internal/activity"
	autherrors "go-hrpay/internal/auth/errors"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/contextutil"
	"go-hrpay/internal/shared/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo     Repository
	tokens   *token.Manager
	activity activity.Recorder
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, tokens *token.Manager, recorder activity.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{repo: repo, tokens: tokens, activity: recorder, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("login wrong password", zap.String("user_id", user.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	id, err := s.identityOf(ctx, user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	pair, err := s.issuePair(id)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	s.activity.Record(ctx, activity.NewEntry(id, activity.ActionLogin, "user", id.UserID, id.Name+" logged in"))
	s.logger.Info("login success", zap.String("user_id", id.UserID), zap.String("role", id.Role.String()))

	return pair, toResponse(id), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claimed, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claimed.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	// reload so role or company changes since the last login take effect
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, mapRepositoryError(err)
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInactiveUser
	}

	id, err := s.identityOf(ctx, user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}

	pair, err := s.issuePair(id)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toResponse(id), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, mapRepositoryError(err)
	}

	identity, err := s.identityOf(ctx, user)
	if err != nil {
		return AuthResponse{}, err
	}
	return toResponse(identity), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Debug("register requested", zap.String("request_id", rid), zap.String("email", email))

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil || !dob.Before(s.now()) {
		return AuthResponse{}, autherrors.ErrInvalidDateOfBirth
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		s.logger.Error("register email check failed", zap.String("request_id", rid), zap.Error(err))
		return AuthResponse{}, err
	}
	if exists {
		s.logger.Warn("register email taken", zap.String("request_id", rid), zap.String("email", email))
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Password:    string(hashed),
		Address:     strings.TrimSpace(req.Address),
		DateOfBirth: dob,
		Gender:      req.Gender,
		Phone:       strings.TrimSpace(req.Phone),
		Role:        domain.RoleEmployee.String(),
		IsActive:    true,
	}

	// a concurrent registration can still win the race; the unique index
	// turns it into the same 409
	if err := s.repo.Create(ctx, user); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("register persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return AuthResponse{}, mapped
	}

	id := domain.Identity{UserID: user.ID.String(), Name: user.Name, Email: user.Email, Role: domain.RoleEmployee}
	s.activity.Record(ctx, activity.NewEntry(id, activity.ActionCreate, "user", id.UserID, "User "+user.Email+" registered"))
	s.logger.Info("register success", zap.String("request_id", rid), zap.String("user_id", id.UserID))

	return toResponse(id), nil
}

func (s *service) identityOf(ctx context.Context, user *User) (domain.Identity, error) {
	role, err := domain.ParseRole(user.Role)
	if err != nil {
		s.logger.Error("user has unknown role", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
		return domain.Identity{}, err
	}

	id := domain.Identity{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   role,
	}
	if user.CompanyID != nil {
		id.CompanyID = user.CompanyID.String()
	}
	if user.EmployeeID != nil {
		id.EmployeeID = user.EmployeeID.String()
		deptID, err := s.repo.FindDepartmentID(ctx, *user.EmployeeID)
		if err != nil {
			s.logger.Error("resolve department failed", zap.String("user_id", id.UserID), zap.Error(err))
			return domain.Identity{}, err
		}
		id.DepartmentID = deptID
	}
	return id, nil
}

func (s *service) issuePair(id domain.Identity) (TokenPair, error) {
	access, err := s.tokens.Issue(id, token.KindAccess, token.AccessTTL)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.tokens.Issue(id, token.KindRefresh, token.RefreshTTL)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func toResponse(id domain.Identity) AuthResponse {
	return AuthResponse{
		ID:           id.UserID,
		CompanyID:    id.CompanyID,
		EmployeeID:   id.EmployeeID,
		DepartmentID: id.DepartmentID,
		Email:        id.Email,
		Name:         id.Name,
		Role:         id.Role.String(),
		HomePath:     id.Role.HomePrefix(),
	}
}
