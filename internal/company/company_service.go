package company

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go-hrpay/internal/activity"
	companyerrors "go-hrpay/internal/company/errors"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SettingsKeyPrefix = "companies:settings:"
	settingsCacheTTL  = 1 * time.Hour
	logoBucket        = "company"
)

func GetSettingsKey(companyID string) string {
	return SettingsKeyPrefix + companyID
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context, actor domain.Identity) ([]CompanyResponse, error)
	GetByID(ctx context.Context, actor domain.Identity, id string) (CompanyResponse, error)
	GetSettings(ctx context.Context, companyID string) (Settings, error)
	UpdateSettings(ctx context.Context, actor domain.Identity, companyID string, fields map[string]any) (CompanyResponse, error)
	UpdateLogo(ctx context.Context, actor domain.Identity, companyID string, file io.Reader, ext string) (CompanyResponse, error)
	SetLogoURL(ctx context.Context, companyID, url string) error
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	storage  storage.Storage
	activity activity.Recorder
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	rdb *redis.Client,
	store storage.Storage,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		storage:  store,
		activity: recorder,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Identity, req CreateCompanyRequest) (CompanyResponse, error) {
	if !actor.IsPlatformAdmin() {
		return CompanyResponse{}, apperror.ErrForbidden
	}

	company := &Company{
		Name:                      req.Name,
		Email:                     req.Email,
		Address:                   req.Address,
		IsActive:                  true,
		CheckInStartTime:          "07:00",
		CheckInEndTime:            "09:00",
		MinimumWorkHours:          8,
		LateAttendancePenaltyRate: 0,
		AttendanceBonusRate:       0,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		s.logger.Warn("create company failed", zap.String("email", req.Email), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.activity.Record(ctx, activity.Entry{
		CompanyID:   company.ID.String(),
		ActorID:     actor.UserID,
		ActorRole:   actor.Role.String(),
		Action:      activity.ActionCreate,
		TargetType:  "company",
		TargetID:    company.ID.String(),
		Description: fmt.Sprintf("Company %s created", company.Name),
	})

	return mapToResponse(company), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Identity) ([]CompanyResponse, error) {
	if !actor.IsPlatformAdmin() {
		if actor.CompanyID == "" {
			return nil, apperror.ErrForbidden
		}
		c, err := s.GetByID(ctx, actor, actor.CompanyID)
		if err != nil {
			return nil, err
		}
		return []CompanyResponse{c}, nil
	}

	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = mapToResponse(&companies[i])
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Identity, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	// another tenant's company is reported as missing
	if !actor.IsPlatformAdmin() && actor.CompanyID != id {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(company), nil
}

func (s *service) GetSettings(ctx context.Context, companyID string) (Settings, error) {
	cacheKey := GetSettingsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var settings Settings
			if json.Unmarshal([]byte(cached), &settings) == nil {
				return settings, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		company, err := s.repo.FindByID(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		settings := company.Settings()
		if s.rdb != nil {
			if data, err := json.Marshal(settings); err == nil {
				s.rdb.Set(ctx, cacheKey, data, settingsCacheTTL)
			}
		}
		return settings, nil
	})
	if err != nil {
		return Settings{}, err
	}

	return v.(Settings), nil
}

func (s *service) UpdateSettings(
	ctx context.Context,
	actor domain.Identity,
	companyID string,
	fields map[string]any,
) (CompanyResponse, error) {
	if !actor.CanManageCompany(companyID) {
		s.logger.Warn("settings update rejected",
			zap.String("actor_id", actor.UserID),
			zap.String("company_id", companyID),
		)
		return CompanyResponse{}, companyerrors.ErrUnauthorizedSettings
	}

	patch, err := parseSettingsPatch(fields)
	if err != nil {
		return CompanyResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CompanyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	company, err := qtx.FindByIDForUpdate(ctx, companyID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	updates, err := patch.apply(company)
	if err != nil {
		return CompanyResponse{}, err
	}

	if err := qtx.UpdateFields(ctx, companyID, updates); err != nil {
		s.logger.Error("update settings failed", zap.String("company_id", companyID), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return CompanyResponse{}, err
	}

	s.invalidateSettings(ctx, companyID)

	entry := activity.NewEntry(actor, activity.ActionUpdate, "company_settings", companyID,
		fmt.Sprintf("Settings of %s updated", company.Name))
	entry.CompanyID = companyID
	entry.Metadata = updates
	s.activity.Record(ctx, entry)

	return mapToResponse(company), nil
}

func (s *service) UpdateLogo(
	ctx context.Context,
	actor domain.Identity,
	companyID string,
	file io.Reader,
	ext string,
) (CompanyResponse, error) {
	if !actor.CanManageCompany(companyID) {
		return CompanyResponse{}, apperror.ErrForbidden
	}

	company, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	oldLogo := ""
	if company.LogoURL != nil {
		oldLogo = *company.LogoURL
	}

	url, err := s.storage.Update(ctx, oldLogo, file, ext, logoBucket)
	if err != nil {
		s.logger.Error("store logo failed", zap.String("company_id", companyID), zap.Error(err))
		return CompanyResponse{}, err
	}

	if err := s.repo.UpdateFields(ctx, companyID, map[string]any{"logo_url": url}); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	company.LogoURL = &url

	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionUpdate, "company", companyID, "Company logo updated"))

	return mapToResponse(company), nil
}

func (s *service) SetLogoURL(ctx context.Context, companyID, url string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	return mapRepositoryError(s.repo.UpdateFields(ctx, companyID, map[string]any{"logo_url": url}))
}

func (s *service) ListActiveIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListActiveIDs(ctx)
	if err != nil {
		s.logger.Error("list active companies failed", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

func (s *service) invalidateSettings(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetSettingsKey(companyID)).Err(); err != nil {
		s.logger.Warn("invalidate settings cache failed", zap.String("company_id", companyID), zap.Error(err))
	}
}

func mapToResponse(c *Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		Settings:  c.Settings(),
		CreatedAt: c.CreatedAt,
	}
	if c.LogoURL != nil {
		resp.LogoURL = *c.LogoURL
	}
	return resp
}
