package company_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"go-hrpay/internal/company"
	companyerrors "go-hrpay/internal/company/errors"
	companyMock "go-hrpay/internal/company/mock"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   company.Service
	repo      *companyMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := companyMock.NewMockRepository(ctrl)

	svc := company.NewService(db, repo, dbRedis, nil, nil)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
	}
}

func newCompany(id uuid.UUID) *company.Company {
	return &company.Company{
		ID:                        id,
		Name:                      "Acme",
		Email:                     "hr@acme.test",
		IsActive:                  true,
		CheckInStartTime:          "07:00",
		CheckInEndTime:            "09:00",
		MinimumWorkHours:          8,
		LateAttendancePenaltyRate: 1,
		AttendanceBonusRate:       2,
	}
}

func TestCompanyService_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID.String()}

	t.Run("success - merges fields and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String()).Return(newCompany(companyID), nil)
		deps.repo.EXPECT().
			UpdateFields(ctx, companyID.String(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, fields map[string]any) error {
				assert.Equal(t, 7.5, fields["minimum_work_hours"])
				assert.Equal(t, "08:30", fields["check_in_end_time"])
				assert.NotContains(t, fields, "unknown_key")
				return nil
			})
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(company.GetSettingsKey(companyID.String())).SetVal(1)

		resp, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{
			"minimum_work_hours": 7.5,
			"check_in_end_time":  "08:30",
			"unknown_key":        true,
		})

		assert.NoError(t, err)
		assert.Equal(t, 7.5, resp.Settings.MinimumWorkHours)
		assert.Equal(t, "08:30", resp.Settings.CheckInEndTime)
		assert.Equal(t, "07:00", resp.Settings.CheckInStartTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("platform admin may update any company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		root := domain.Identity{UserID: uuid.NewString(), Role: domain.RolePlatformAdmin}

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String()).Return(newCompany(companyID), nil)
		deps.repo.EXPECT().UpdateFields(ctx, companyID.String(), map[string]any{"attendance_bonus_rate": float64(5)}).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.redismock.ExpectDel(company.GetSettingsKey(companyID.String())).SetVal(1)

		resp, err := deps.service.UpdateSettings(ctx, root, companyID.String(), map[string]any{
			"attendance_bonus_rate": "5",
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(5), resp.Settings.AttendanceBonusRate)
	})

	t.Run("unauthorized - admin of another company", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		other := admin
		other.CompanyID = uuid.NewString()

		_, err := deps.service.UpdateSettings(ctx, other, companyID.String(), map[string]any{"minimum_work_hours": 8})

		assert.ErrorIs(t, err, companyerrors.ErrUnauthorizedSettings)
		assert.Equal(t, 401, apperror.ToHTTP(err).Status)
	})

	t.Run("unauthorized - employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emp := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: companyID.String()}

		_, err := deps.service.UpdateSettings(ctx, emp, companyID.String(), map[string]any{"minimum_work_hours": 8})

		assert.ErrorIs(t, err, companyerrors.ErrUnauthorizedSettings)
	})

	t.Run("no valid fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{"name": "x"})

		assert.ErrorIs(t, err, companyerrors.ErrNoValidFields)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid minimum work hours", func(t *testing.T) {
		for _, v := range []any{0, -1, 25, "abc", "NaN", "+Inf", math.NaN(), math.Inf(1)} {
			deps := setupServiceTest(t)

			_, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{"minimum_work_hours": v})

			assert.ErrorIs(t, err, companyerrors.ErrInvalidMinimumWorkHours)
			deps.db.Close()
		}
	})

	t.Run("invalid rate", func(t *testing.T) {
		for _, field := range []string{"late_attendance_penalty_rate", "attendance_bonus_rate"} {
			for _, v := range []any{150, -1, "NaN", "-Inf", math.NaN(), math.Inf(-1)} {
				deps := setupServiceTest(t)

				_, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{field: v})

				assert.ErrorIs(t, err, companyerrors.ErrInvalidRate, "%s=%v", field, v)
				assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
				deps.db.Close()
			}
		}
	})

	t.Run("merged window must keep start before end", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String()).Return(newCompany(companyID), nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{
			"check_in_start_time": "10:00",
		})

		assert.ErrorIs(t, err, companyerrors.ErrInvalidCheckInWindow)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("company not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String()).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdateSettings(ctx, admin, companyID.String(), map[string]any{"minimum_work_hours": 8})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestCompanyService_GetSettings(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	cacheKey := company.GetSettingsKey(companyID.String())

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := company.Settings{CheckInStartTime: "06:00", CheckInEndTime: "08:00", MinimumWorkHours: 9}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(data))

		got, err := deps.service.GetSettings(ctx, companyID.String())

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("cache miss - loads from repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		c := newCompany(companyID)
		data, _ := json.Marshal(c.Settings())

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindByID(ctx, companyID.String()).Return(c, nil)
		deps.redismock.ExpectSet(cacheKey, data, time.Hour).SetVal("OK")

		got, err := deps.service.GetSettings(ctx, companyID.String())

		assert.NoError(t, err)
		assert.Equal(t, c.Settings(), got)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindByID(ctx, companyID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetSettings(ctx, companyID.String())

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()
	root := domain.Identity{UserID: uuid.NewString(), Role: domain.RolePlatformAdmin}
	req := company.CreateCompanyRequest{Name: "Acme", Email: "hr@acme.test"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				assert.Equal(t, "09:00", c.CheckInEndTime)
				assert.Equal(t, float64(8), c.MinimumWorkHours)
				c.ID = id
				return nil
			})

		resp, err := deps.service.Create(ctx, root, req)

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("forbidden for company admin", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, domain.Identity{Role: domain.RoleCompanyAdmin, CompanyID: uuid.NewString()}, req)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_companies_email"})

		_, err := deps.service.Create(ctx, root, req)

		assert.ErrorIs(t, err, companyerrors.ErrCompanyAlreadyExists)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("other tenant is not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		actor := domain.Identity{Role: domain.RoleCompanyAdmin, CompanyID: uuid.NewString()}
		_, err := deps.service.GetByID(ctx, actor, companyID.String())

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, domain.Identity{Role: domain.RolePlatformAdmin}, "nope")

		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		boom := errors.New("db down")
		deps.repo.EXPECT().FindByID(ctx, companyID.String()).Return(nil, boom)

		_, err := deps.service.GetByID(ctx, domain.Identity{Role: domain.RolePlatformAdmin}, companyID.String())

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
	})
}

func TestClockOn(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	ref := time.Date(2024, 4, 10, 15, 0, 0, 0, loc)

	got, err := company.ClockOn(ref, "08:30")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 10, 8, 30, 0, 0, loc), got)

	_, err = company.ClockOn(ref, "8h")
	assert.Error(t, err)
}
