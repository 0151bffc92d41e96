package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrpay/internal/attendance"
	"go-hrpay/internal/dashboard"
	dashboardMock "go-hrpay/internal/dashboard/mock"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	companyID  = uuid.NewString()
	employeeID = uuid.NewString()
	admin      = domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID}
	staff      = domain.Identity{UserID: uuid.NewString(), Role: domain.RoleEmployee, CompanyID: companyID, EmployeeID: employeeID}
)

func TestDashboardService_SuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("miss loads counts and caches them", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, nil, rdb, time.UTC, zap.NewNop())

		want := dashboard.SuperAdminSummary{Companies: 3, ActiveCompanies: 2, Users: 40}
		data, _ := json.Marshal(want)

		redisMock.ExpectGet("dashboard:super-admin").RedisNil()
		repo.EXPECT().CountCompanies(gomock.Any()).Return(int64(3), int64(2), nil)
		repo.EXPECT().CountUsers(gomock.Any()).Return(int64(40), nil)
		redisMock.ExpectSet("dashboard:super-admin", data, time.Minute).SetVal("OK")

		got, err := svc.SuperAdmin(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("hit skips the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := dashboard.NewService(repo, nil, rdb, time.UTC, zap.NewNop())

		redisMock.ExpectGet("dashboard:super-admin").SetVal(`{"companies":5,"active_companies":5,"users":9}`)

		got, err := svc.SuperAdmin(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Companies)
		assert.Equal(t, int64(9), got.Users)
	})

	t.Run("count failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := dashboardMock.NewMockRepository(ctrl)
		svc := dashboard.NewService(repo, nil, nil, time.UTC, zap.NewNop())

		repo.EXPECT().CountCompanies(gomock.Any()).Return(int64(0), int64(0), errors.New("db down"))
		repo.EXPECT().CountUsers(gomock.Any()).Return(int64(0), nil).AnyTimes()

		_, err := svc.SuperAdmin(ctx)

		assert.Error(t, err)
	})
}

func TestDashboardService_Admin(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := dashboardMock.NewMockRepository(ctrl)
	summarizer := dashboardMock.NewMockAttendanceSummarizer(ctrl)
	svc := dashboard.NewService(repo, summarizer, nil, time.UTC, zap.NewNop())

	repo.EXPECT().CountActiveEmployees(gomock.Any(), companyID).Return(int64(12), nil)
	repo.EXPECT().CountPendingLeaves(gomock.Any(), companyID, "").Return(int64(2), nil)
	summarizer.EXPECT().Summary(gomock.Any(), companyID, "", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, from, to time.Time) (map[attendance.Status]int64, error) {
			assert.Equal(t, from, to)
			return map[attendance.Status]int64{attendance.StatusPresent: 9, attendance.StatusLate: 1}, nil
		})

	got, err := svc.Admin(ctx, admin)

	require.NoError(t, err)
	assert.Equal(t, int64(12), got.ActiveEmployees)
	assert.Equal(t, int64(2), got.PendingLeaves)
	assert.Equal(t, map[string]int64{"PRESENT": 9, "LATE": 1, "ABSENT": 0, "ON_LEAVE": 0}, got.Attendance)

	t.Run("no company", func(t *testing.T) {
		_, err := svc.Admin(ctx, domain.Identity{Role: domain.RoleCompanyAdmin})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestDashboardService_User(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := dashboardMock.NewMockRepository(ctrl)
	summarizer := dashboardMock.NewMockAttendanceSummarizer(ctrl)
	svc := dashboard.NewService(repo, summarizer, nil, time.UTC, zap.NewNop())

	summarizer.EXPECT().Summary(gomock.Any(), companyID, employeeID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, from, to time.Time) (map[attendance.Status]int64, error) {
			assert.Equal(t, 1, from.Day())
			assert.Equal(t, from.Month(), to.Month())
			return map[attendance.Status]int64{attendance.StatusPresent: 4}, nil
		})
	repo.EXPECT().CountPendingLeaves(gomock.Any(), companyID, employeeID).Return(int64(1), nil)

	got, err := svc.User(ctx, staff)

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Attendance["PRESENT"])
	assert.Equal(t, int64(1), got.PendingLeaves)
	assert.Len(t, got.Month, 7)
}
