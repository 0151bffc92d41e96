package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/employee"
	employeeerrors "go-hrpay/internal/employee/errors"
	employeeMock "go-hrpay/internal/employee/mock"
	"go-hrpay/internal/shared/counter"
	counterMock "go-hrpay/internal/shared/counter/mock"

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
	service   employee.Service
	repo      *employeeMock.MockRepository
	counter   *counterMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)

	svc := employee.NewService(db, repo, counterRepo, dbRedis, nil, nil)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID.String()}
	userID := uuid.New()

	req := employee.CreateEmployeeRequest{
		UserID:     userID.String(),
		Position:   "Engineer",
		BaseSalary: 5000000,
		JoinDate:   "2024-01-15",
	}

	t.Run("success - numbers the employee and links the user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindUser(ctx, userID.String()).
			Return(&employee.UserAccount{ID: userID, Name: "Budi", Email: "budi@acme.test", IsActive: true}, nil)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().NextValue(ctx, companyID.String(), counter.EmployeeNumber).Return(int64(123), nil)

		var created *employee.Employee
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000123", e.EmployeeNumber)
				assert.Equal(t, companyID, e.CompanyID)
				assert.Equal(t, "Budi", e.FullName)
				assert.Equal(t, int64(5000000), e.BaseSalary)
				assert.Equal(t, "EMPLOYEE", e.Role)
				created = e
				return nil
			})
		deps.repo.EXPECT().
			AttachUser(ctx, userID.String(), companyID.String(), gomock.Any(), "EMPLOYEE").
			DoAndReturn(func(_ context.Context, _, _, employeeID, _ string) error {
				assert.Equal(t, created.ID.String(), employeeID)
				return nil
			})
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID.String())).SetVal(1)

		resp, err := deps.service.Create(ctx, admin, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
		assert.Equal(t, "2024-01-15", resp.JoinDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("user not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindUser(ctx, userID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, employeeerrors.ErrUserNotFound)
	})

	t.Run("user already employed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		other := uuid.New()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindUser(ctx, userID.String()).
			Return(&employee.UserAccount{ID: userID, CompanyID: &other, IsActive: true}, nil)

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, employeeerrors.ErrUserAlreadyEmployed)
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		withDept := req
		withDept.DepartmentID = uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindUser(ctx, userID.String()).
			Return(&employee.UserAccount{ID: userID, IsActive: true}, nil)
		deps.repo.EXPECT().DepartmentExists(ctx, companyID.String(), withDept.DepartmentID).Return(false, nil)

		_, err := deps.service.Create(ctx, admin, withDept)

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	})

	t.Run("platform role cannot be granted", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		bad := req
		bad.Role = "PLATFORM_ADMIN"

		_, err := deps.service.Create(ctx, admin, bad)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique violation on user link", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindUser(ctx, userID.String()).
			Return(&employee.UserAccount{ID: userID, IsActive: true}, nil)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().NextValue(ctx, companyID.String(), counter.EmployeeNumber).Return(int64(2), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_user"})

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, employeeerrors.ErrUserAlreadyEmployed)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID.String()}
	empID := uuid.New()
	userID := uuid.New()

	existing := func() *employee.Employee {
		return &employee.Employee{
			ID:             empID,
			CompanyID:      companyID,
			UserID:         userID,
			EmployeeNumber: "EMP-000001",
			Role:           "EMPLOYEE",
			BaseSalary:     4000000,
			JoinDate:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:       true,
		}
	}

	t.Run("base salary and role change", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		salary := int64(6000000)
		role := "COMPANY_ADMIN"

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String(), empID.String()).Return(existing(), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, salary, e.BaseSalary)
				assert.Equal(t, role, e.Role)
				return nil
			})
		deps.repo.EXPECT().SetUserRole(ctx, userID.String(), role).Return(nil)
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID.String())).SetVal(1)

		resp, err := deps.service.Update(ctx, admin, empID.String(), employee.UpdateEmployeeRequest{
			BaseSalary: &salary,
			Role:       &role,
		})

		assert.NoError(t, err)
		assert.Equal(t, salary, resp.BaseSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found in tenant", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String(), empID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, admin, empID.String(), employee.UpdateEmployeeRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid join date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		bad := "15-01-2024"
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String(), empID.String()).Return(existing(), nil)

		_, err := deps.service.Update(ctx, admin, empID.String(), employee.UpdateEmployeeRequest{JoinDate: &bad})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoinDate)
	})
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID.String(), EmployeeID: uuid.NewString()}
	empID := uuid.New()
	userID := uuid.New()

	t.Run("soft deactivates employee and user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String(), empID.String()).
			Return(&employee.Employee{ID: empID, UserID: userID, IsActive: true}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.False(t, e.IsActive)
				return nil
			})
		deps.repo.EXPECT().SetUserActive(ctx, userID.String(), false).Return(nil)
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID.String())).SetVal(1)

		err := deps.service.Deactivate(ctx, admin, empID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, companyID.String(), empID.String()).
			Return(&employee.Employee{ID: empID, UserID: userID, IsActive: false}, nil)

		err := deps.service.Deactivate(ctx, admin, empID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrAlreadyInactive)
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Deactivate(ctx, admin, admin.EmployeeID)

		assert.ErrorIs(t, err, employeeerrors.ErrCannotDeactivateSelf)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	cacheKey := employee.GetEmployeeOptionsKey(companyID)

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeOption{{ID: "e-1", FullName: "Budi"}}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(data))

		got, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("cache miss", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindActiveByCompany(ctx, companyID).
			Return([]employee.Employee{{ID: id, FullName: "Siti"}}, nil)
		data, _ := json.Marshal([]employee.EmployeeOption{{ID: id.String(), FullName: "Siti"}})
		deps.redismock.ExpectSet(cacheKey, data, time.Hour).SetVal("OK")

		got, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Siti", got[0].FullName)
	})
}

func TestEmployeeService_GetMe(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetMe(context.Background(), domain.Identity{Role: domain.RoleEmployee})

	assert.ErrorIs(t, err, employeeerrors.ErrNoEmployeeProfile)
}
