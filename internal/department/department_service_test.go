package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrpay/internal/department"
	departmenterrors "go-hrpay/internal/department/errors"
	departmentMock "go-hrpay/internal/department/mock"
	"go-hrpay/internal/domain"

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
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis, nil)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
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

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := "c56a4180-65aa-42ec-a945-5fd21dec0538"
	cacheKey := department.GetDepartmentListKey(companyID)

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expected := []department.DepartmentResponse{{ID: "d-1", Name: "HR"}, {ID: "d-2", Name: "IT"}}
		jsonResp, _ := json.Marshal(expected)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(jsonResp))

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
	})

	t.Run("cache miss - reads repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		depts := []department.Department{{ID: uuid.New(), Name: "Finance", CompanyID: uuid.MustParse(companyID)}}
		data, _ := json.Marshal([]department.DepartmentResponse{
			{
				ID:        depts[0].ID.String(),
				Name:      "Finance",
				CompanyID: companyID,
				CreatedAt: time.Time{}.Format(time.RFC3339),
				UpdatedAt: time.Time{}.Format(time.RFC3339),
			},
		})

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID).Return(depts, nil)
		deps.redismock.ExpectSet(cacheKey, data, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID).Return(nil, errors.New("db error"))

		_, err := deps.service.GetAll(ctx, companyID)

		assert.Error(t, err)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(department.GetDepartmentListKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, admin, department.CreateDepartmentRequest{Name: "HR"})

		assert.NoError(t, err)
		assert.Equal(t, "HR", resp.Name)
		assert.Equal(t, companyID, resp.CompanyID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_department_company_name"})

		_, err := deps.service.Create(ctx, admin, department.CreateDepartmentRequest{Name: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID}
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).
			Return(&department.Department{ID: uuid.MustParse(id), Name: "Old"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(department.GetDepartmentListKey(companyID)).SetVal(1)

		resp, err := deps.service.Update(ctx, admin, id, department.UpdateDepartmentRequest{Name: "New"})

		assert.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, admin, id, department.UpdateDepartmentRequest{Name: "New"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	admin := domain.Identity{UserID: uuid.NewString(), Role: domain.RoleCompanyAdmin, CompanyID: companyID}
	id := uuid.NewString()

	t.Run("in use", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountActiveEmployees(ctx, companyID, id).Return(int64(3), nil)

		err := deps.service.Delete(ctx, admin, id)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountActiveEmployees(ctx, companyID, id).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(nil)
		deps.redismock.ExpectDel(department.GetDepartmentListKey(companyID)).SetVal(1)

		err := deps.service.Delete(ctx, admin, id)

		assert.NoError(t, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, admin, "x")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})
}
