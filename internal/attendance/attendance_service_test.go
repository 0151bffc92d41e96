package attendance

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"go-hrpay/internal/activity"
	attendanceerrors "go-hrpay/internal/attendance/errors"
	"go-hrpay/internal/company"
	"go-hrpay/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSettings struct {
	settings company.Settings
	err      error
}

func (f fakeSettings) GetSettings(context.Context, string) (company.Settings, error) {
	return f.settings, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (f *fakeRecorder) Record(_ context.Context, e activity.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
}

var defaultSettings = company.Settings{
	LateAttendancePenaltyRate: 2,
	AttendanceBonusRate:       5,
	CheckInStartTime:          "07:00",
	CheckInEndTime:            "09:00",
	MinimumWorkHours:          8,
}

var employeeActor = domain.Identity{
	UserID:     "bbbbbbbb-0000-0000-0000-000000000001",
	Role:       domain.RoleEmployee,
	CompanyID:  testCompanyID,
	EmployeeID: empA,
}

func setupService(t *testing.T, repo Repository, now time.Time) (*service, sqlmock.Sqlmock, *sql.DB, *fakeRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	rec := &fakeRecorder{}
	svc := NewService(db, repo, fakeSettings{settings: defaultSettings}, rec, wib, zap.NewNop()).(*service)
	svc.now = func() time.Time { return now }
	svc.evaluator.now = svc.now
	return svc, mock, db, rec
}

func TestClockIn(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantStatus Status
		wantErr    error
	}{
		{"inside window is present", time.Date(2026, 3, 11, 8, 30, 0, 0, wib), StatusPresent, nil},
		{"exactly at end is present", time.Date(2026, 3, 11, 9, 0, 0, 0, wib), StatusPresent, nil},
		{"after end is late", time.Date(2026, 3, 11, 9, 31, 0, 0, wib), StatusLate, nil},
		{"before start is rejected", time.Date(2026, 3, 11, 6, 59, 0, 0, wib), "", attendanceerrors.ErrCheckInTooEarly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo(empA)
			svc, mock, db, _ := setupService(t, repo, tt.now)
			defer db.Close()

			if tt.wantErr == nil {
				mock.ExpectBegin()
				mock.ExpectCommit()
			}

			resp, err := svc.ClockIn(context.Background(), employeeActor, ClockInRequest{})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, repo.inserted)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, resp.Status)
				assert.Equal(t, "2026-03-11", resp.AttendanceDate)
				assert.NotNil(t, resp.CheckIn)
				assert.Equal(t, SourceManual, resp.Source)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClockIn_RejectsWhenEvaluatorRowExists(t *testing.T) {
	now := time.Date(2026, 3, 11, 8, 0, 0, 0, wib)
	repo := newMemRepo(empA)
	repo.put(Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(empA),
		AttendanceDate: DateOf(now),
		Status:         StatusOnLeave,
		Source:         SourceEvaluator,
	})
	svc, mock, db, _ := setupService(t, repo, now)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.ClockIn(context.Background(), employeeActor, ClockInRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	row, _ := repo.get(empA, DateOf(now))
	assert.Equal(t, StatusOnLeave, row.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClockIn_NoEmployeeProfile(t *testing.T) {
	svc, mock, db, _ := setupService(t, newMemRepo(), time.Now())
	defer db.Close()

	actor := employeeActor
	actor.EmployeeID = ""
	_, err := svc.ClockIn(context.Background(), actor, ClockInRequest{})

	assert.ErrorIs(t, err, attendanceerrors.ErrNoEmployeeProfile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClockOut(t *testing.T) {
	checkIn := time.Date(2026, 3, 11, 8, 0, 0, 0, wib)

	t.Run("reports worked hours", func(t *testing.T) {
		repo := newMemRepo(empA)
		repo.put(Attendance{
			ID:             uuid.New(),
			CompanyID:      uuid.MustParse(testCompanyID),
			EmployeeID:     uuid.MustParse(empA),
			AttendanceDate: DateOf(checkIn),
			CheckIn:        &checkIn,
			Status:         StatusPresent,
			Source:         SourceManual,
		})
		svc, mock, db, _ := setupService(t, repo, checkIn.Add(8*time.Hour+30*time.Minute))
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.ClockOut(context.Background(), employeeActor, ClockOutRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 8.5, resp.WorkedHours)
		assert.Equal(t, float64(8), resp.MinimumWorkHours)
		assert.True(t, resp.MetMinimum)
		assert.NotNil(t, resp.CheckOut)
		assert.Equal(t, 1, repo.updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short day misses minimum", func(t *testing.T) {
		repo := newMemRepo(empA)
		repo.put(Attendance{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(empA),
			AttendanceDate: DateOf(checkIn),
			CheckIn:        &checkIn,
			Status:         StatusPresent,
		})
		svc, mock, db, _ := setupService(t, repo, checkIn.Add(4*time.Hour))
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.ClockOut(context.Background(), employeeActor, ClockOutRequest{})

		assert.NoError(t, err)
		assert.Equal(t, 4.0, resp.WorkedHours)
		assert.False(t, resp.MetMinimum)
	})

	t.Run("without check-in", func(t *testing.T) {
		svc, mock, db, _ := setupService(t, newMemRepo(empA), checkIn)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.ClockOut(context.Background(), employeeActor, ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row has no check-in", func(t *testing.T) {
		repo := newMemRepo(empA)
		repo.put(Attendance{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(empA),
			AttendanceDate: DateOf(checkIn),
			Status:         StatusAbsent,
			Source:         SourceEvaluator,
		})
		svc, mock, db, _ := setupService(t, repo, checkIn)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.ClockOut(context.Background(), employeeActor, ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
		assert.Equal(t, 0, repo.updated)
	})

	t.Run("twice", func(t *testing.T) {
		out := checkIn.Add(8 * time.Hour)
		repo := newMemRepo(empA)
		repo.put(Attendance{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(empA),
			AttendanceDate: DateOf(checkIn),
			CheckIn:        &checkIn,
			CheckOut:       &out,
			Status:         StatusPresent,
		})
		svc, mock, db, _ := setupService(t, repo, out.Add(time.Hour))
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.ClockOut(context.Background(), employeeActor, ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})
}

func TestGetAll(t *testing.T) {
	t.Run("employee only sees own rows", func(t *testing.T) {
		repo := newMemRepo()
		svc, _, db, _ := setupService(t, repo, time.Now())
		defer db.Close()

		_, err := svc.GetAll(context.Background(), employeeActor, ListFilter{EmployeeID: empB})

		assert.NoError(t, err)
		assert.Equal(t, empA, repo.lastFilter.EmployeeID)
	})

	t.Run("admin may filter by employee", func(t *testing.T) {
		repo := newMemRepo()
		svc, _, db, _ := setupService(t, repo, time.Now())
		defer db.Close()

		admin := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: testCompanyID}
		_, err := svc.GetAll(context.Background(), admin, ListFilter{EmployeeID: empB})

		assert.NoError(t, err)
		assert.Equal(t, empB, repo.lastFilter.EmployeeID)
	})

	t.Run("inverted range", func(t *testing.T) {
		svc, _, db, _ := setupService(t, newMemRepo(), time.Now())
		defer db.Close()

		_, err := svc.GetAll(context.Background(), employeeActor, ListFilter{From: "2026-03-10", To: "2026-03-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, wib)

	t.Run("company admin evaluates own company", func(t *testing.T) {
		repo := newMemRepo(empA, empB)
		repo.onLeave[empA] = true
		svc, _, db, rec := setupService(t, repo, now)
		defer db.Close()

		admin := domain.Identity{UserID: "u-1", Role: domain.RoleCompanyAdmin, CompanyID: testCompanyID}
		res, err := svc.Evaluate(context.Background(), admin, "22222222-2222-2222-2222-222222222222")

		assert.NoError(t, err)
		assert.Equal(t, testCompanyID, res.CompanyID)
		assert.Equal(t, 1, res.OnLeave)
		assert.Equal(t, 1, res.Absent)
		if assert.Len(t, rec.entries, 1) {
			assert.Equal(t, activity.ActionSystem, rec.entries[0].Action)
			assert.Equal(t, 2, rec.entries[0].Metadata["created"])
		}
	})

	t.Run("platform admin needs a company", func(t *testing.T) {
		svc, _, db, rec := setupService(t, newMemRepo(), now)
		defer db.Close()

		_, err := svc.Evaluate(context.Background(), domain.Identity{UserID: "root", Role: domain.RolePlatformAdmin}, "")

		assert.ErrorIs(t, err, attendanceerrors.ErrCompanyRequired)
		assert.Empty(t, rec.entries)
	})

	t.Run("malformed company id never reaches storage", func(t *testing.T) {
		svc, _, db, rec := setupService(t, newMemRepo(empA), now)
		defer db.Close()

		_, err := svc.Evaluate(context.Background(), domain.Identity{UserID: "root", Role: domain.RolePlatformAdmin}, "not-a-uuid")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCompanyID)
		assert.Empty(t, rec.entries)
	})

	t.Run("platform admin picks the company", func(t *testing.T) {
		svc, _, db, rec := setupService(t, newMemRepo(empA), now)
		defer db.Close()

		res, err := svc.Evaluate(context.Background(), domain.Identity{UserID: "root", Role: domain.RolePlatformAdmin}, testCompanyID)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		if assert.Len(t, rec.entries, 1) {
			assert.Equal(t, testCompanyID, rec.entries[0].CompanyID)
		}
	})
}
