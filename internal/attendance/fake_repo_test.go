package attendance

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"gorm.io/gorm"
)

// memRepo keeps rows in memory and enforces the (employee, date) uniqueness
// the database index would.
type memRepo struct {
	mu         sync.Mutex
	rows       map[string]*Attendance
	employees  []string
	onLeave    map[string]bool
	existsErr  map[string]error
	listErr    error
	inserted   int
	updated    int
	lastFilter ListFilter
}

func newMemRepo(employees ...string) *memRepo {
	return &memRepo{
		rows:      map[string]*Attendance{},
		employees: employees,
		onLeave:   map[string]bool{},
		existsErr: map[string]error{},
	}
}

func rowKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(dateLayout)
}

func (r *memRepo) put(a Attendance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rowKey(a.EmployeeID.String(), a.AttendanceDate)] = &a
}

func (r *memRepo) get(employeeID string, date time.Time) (Attendance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[rowKey(employeeID, date)]
	if !ok {
		return Attendance{}, false
	}
	return *a, true
}

func (r *memRepo) WithTx(*sql.Tx) Repository { return r }

func (r *memRepo) Create(_ context.Context, a *Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rowKey(a.EmployeeID.String(), a.AttendanceDate)] = a
	r.inserted++
	return nil
}

func (r *memRepo) InsertIfAbsent(_ context.Context, a *Attendance) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rowKey(a.EmployeeID.String(), a.AttendanceDate)
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	r.rows[key] = a
	r.inserted++
	return true, nil
}

func (r *memRepo) ExistsForDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.existsErr[employeeID]; err != nil {
		return false, err
	}
	_, ok := r.rows[rowKey(employeeID, date)]
	return ok, nil
}

func (r *memRepo) FindByEmployeeAndDate(_ context.Context, _, employeeID string, date time.Time) (*Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[rowKey(employeeID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) FindAll(_ context.Context, _ string, filter ListFilter) ([]Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	var out []Attendance
	for _, a := range r.rows {
		if filter.EmployeeID != "" && a.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, a *Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rowKey(a.EmployeeID.String(), a.AttendanceDate)] = a
	r.updated++
	return nil
}

func (r *memRepo) CountByStatus(context.Context, string, string, time.Time, time.Time) (map[Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[Status]int64{}
	for _, a := range r.rows {
		out[a.Status]++
	}
	return out, nil
}

func (r *memRepo) ListActiveEmployeeIDs(context.Context, string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.employees, nil
}

func (r *memRepo) HasApprovedLeaveOn(_ context.Context, employeeID string, _ time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onLeave[employeeID], nil
}
