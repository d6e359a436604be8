//go:build integration

package repository_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/internal/hrms/schema"
	"github.com/hrmslite/hrms-backend/pkg/errors"
	"github.com/hrmslite/hrms-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suite *testutil.IntegrationSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testutil.NewIntegrationSuite(ctx, schema.Migrate)
	if err != nil {
		log.Fatalf("failed to create integration suite: %v", err)
	}

	code := m.Run()
	testutil.TerminateContainer(ctx)
	os.Exit(code)
}

func createEmployee(t *testing.T, ctx context.Context, repo *repository.EmployeeRepository, f testutil.EmployeeFixture) *repository.Employee {
	t.Helper()
	emp := &repository.Employee{
		EmployeeID: f.EmployeeID,
		FullName:   f.FullName,
		Email:      f.Email,
		Department: f.Department,
	}
	require.NoError(t, repo.Create(ctx, emp))
	return emp
}

func TestIntegration_EmployeeLifecycle(t *testing.T) {
	ctx := context.Background()
	suite.Reset(t, ctx)

	employees := repository.NewEmployeeRepository(suite.DB)
	attendance := repository.NewAttendanceRepository(suite.DB)

	emp := createEmployee(t, ctx, employees, suite.Fixtures.Employee(testutil.WithEmployeeID("EMP001")))
	assert.NotZero(t, emp.ID)
	assert.False(t, emp.CreatedAt.IsZero())

	got, err := employees.GetByEmployeeID(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, emp.Email, got.Email)

	// Same id, different email.
	dup := &repository.Employee{EmployeeID: "EMP001", FullName: "Other", Email: "other@example.com", Department: "Sales"}
	err = employees.Create(ctx, dup)
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.NotEmpty(t, appErr.Field("employee_id"))

	// Different id, same email.
	dup = &repository.Employee{EmployeeID: "EMP002", FullName: "Other", Email: emp.Email, Department: "Sales"}
	err = employees.Create(ctx, dup)
	require.True(t, errors.As(err, &appErr))
	assert.NotEmpty(t, appErr.Field("email"))

	_, created, err := attendance.Mark(ctx, "EMP001", "2024-06-01", repository.StatusPresent)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, employees.Delete(ctx, "EMP001"))

	records, err := attendance.List(ctx, repository.AttendanceFilter{EmployeeID: "EMP001"})
	require.NoError(t, err)
	assert.Empty(t, records, "attendance must be removed with the employee")

	err = employees.Delete(ctx, "EMP001")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestIntegration_MarkIsIdempotent(t *testing.T) {
	ctx := context.Background()
	suite.Reset(t, ctx)

	employees := repository.NewEmployeeRepository(suite.DB)
	attendance := repository.NewAttendanceRepository(suite.DB)
	createEmployee(t, ctx, employees, suite.Fixtures.Employee(testutil.WithEmployeeID("EMP001")))

	first, created, err := attendance.Mark(ctx, "EMP001", "2024-06-01", repository.StatusPresent)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := attendance.Mark(ctx, "EMP001", "2024-06-01", repository.StatusAbsent)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, repository.StatusAbsent, second.Status)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt), "created_at is not touched by updates")

	records, err := attendance.ListForEmployee(ctx, "EMP001", "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-06-01", records[0].Date)
}

func TestIntegration_ConcurrentMarks(t *testing.T) {
	ctx := context.Background()
	suite.Reset(t, ctx)

	employees := repository.NewEmployeeRepository(suite.DB)
	attendance := repository.NewAttendanceRepository(suite.DB)
	createEmployee(t, ctx, employees, suite.Fixtures.Employee(testutil.WithEmployeeID("EMP001")))

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	creates := 0
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := attendance.Mark(ctx, "EMP001", "2024-06-01", repository.StatusPresent)
			if err != nil {
				errs <- err
				return
			}
			if created {
				mu.Lock()
				creates++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent mark failed: %v", err)
	}
	assert.Equal(t, 1, creates, "exactly one request creates the row")

	counts, err := attendance.Counts(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, 1, counts.TotalDays)
}

func TestIntegration_StatsAndDashboard(t *testing.T) {
	ctx := context.Background()
	suite.Reset(t, ctx)

	employees := repository.NewEmployeeRepository(suite.DB)
	attendance := repository.NewAttendanceRepository(suite.DB)
	dashboard := repository.NewDashboardRepository(suite.DB)

	createEmployee(t, ctx, employees, suite.Fixtures.Employee(testutil.WithEmployeeID("EMP001"), testutil.WithDepartment("Engineering")))
	createEmployee(t, ctx, employees, suite.Fixtures.Employee(testutil.WithEmployeeID("EMP002"), testutil.WithDepartment("Sales")))

	counts, err := attendance.Counts(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, 0, counts.TotalDays)
	assert.Equal(t, 0, counts.Percentage())

	for _, m := range []testutil.AttendanceFixture{
		suite.Fixtures.Present("EMP001", "2024-06-01"),
		suite.Fixtures.Present("EMP001", "2024-06-02"),
		suite.Fixtures.Absent("EMP001", "2024-06-03"),
		suite.Fixtures.Present("EMP002", "2024-06-03"),
	} {
		_, _, err := attendance.Mark(ctx, m.EmployeeID, m.Date, m.Status)
		require.NoError(t, err)
	}

	counts, err = attendance.Counts(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, 3, counts.TotalDays)
	assert.Equal(t, 67, counts.Percentage())

	records, err := attendance.List(ctx, repository.AttendanceFilter{From: "2024-06-02", To: "2024-06-03"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2024-06-03", records[0].Date)

	records, err = attendance.List(ctx, repository.AttendanceFilter{From: "2024-06-03", To: "2024-06-01"})
	require.NoError(t, err)
	assert.Empty(t, records)

	snap, err := dashboard.Snapshot(ctx, "2024-06-03", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.TotalEmployees)
	assert.Equal(t, repository.StatusTotals{Total: 2, Present: 1, Absent: 1}, snap.Today)
	assert.Equal(t, repository.StatusTotals{Total: 4, Present: 3, Absent: 1}, snap.Month)
	assert.Len(t, snap.ByDepartment, 2)
	assert.Len(t, snap.Recent, 4)
}
