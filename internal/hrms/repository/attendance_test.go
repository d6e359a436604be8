package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
	"github.com/hrmslite/hrms-backend/pkg/errors"
	"github.com/hrmslite/hrms-backend/pkg/testutil"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	attendanceCols = []string{"id", "employee_id", "date", "status", "created_at"}
	recordCols     = []string{"id", "employee_id", "date", "status", "created_at", "full_name", "department"}
)

func TestAttendanceRepository_List_NoFilter(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectQuery("JOIN employees e ON e.employee_id = a.employee_id ORDER BY a.date DESC, e.full_name ASC").
		WillReturnRows(testutil.MockRows(recordCols...).
			AddRow(2, "EMP001", "2024-06-02", "Absent", now, "Alice Jones", "Engineering").
			AddRow(1, "EMP001", "2024-06-01", "Present", now, "Alice Jones", "Engineering"))

	records, err := repository.NewAttendanceRepository(mockDB.DB).List(context.Background(), repository.AttendanceFilter{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-06-02", records[0].Date)
	assert.Equal(t, "Alice Jones", records[0].FullName)
	assert.Equal(t, "Engineering", records[1].Department)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_List_AllFilters(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("WHERE a.employee_id = $1 AND a.date = $2 AND a.date >= $3 AND a.date <= $4 ORDER BY").
		WithArgs("EMP001", "2024-06-01", "2024-05-01", "2024-06-30").
		WillReturnRows(testutil.MockRows(recordCols...))

	filter := repository.AttendanceFilter{
		EmployeeID: "EMP001",
		Date:       "2024-06-01",
		From:       "2024-05-01",
		To:         "2024-06-30",
	}
	records, err := repository.NewAttendanceRepository(mockDB.DB).List(context.Background(), filter)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_List_InvertedRange(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	// The range is passed through untouched; the database returns nothing.
	mockDB.ExpectQuery("WHERE a.date >= $1 AND a.date <= $2").
		WithArgs("2024-06-30", "2024-06-01").
		WillReturnRows(testutil.MockRows(recordCols...))

	records, err := repository.NewAttendanceRepository(mockDB.DB).List(context.Background(),
		repository.AttendanceFilter{From: "2024-06-30", To: "2024-06-01"})

	require.NoError(t, err)
	assert.Empty(t, records)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_ListForEmployee(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("FROM attendance WHERE employee_id = $1 AND date >= $2 ORDER BY date DESC").
		WithArgs("EMP001", "2024-06-01").
		WillReturnRows(testutil.MockRows(attendanceCols...).
			AddRow(3, "EMP001", "2024-06-03", "Present", time.Now()))

	records, err := repository.NewAttendanceRepository(mockDB.DB).ListForEmployee(context.Background(), "EMP001", "2024-06-01", "")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-06-03", records[0].Date)
	mockDB.ExpectationsWereMet(t)
}

func expectEmployeeExists(mockDB *testutil.MockDB, employeeID string, exists bool) {
	mockDB.ExpectQuery("SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1)").
		WithArgs(employeeID).
		WillReturnRows(testutil.MockRows("exists").AddRow(exists))
}

func TestAttendanceRepository_Mark_Creates(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	expectEmployeeExists(mockDB, "EMP001", true)
	mockDB.ExpectQuery("FROM attendance WHERE employee_id = $1 AND date = $2").
		WithArgs("EMP001", "2024-06-01").
		WillReturnRows(testutil.MockRows(attendanceCols...))
	mockDB.ExpectQuery("INSERT INTO attendance").
		WithArgs("EMP001", "2024-06-01", "Present").
		WillReturnRows(testutil.MockRows(attendanceCols...).
			AddRow(1, "EMP001", "2024-06-01", "Present", time.Now()))

	rec, created, err := repository.NewAttendanceRepository(mockDB.DB).Mark(context.Background(), "EMP001", "2024-06-01", "Present")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Present", rec.Status)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Mark_UpdatesExisting(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	expectEmployeeExists(mockDB, "EMP001", true)
	mockDB.ExpectQuery("FROM attendance WHERE employee_id = $1 AND date = $2").
		WillReturnRows(testutil.MockRows(attendanceCols...).
			AddRow(1, "EMP001", "2024-06-01", "Present", created))
	mockDB.ExpectQuery("UPDATE attendance SET status = $1").
		WithArgs("Absent", "EMP001", "2024-06-01").
		WillReturnRows(testutil.MockRows(attendanceCols...).
			AddRow(1, "EMP001", "2024-06-01", "Absent", created))

	rec, wasCreated, err := repository.NewAttendanceRepository(mockDB.DB).Mark(context.Background(), "EMP001", "2024-06-01", "Absent")

	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "Absent", rec.Status)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Mark_RetriesAsUpdateOnRace(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	expectEmployeeExists(mockDB, "EMP001", true)
	mockDB.ExpectQuery("FROM attendance WHERE employee_id = $1 AND date = $2").
		WillReturnRows(testutil.MockRows(attendanceCols...))
	mockDB.ExpectQuery("INSERT INTO attendance").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_attendance"})
	mockDB.ExpectQuery("UPDATE attendance SET status = $1").
		WithArgs("Present", "EMP001", "2024-06-01").
		WillReturnRows(testutil.MockRows(attendanceCols...).
			AddRow(5, "EMP001", "2024-06-01", "Present", time.Now()))

	rec, created, err := repository.NewAttendanceRepository(mockDB.DB).Mark(context.Background(), "EMP001", "2024-06-01", "Present")

	require.NoError(t, err)
	assert.False(t, created, "losing the insert race reports an update")
	assert.Equal(t, int64(5), rec.ID)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Mark_UnknownEmployee(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	expectEmployeeExists(mockDB, "EMP404", false)

	_, _, err := repository.NewAttendanceRepository(mockDB.DB).Mark(context.Background(), "EMP404", "2024-06-01", "Present")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Mark_EmployeeDeletedConcurrently(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	expectEmployeeExists(mockDB, "EMP001", true)
	mockDB.ExpectQuery("FROM attendance WHERE employee_id = $1 AND date = $2").
		WillReturnRows(testutil.MockRows(attendanceCols...))
	mockDB.ExpectQuery("INSERT INTO attendance").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "attendance_employee_id_fkey"})

	_, _, err := repository.NewAttendanceRepository(mockDB.DB).Mark(context.Background(), "EMP001", "2024-06-01", "Present")

	assert.True(t, errors.Is(err, errors.ErrNotFound))
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Counts(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("COUNT(*) AS total_days").
		WithArgs("EMP001").
		WillReturnRows(testutil.MockRows("total_days", "present_days", "absent_days").AddRow(3, 2, 1))

	counts, err := repository.NewAttendanceRepository(mockDB.DB).Counts(context.Background(), "EMP001")

	require.NoError(t, err)
	assert.Equal(t, 3, counts.TotalDays)
	assert.Equal(t, 2, counts.PresentDays)
	assert.Equal(t, 1, counts.AbsentDays)
	assert.Equal(t, 67, counts.Percentage())
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceCounts_Percentage(t *testing.T) {
	tests := []struct {
		name   string
		counts repository.AttendanceCounts
		want   int
	}{
		{"no records", repository.AttendanceCounts{}, 0},
		{"all present", repository.AttendanceCounts{TotalDays: 4, PresentDays: 4}, 100},
		{"all absent", repository.AttendanceCounts{TotalDays: 4, AbsentDays: 4}, 0},
		{"rounds half up", repository.AttendanceCounts{TotalDays: 8, PresentDays: 1, AbsentDays: 7}, 13},
		{"rounds down", repository.AttendanceCounts{TotalDays: 3, PresentDays: 1, AbsentDays: 2}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.Percentage())
		})
	}
}
