package service

import (
	"context"

	"github.com/hrmslite/hrms-backend/internal/hrms/clock"
	"github.com/hrmslite/hrms-backend/internal/hrms/repository"
)

// DashboardStats is the body of GET /api/dashboard/stats
type DashboardStats struct {
	Employees        EmployeeSummary                `json:"employees"`
	Today            TodaySummary                   `json:"today"`
	Monthly          MonthlySummary                 `json:"monthly"`
	RecentAttendance []*repository.AttendanceRecord `json:"recent_attendance"`
}

// EmployeeSummary counts employees overall and per department
type EmployeeSummary struct {
	Total        int                          `json:"total"`
	ByDepartment []repository.DepartmentCount `json:"by_department"`
}

// TodaySummary describes attendance on the current day
type TodaySummary struct {
	Date        string `json:"date"`
	TotalMarked int    `json:"total_marked"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	NotMarked   int    `json:"not_marked"`
}

// MonthlySummary describes attendance since the first of the month
type MonthlySummary struct {
	TotalRecords int `json:"total_records"`
	PresentCount int `json:"present_count"`
	AbsentCount  int `json:"absent_count"`
}

// DashboardService builds the dashboard rollup
type DashboardService struct {
	dashboard DashboardStore
	clock     clock.Clock
}

// NewDashboardService creates a new dashboard service. clk decides the
// current day and month.
func NewDashboardService(dashboard DashboardStore, clk clock.Clock) *DashboardService {
	return &DashboardService{dashboard: dashboard, clock: clk}
}

// Stats returns the dashboard figures as of now
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	today := s.clock.Today()

	snap, err := s.dashboard.Snapshot(ctx, today, s.clock.MonthStart())
	if err != nil {
		return nil, internal(err, "Failed to fetch dashboard statistics")
	}

	return &DashboardStats{
		Employees: EmployeeSummary{
			Total:        snap.TotalEmployees,
			ByDepartment: snap.ByDepartment,
		},
		Today: TodaySummary{
			Date:        today,
			TotalMarked: snap.Today.Total,
			Present:     snap.Today.Present,
			Absent:      snap.Today.Absent,
			NotMarked:   max(0, snap.TotalEmployees-snap.Today.Total),
		},
		Monthly: MonthlySummary{
			TotalRecords: snap.Month.Total,
			PresentCount: snap.Month.Present,
			AbsentCount:  snap.Month.Absent,
		},
		RecentAttendance: snap.Recent,
	}, nil
}
