package stats

import (
	"fmt"
	"testing"

	"github.com/teukgeun/teukgeun/pkg/model"
)

func shiftAt(date string, recognized int) model.GeneratedShift {
	end := 9*60 + recognized
	return model.GeneratedShift{
		Date:      date,
		StartTime: "09:00:00",
		EndTime:   fmt.Sprintf("%02d:%02d:00", end/60, end%60),
	}
}

func TestBuildWeeklyReport(t *testing.T) {
	shifts := []model.GeneratedShift{
		shiftAt("2025-03-08", 300), // W09
		shiftAt("2025-03-09", 180), // W09
		shiftAt("2025-03-15", 120), // W10
	}

	report := BuildWeeklyReport(shifts, 720)

	if report.TotalShifts != 3 {
		t.Errorf("TotalShifts = %v, expected 3", report.TotalShifts)
	}
	if report.TotalMinutes != 600 {
		t.Errorf("TotalMinutes = %v, expected 600", report.TotalMinutes)
	}
	if len(report.Weeks) != 2 {
		t.Fatalf("len(Weeks) = %v, expected 2", len(report.Weeks))
	}

	// 周按键升序
	if report.Weeks[0].WeekKey != "W09" || report.Weeks[1].WeekKey != "W10" {
		t.Errorf("week keys = %v / %v, expected W09 / W10", report.Weeks[0].WeekKey, report.Weeks[1].WeekKey)
	}
	if report.Weeks[0].Minutes != 480 || report.Weeks[0].Shifts != 2 {
		t.Errorf("W09 = %v min / %v shifts, expected 480 / 2", report.Weeks[0].Minutes, report.Weeks[0].Shifts)
	}
	if report.BusiestWeek != "W09" {
		t.Errorf("BusiestWeek = %v, expected W09", report.BusiestWeek)
	}

	// 占用率相对周上限
	if got := report.Weeks[0].Utilization; got < 0.66 || got > 0.67 {
		t.Errorf("W09 utilization = %v, expected ~0.667", got)
	}
}

func TestBuildWeeklyReport_ZeroCap(t *testing.T) {
	report := BuildWeeklyReport([]model.GeneratedShift{shiftAt("2025-03-08", 120)}, 0)
	if report.Weeks[0].Utilization != 0 {
		t.Errorf("utilization with zero cap = %v, expected 0", report.Weeks[0].Utilization)
	}
}

func TestBuildWeeklyReport_Empty(t *testing.T) {
	report := BuildWeeklyReport(nil, 720)
	if report.TotalShifts != 0 || report.TotalMinutes != 0 || len(report.Weeks) != 0 {
		t.Errorf("empty input should produce empty report, got %+v", report)
	}
	if report.BusiestWeek != "" {
		t.Errorf("BusiestWeek = %v, expected empty", report.BusiestWeek)
	}
}
