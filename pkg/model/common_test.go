package model

import (
	"testing"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{"2025年第一个周一", "2025-01-06", "W01"},
		{"第一个周一之前", "2025-01-05", "W00"},
		{"元旦当天", "2025-01-01", "W00"},
		{"第一周的周日", "2025-01-12", "W01"},
		{"第二周开始", "2025-01-13", "W02"},
		{"三月初", "2025-03-01", "W08"},
		{"三月的周一", "2025-03-03", "W09"},
		{"无效日期", "not-a-date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WeekKey(tt.date); result != tt.expected {
				t.Errorf("WeekKey(%s) = %v, expected %v", tt.date, result, tt.expected)
			}
		})
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{"周六", "2025-03-01", "2025-09"},
		{"同一ISO周的周日", "2025-03-02", "2025-09"},
		{"下一ISO周的周一", "2025-03-03", "2025-10"},
		{"无效日期", "bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ISOWeekKey(tt.date); result != tt.expected {
				t.Errorf("ISOWeekKey(%s) = %v, expected %v", tt.date, result, tt.expected)
			}
		})
	}
}

func TestGeneratedShift_RecognizedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		shift    GeneratedShift
		expected int
	}{
		{
			"5小时无休息",
			GeneratedShift{StartTime: "09:00:00", EndTime: "14:00:00", BreakMinutes: 0},
			300,
		},
		{
			"5小时扣30分钟休息",
			GeneratedShift{StartTime: "09:00:00", EndTime: "14:30:00", BreakMinutes: 30},
			300,
		},
		{
			"2小时零散班次",
			GeneratedShift{StartTime: "13:05:00", EndTime: "15:05:00", BreakMinutes: 0},
			120,
		},
		{
			"时间格式错误",
			GeneratedShift{StartTime: "bad", EndTime: "14:00:00", BreakMinutes: 30},
			-30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.shift.RecognizedMinutes(); result != tt.expected {
				t.Errorf("RecognizedMinutes() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestTotalRecognizedMinutes(t *testing.T) {
	shifts := []GeneratedShift{
		{StartTime: "09:00:00", EndTime: "14:00:00", BreakMinutes: 0},
		{StartTime: "13:00:00", EndTime: "17:30:00", BreakMinutes: 30},
	}
	if total := TotalRecognizedMinutes(shifts); total != 540 {
		t.Errorf("TotalRecognizedMinutes() = %v, expected 540", total)
	}
	if total := TotalRecognizedMinutes(nil); total != 0 {
		t.Errorf("TotalRecognizedMinutes(nil) = %v, expected 0", total)
	}
}

func TestGenerationOptions_Normalize(t *testing.T) {
	opts := GenerationOptions{TargetMonth: "2025-03", TotalHours: 20, EmployeeName: "김민수"}
	normalized := opts.Normalize()

	if normalized.MaxWeeklyOvertimeMinutes != DefaultWeeklyCapMinutes {
		t.Errorf("MaxWeeklyOvertimeMinutes = %v, expected %v", normalized.MaxWeeklyOvertimeMinutes, DefaultWeeklyCapMinutes)
	}
	if normalized.BreakMinutes4h != DefaultBreak4h {
		t.Errorf("BreakMinutes4h = %v, expected %v", normalized.BreakMinutes4h, DefaultBreak4h)
	}
	if normalized.BreakMinutes8h != DefaultBreak8h {
		t.Errorf("BreakMinutes8h = %v, expected %v", normalized.BreakMinutes8h, DefaultBreak8h)
	}

	// 显式指定的值不被覆盖
	custom := GenerationOptions{MaxWeeklyOvertimeMinutes: 600, BreakMinutes4h: 20, BreakMinutes8h: 45}.Normalize()
	if custom.MaxWeeklyOvertimeMinutes != 600 || custom.BreakMinutes4h != 20 || custom.BreakMinutes8h != 45 {
		t.Error("Normalize should not override explicit values")
	}
}

func TestNewWorkRecord(t *testing.T) {
	shift := GeneratedShift{
		Date:         "2025-03-01",
		StartTime:    "09:00:00",
		EndTime:      "14:30:00",
		BreakMinutes: 30,
		Description:  "삼일절",
	}

	record := NewWorkRecord(NewBaseModel().ID, "김민수", shift)

	if record.WeekKey != "W08" {
		t.Errorf("WeekKey = %v, expected W08", record.WeekKey)
	}
	if record.EmployeeName != "김민수" {
		t.Errorf("EmployeeName = %v, expected 김민수", record.EmployeeName)
	}
	if record.ID.String() == "" {
		t.Error("record should have an ID assigned")
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}
