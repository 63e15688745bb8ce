package engine

import (
	"strings"
	"testing"

	"github.com/teukgeun/teukgeun/pkg/calendar"
	"github.com/teukgeun/teukgeun/pkg/errors"
	"github.com/teukgeun/teukgeun/pkg/model"
)

func seedPtr(v int64) *int64 { return &v }

func TestGenerator_March2025EndToEnd(t *testing.T) {
	g := New(calendar.NewKRHolidayTable())

	opts := model.GenerationOptions{
		TargetMonth:  "2025-03",
		TotalHours:   20,
		EmployeeName: "김민수",
		Seed:         seedPtr(42),
	}

	result, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	target := 20 * 60

	// 容量充足的月份，修正后偏差不超过1分钟
	if result.ErrorMinutes > 1 {
		t.Errorf("ErrorMinutes = %v, expected <= 1", result.ErrorMinutes)
	}
	if result.TotalAllocatedMinutes < target-1 || result.TotalAllocatedMinutes > target+1 {
		t.Errorf("TotalAllocatedMinutes = %v, expected within 1 of %v", result.TotalAllocatedMinutes, target)
	}
	if result.Shortfall != 0 {
		t.Errorf("Shortfall = %v, expected 0", result.Shortfall)
	}
	if result.Attempts < 1 || result.Attempts > 10 {
		t.Errorf("Attempts = %v, expected 1..10", result.Attempts)
	}
	if len(result.Shifts) == 0 {
		t.Fatal("expected at least one shift")
	}

	weekTotals := make(map[string]int)
	seen := make(map[string]bool)
	for _, s := range result.Shifts {
		if !strings.HasPrefix(s.Date, "2025-03-") {
			t.Errorf("shift date %s outside target month", s.Date)
		}
		if seen[s.Date] {
			t.Errorf("date %s used twice", s.Date)
		}
		seen[s.Date] = true

		rec := s.RecognizedMinutes()
		if rec <= 0 {
			t.Errorf("%s recognized %v, expected positive", s.Date, rec)
		}
		if rec > 300 {
			t.Errorf("%s recognized %v exceeds per-shift ceiling", s.Date, rec)
		}
		if s.Description == "" {
			t.Errorf("%s has empty description", s.Date)
		}
		weekTotals[model.ISOWeekKey(s.Date)] += rec
	}
	for week, minutes := range weekTotals {
		if minutes > model.DefaultWeeklyCapMinutes {
			t.Errorf("week %s total %v exceeds weekly cap", week, minutes)
		}
	}
}

func TestGenerator_PersonaStableAcrossRuns(t *testing.T) {
	g := New(calendar.NewKRHolidayTable())

	opts := model.GenerationOptions{
		TargetMonth:  "2025-03",
		TotalHours:   12,
		EmployeeName: "이영희",
		Seed:         seedPtr(1),
	}

	first, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	opts.Seed = seedPtr(999)
	second, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// 种子不同抖动不同，但画像只由姓名决定
	if first.Persona != second.Persona || first.TimePreference != second.TimePreference {
		t.Errorf("persona changed across runs: %v/%v vs %v/%v",
			first.Persona, first.TimePreference, second.Persona, second.TimePreference)
	}
	if first.PersonaLabel != second.PersonaLabel {
		t.Errorf("persona label changed: %v vs %v", first.PersonaLabel, second.PersonaLabel)
	}
}

func TestGenerator_SeededRunsReproducible(t *testing.T) {
	g := New(calendar.NewKRHolidayTable())

	opts := model.GenerationOptions{
		TargetMonth:  "2025-03",
		TotalHours:   15,
		EmployeeName: "박철수",
		Seed:         seedPtr(7),
	}

	first, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(first.Shifts) != len(second.Shifts) {
		t.Fatalf("shift counts differ: %v vs %v", len(first.Shifts), len(second.Shifts))
	}
	for i := range first.Shifts {
		if first.Shifts[i] != second.Shifts[i] {
			t.Errorf("shift %d differs: %+v vs %+v", i, first.Shifts[i], second.Shifts[i])
		}
	}
}

func TestGenerator_InfeasibleTargetIsBestEffort(t *testing.T) {
	// 2025年2月只有8个周末候选日，单班次上限300分钟：
	// 1000小时远超容量，引擎应尽力而为并报告缺口，而不是报错。
	g := New(calendar.EmptyProvider{})

	opts := model.GenerationOptions{
		TargetMonth:              "2025-02",
		TotalHours:               1000,
		EmployeeName:             "최지은",
		MaxWeeklyOvertimeMinutes: 100000,
		Seed:                     seedPtr(3),
	}

	result, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v, infeasible target must not fail", err)
	}

	if result.TotalAllocatedMinutes > 8*300 {
		t.Errorf("TotalAllocatedMinutes = %v, exceeds monthly capacity %v", result.TotalAllocatedMinutes, 8*300)
	}
	if result.Shortfall <= 0 {
		t.Errorf("Shortfall = %v, expected positive for infeasible target", result.Shortfall)
	}
	if len(result.Shifts) != 8 {
		t.Errorf("len(Shifts) = %v, expected all 8 candidate days used", len(result.Shifts))
	}
}

func TestGenerator_InvalidOptions(t *testing.T) {
	g := New(calendar.NewKRHolidayTable())

	tests := []struct {
		name string
		opts model.GenerationOptions
	}{
		{"月份格式错误", model.GenerationOptions{TargetMonth: "2025/03", TotalHours: 10, EmployeeName: "김민수"}},
		{"目标时数为零", model.GenerationOptions{TargetMonth: "2025-03", TotalHours: 0, EmployeeName: "김민수"}},
		{"目标时数为负", model.GenerationOptions{TargetMonth: "2025-03", TotalHours: -5, EmployeeName: "김민수"}},
		{"姓名为空", model.GenerationOptions{TargetMonth: "2025-03", TotalHours: 10, EmployeeName: ""}},
		{"周上限为负", model.GenerationOptions{TargetMonth: "2025-03", TotalHours: 10, EmployeeName: "김민수", MaxWeeklyOvertimeMinutes: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.opts)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, errors.CodeInvalidInput) {
				t.Errorf("error code = %v, expected INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestGenerator_WeeklyCapHoldsWhenBaseFillsCap(t *testing.T) {
	// 员工"a"是均衡稳定型；2025-01的首个ISO周有3个候选日
	// （元旦加周末），均分恰好打满默认周上限720。此时前序班次
	// 的正向收工抖动必须从后续班次扣除，否则整周会超限。
	g := New(calendar.NewKRHolidayTable())

	for seed := int64(0); seed < 10; seed++ {
		opts := model.GenerationOptions{
			TargetMonth:  "2025-01",
			TotalHours:   18,
			EmployeeName: "a",
			Seed:         seedPtr(seed),
		}

		result, err := g.Generate(opts)
		if err != nil {
			t.Fatalf("seed %v: Generate() error = %v", seed, err)
		}
		if result.Persona != model.ArchetypeSteady {
			t.Fatalf("seed %v: Persona = %v, expected %v", seed, result.Persona, model.ArchetypeSteady)
		}
		if result.ErrorMinutes > 1 {
			t.Errorf("seed %v: ErrorMinutes = %v, expected <= 1", seed, result.ErrorMinutes)
		}

		weekTotals := make(map[string]int)
		for _, s := range result.Shifts {
			weekTotals[model.ISOWeekKey(s.Date)] += s.RecognizedMinutes()
		}
		for week, minutes := range weekTotals {
			if minutes > model.DefaultWeeklyCapMinutes {
				t.Errorf("seed %v: week %s total %v exceeds weekly cap", seed, week, minutes)
			}
		}
	}
}

func TestGenerator_CustomWeeklyCap(t *testing.T) {
	g := New(calendar.NewKRHolidayTable())

	opts := model.GenerationOptions{
		TargetMonth:              "2025-03",
		TotalHours:               18,
		EmployeeName:             "정수빈",
		MaxWeeklyOvertimeMinutes: 400,
		Seed:                     seedPtr(11),
	}

	result, err := g.Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	weekTotals := make(map[string]int)
	for _, s := range result.Shifts {
		weekTotals[model.ISOWeekKey(s.Date)] += s.RecognizedMinutes()
	}
	for week, minutes := range weekTotals {
		if minutes > 400 {
			t.Errorf("week %s total %v exceeds custom cap 400", week, minutes)
		}
	}
}
