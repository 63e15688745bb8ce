package engine

import (
	"testing"

	"github.com/teukgeun/teukgeun/pkg/model"
)

func shiftOn(date, start string, recognized, breakMinutes int) model.GeneratedShift {
	startMin := parseClock(start)
	return model.GeneratedShift{
		Date:         date,
		StartTime:    start,
		EndTime:      formatClock(startMin + recognized + breakMinutes),
		BreakMinutes: breakMinutes,
	}
}

func TestCorrect_RaisesToTarget(t *testing.T) {
	shifts := []model.GeneratedShift{
		shiftOn("2025-03-08", "09:00:00", 290, 30),
		shiftOn("2025-03-15", "09:00:00", 280, 30),
	}

	corrected := Correct(shifts, 600, DefaultCorrectionConfig())

	if total := model.TotalRecognizedMinutes(corrected); total != 600 {
		t.Errorf("total = %v, expected 600", total)
	}
	for _, s := range corrected {
		if rec := s.RecognizedMinutes(); rec > 300 {
			t.Errorf("%s recognized %v exceeds cap", s.Date, rec)
		}
	}
	// 原切片不被改动
	if shifts[0].RecognizedMinutes() != 290 {
		t.Error("Correct must not mutate its input")
	}
}

func TestCorrect_LowersToTarget(t *testing.T) {
	shifts := []model.GeneratedShift{
		shiftOn("2025-03-08", "09:00:00", 300, 30),
		shiftOn("2025-03-15", "09:00:00", 295, 30),
	}

	corrected := Correct(shifts, 580, DefaultCorrectionConfig())

	if total := model.TotalRecognizedMinutes(corrected); total != 580 {
		t.Errorf("total = %v, expected 580", total)
	}
	for _, s := range corrected {
		if rec := s.RecognizedMinutes(); rec < 60 {
			t.Errorf("%s recognized %v dropped below floor", s.Date, rec)
		}
	}
}

func TestCorrect_StopsAtCeiling(t *testing.T) {
	// 两个班次都已到上限：无法再增加，返回当前最优而不是死循环
	shifts := []model.GeneratedShift{
		shiftOn("2025-03-08", "09:00:00", 300, 30),
		shiftOn("2025-03-15", "09:00:00", 300, 30),
	}

	corrected := Correct(shifts, 700, DefaultCorrectionConfig())

	if total := model.TotalRecognizedMinutes(corrected); total != 600 {
		t.Errorf("total = %v, expected 600 (capacity exhausted)", total)
	}
}

func TestCorrect_HonorsWeeklyCap(t *testing.T) {
	// 同一ISO周内两个班次合计570，周上限580：最多还能加10分钟
	shifts := []model.GeneratedShift{
		shiftOn("2025-03-08", "09:00:00", 290, 30),
		shiftOn("2025-03-09", "09:00:00", 280, 30),
	}

	cfg := CorrectionConfig{MaxShiftMinutes: 300, MinShiftMinutes: 60, WeeklyCapMinutes: 580}
	corrected := Correct(shifts, 600, cfg)

	total := model.TotalRecognizedMinutes(corrected)
	if total != 580 {
		t.Errorf("total = %v, expected 580 (weekly cap reached)", total)
	}
}

func TestCorrect_ShrinksOverCapWeekFirst(t *testing.T) {
	// 08/09同属一个ISO周，合计350超过周上限300；另一周的班次
	// 离下限余量更大，但压缩必须优先落在超限的周上
	shifts := []model.GeneratedShift{
		shiftOn("2025-03-08", "09:00:00", 200, 0),
		shiftOn("2025-03-09", "09:00:00", 150, 0),
		shiftOn("2025-03-15", "09:00:00", 290, 30),
	}

	cfg := CorrectionConfig{MaxShiftMinutes: 300, MinShiftMinutes: 60, WeeklyCapMinutes: 300}
	corrected := Correct(shifts, 590, cfg)

	if total := model.TotalRecognizedMinutes(corrected); total != 590 {
		t.Errorf("total = %v, expected 590", total)
	}
	if rec := corrected[2].RecognizedMinutes(); rec != 290 {
		t.Errorf("other-week shift recognized %v, expected untouched 290", rec)
	}
	if weekTotal := corrected[0].RecognizedMinutes() + corrected[1].RecognizedMinutes(); weekTotal != 300 {
		t.Errorf("over-cap week total = %v, expected reduced to 300", weekTotal)
	}
}

func TestCorrect_EmptyInput(t *testing.T) {
	if corrected := Correct(nil, 600, DefaultCorrectionConfig()); len(corrected) != 0 {
		t.Errorf("Correct(nil) = %v, expected empty", corrected)
	}
}

func TestShiftEndBy(t *testing.T) {
	s := shiftOn("2025-03-08", "09:00:00", 200, 30)

	longer := shiftEndBy(s, 5)
	if rec := longer.RecognizedMinutes(); rec != 205 {
		t.Errorf("recognized after +5 = %v, expected 205", rec)
	}
	if longer.StartTime != "09:00:00" {
		t.Errorf("start time changed to %v", longer.StartTime)
	}

	shorter := shiftEndBy(s, -5)
	if rec := shorter.RecognizedMinutes(); rec != 195 {
		t.Errorf("recognized after -5 = %v, expected 195", rec)
	}
}
