package engine

import (
	"fmt"

	"github.com/teukgeun/teukgeun/pkg/model"
)

// CorrectionConfig 事后修正的约束参数
type CorrectionConfig struct {
	MaxShiftMinutes  int // 单班次认定工时上限
	MinShiftMinutes  int // 修正时不把班次压到该下限以下
	WeeklyCapMinutes int // 周认定工时上限，0表示不限
}

// DefaultCorrectionConfig 默认修正参数
func DefaultCorrectionConfig() CorrectionConfig {
	return CorrectionConfig{
		MaxShiftMinutes:  defaultShiftCap,
		MinShiftMinutes:  defaultShiftFloor,
		WeeklyCapMinutes: model.DefaultWeeklyCapMinutes,
	}
}

// Correct 逐分钟微调班次结束时刻，把认定工时总和修正到目标值
// 需要增加时选离上限余量最大（负担最轻）的班次，需要减少时选
// 高出下限最多（负担最重）的班次，每轮各动一分钟。无合法调整
// 余地时提前返回当前最优结果，不报错。
// 修正会牺牲少数班次的抖动真实感，换取总量的精确一致。
func Correct(shifts []model.GeneratedShift, targetMinutes int, cfg CorrectionConfig) []model.GeneratedShift {
	if len(shifts) == 0 {
		return shifts
	}

	corrected := make([]model.GeneratedShift, len(shifts))
	copy(corrected, shifts)

	// 周累计用于周上限检查：增加方向跳过已满的周，减少方向优先压缩超限的周
	weekTotals := make(map[string]int)
	for _, s := range corrected {
		weekTotals[model.ISOWeekKey(s.Date)] += s.RecognizedMinutes()
	}

	total := model.TotalRecognizedMinutes(corrected)
	for total != targetMinutes {
		if total < targetMinutes {
			idx := pickExpandable(corrected, weekTotals, cfg)
			if idx < 0 {
				break
			}
			corrected[idx] = shiftEndBy(corrected[idx], 1)
			weekTotals[model.ISOWeekKey(corrected[idx].Date)]++
			total++
		} else {
			idx := pickShrinkable(corrected, weekTotals, cfg)
			if idx < 0 {
				break
			}
			corrected[idx] = shiftEndBy(corrected[idx], -1)
			weekTotals[model.ISOWeekKey(corrected[idx].Date)]--
			total--
		}
	}

	return corrected
}

// pickExpandable 选出最适合延长一分钟的班次
// 条件：认定工时低于单班次上限，且所在周未到周上限。
func pickExpandable(shifts []model.GeneratedShift, weekTotals map[string]int, cfg CorrectionConfig) int {
	best := -1
	bestSlack := 0
	for i, s := range shifts {
		rec := s.RecognizedMinutes()
		slack := cfg.MaxShiftMinutes - rec
		if slack <= 0 {
			continue
		}
		if cfg.WeeklyCapMinutes > 0 && weekTotals[model.ISOWeekKey(s.Date)] >= cfg.WeeklyCapMinutes {
			continue
		}
		if slack > bestSlack {
			best = i
			bestSlack = slack
		}
	}
	return best
}

// pickShrinkable 选出最适合缩短一分钟的班次
// 超出周上限的周里的班次优先被压缩，其余情况取高出班次下限最多者。
func pickShrinkable(shifts []model.GeneratedShift, weekTotals map[string]int, cfg CorrectionConfig) int {
	best := -1
	bestExcess := 0
	bestOverCap := false
	for i, s := range shifts {
		excess := s.RecognizedMinutes() - cfg.MinShiftMinutes
		if excess <= 0 {
			continue
		}
		overCap := cfg.WeeklyCapMinutes > 0 && weekTotals[model.ISOWeekKey(s.Date)] > cfg.WeeklyCapMinutes
		if overCap != bestOverCap {
			if overCap {
				best, bestExcess, bestOverCap = i, excess, true
			}
			continue
		}
		if excess > bestExcess {
			best = i
			bestExcess = excess
		}
	}
	return best
}

// shiftEndBy 把班次结束时刻平移若干分钟
func shiftEndBy(s model.GeneratedShift, delta int) model.GeneratedShift {
	gross := s.GrossMinutes() + delta
	start := parseClock(s.StartTime)
	s.EndTime = formatClock(start + gross)
	return s
}

// parseClock 把 HH:MM:SS 解析为自零点起的分钟数
func parseClock(clock string) int {
	var h, m, sec int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0
	}
	return h*60 + m
}
