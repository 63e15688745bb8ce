// Package stats 提供生成结果的周维度汇总
package stats

import (
	"sort"

	"github.com/teukgeun/teukgeun/pkg/model"
)

// WeekStat 单周统计
type WeekStat struct {
	WeekKey     string  `json:"week_key"`
	Shifts      int     `json:"shifts"`
	Minutes     int     `json:"minutes"`
	Utilization float64 `json:"utilization"` // 相对周上限的占用率，上限为0时恒为0
}

// WeeklyReport 月度周报
type WeeklyReport struct {
	Weeks        []WeekStat `json:"weeks"`
	TotalShifts  int        `json:"total_shifts"`
	TotalMinutes int        `json:"total_minutes"`
	BusiestWeek  string     `json:"busiest_week,omitempty"`
}

// BuildWeeklyReport 按周聚合班次并计算占用率
func BuildWeeklyReport(shifts []model.GeneratedShift, weeklyCapMinutes int) *WeeklyReport {
	byWeek := make(map[string]*WeekStat)

	report := &WeeklyReport{}
	for _, s := range shifts {
		key := model.WeekKey(s.Date)
		ws, ok := byWeek[key]
		if !ok {
			ws = &WeekStat{WeekKey: key}
			byWeek[key] = ws
		}
		rec := s.RecognizedMinutes()
		ws.Shifts++
		ws.Minutes += rec
		report.TotalShifts++
		report.TotalMinutes += rec
	}

	keys := make([]string, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	busiest := ""
	busiestMinutes := -1
	for _, k := range keys {
		ws := byWeek[k]
		if weeklyCapMinutes > 0 {
			ws.Utilization = float64(ws.Minutes) / float64(weeklyCapMinutes)
		}
		if ws.Minutes > busiestMinutes {
			busiest = k
			busiestMinutes = ws.Minutes
		}
		report.Weeks = append(report.Weeks, *ws)
	}
	report.BusiestWeek = busiest

	return report
}
