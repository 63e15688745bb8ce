// Package validator 提供生成结果的合规校验
package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/teukgeun/teukgeun/pkg/calendar"
	"github.com/teukgeun/teukgeun/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationCeiling   ViolationType = "shift_ceiling"     // 单班次认定工时超上限
	ViolationNegative  ViolationType = "negative_duration" // 认定工时为负
	ViolationCalendar  ViolationType = "invalid_date"      // 日期不在目标月的候选日内
	ViolationWeeklyCap ViolationType = "weekly_cap"        // 周认定工时超上限
)

// Violation 单条违规明细
type Violation struct {
	Type    ViolationType `json:"type"`
	Date    string        `json:"date,omitempty"`
	Message string        `json:"message"`
}

// CheckConfig 校验参数
type CheckConfig struct {
	TargetMonth      string // YYYY-MM
	MaxShiftMinutes  int
	WeeklyCapMinutes int
}

// ResultChecker 生成结果校验器
// 生成流程本身保证这些约束，此处是兜底检查：
// 任何违规都意味着引擎存在bug，调用方应记录并告警。
type ResultChecker struct {
	provider calendar.HolidayProvider
}

// NewResultChecker 创建结果校验器
func NewResultChecker(provider calendar.HolidayProvider) *ResultChecker {
	return &ResultChecker{provider: provider}
}

// Check 校验一组班次是否满足硬约束
// 检查项：日期必须是目标月内的周末或节假日、单班次认定工时
// 在 [0, 上限] 内、每个ISO周的认定工时不超过周上限。
func (c *ResultChecker) Check(shifts []model.GeneratedShift, cfg CheckConfig) []Violation {
	var violations []Violation

	weekTotals := make(map[string]int)

	for _, s := range shifts {
		rec := s.RecognizedMinutes()

		if rec < 0 {
			violations = append(violations, Violation{
				Type:    ViolationNegative,
				Date:    s.Date,
				Message: fmt.Sprintf("认定工时为负: %d 分钟", rec),
			})
		}
		if cfg.MaxShiftMinutes > 0 && rec > cfg.MaxShiftMinutes {
			violations = append(violations, Violation{
				Type:    ViolationCeiling,
				Date:    s.Date,
				Message: fmt.Sprintf("认定工时 %d 分钟超过单班次上限 %d", rec, cfg.MaxShiftMinutes),
			})
		}
		if v := c.checkDate(s.Date, cfg.TargetMonth); v != nil {
			violations = append(violations, *v)
		}

		weekTotals[model.ISOWeekKey(s.Date)] += rec
	}

	if cfg.WeeklyCapMinutes > 0 {
		for week, total := range weekTotals {
			if total > cfg.WeeklyCapMinutes {
				violations = append(violations, Violation{
					Type:    ViolationWeeklyCap,
					Message: fmt.Sprintf("周 %s 认定工时 %d 分钟超过周上限 %d", week, total, cfg.WeeklyCapMinutes),
				})
			}
		}
	}

	return violations
}

// checkDate 校验日期落在目标月内且是合法候选日
func (c *ResultChecker) checkDate(date, targetMonth string) *Violation {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return &Violation{Type: ViolationCalendar, Date: date, Message: "日期格式无效"}
	}

	if targetMonth != "" && !strings.HasPrefix(date, targetMonth) {
		return &Violation{
			Type:    ViolationCalendar,
			Date:    date,
			Message: fmt.Sprintf("日期不在目标月 %s 内", targetMonth),
		}
	}

	if _, ok := c.provider.HolidayName(d); ok {
		return nil
	}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return nil
	}
	return &Violation{
		Type:    ViolationCalendar,
		Date:    date,
		Message: "日期既不是周末也不是节假日",
	}
}
