// Package calendar 提供节假日查询与候选日枚举
package calendar

import (
	"time"
)

// HolidayProvider 节假日查询接口
// 实现方只负责回答"某天是不是节假日、叫什么"；
// 周六/周日由候选日枚举逻辑自行通过星期判断。
type HolidayProvider interface {
	// HolidayName 返回日期对应的节假日名称，非节假日时第二个返回值为 false
	HolidayName(date time.Time) (string, bool)
}

// KRHolidayTable 韩国法定节假日静态表
// 阳历固定节日按 MM-DD 逐年复用；农历节日（설날/추석/석가탄신일）
// 和代替公休日无法用固定日期表达，按年份硬编码。
type KRHolidayTable struct {
	solar map[string]string // MM-DD -> 名称
	dated map[string]string // YYYY-MM-DD -> 名称
}

// NewKRHolidayTable 创建韩国节假日表（内置 2024-2026 年农历及代替公休日）
func NewKRHolidayTable() *KRHolidayTable {
	return &KRHolidayTable{
		solar: map[string]string{
			"01-01": "신정",
			"03-01": "삼일절",
			"05-01": "근로자의 날",
			"05-05": "어린이날",
			"06-06": "현충일",
			"08-15": "광복절",
			"10-03": "개천절",
			"10-09": "한글날",
			"12-25": "성탄절",
		},
		dated: map[string]string{
			// 2024
			"2024-02-09": "설날 연휴",
			"2024-02-10": "설날",
			"2024-02-11": "설날 연휴",
			"2024-02-12": "대체공휴일(설날)",
			"2024-04-10": "국회의원 선거일",
			"2024-05-06": "대체공휴일(어린이날)",
			"2024-05-15": "석가탄신일",
			"2024-09-16": "추석 연휴",
			"2024-09-17": "추석",
			"2024-09-18": "추석 연휴",
			// 2025
			"2025-01-27": "임시공휴일",
			"2025-01-28": "설날 연휴",
			"2025-01-29": "설날",
			"2025-01-30": "설날 연휴",
			"2025-03-03": "대체공휴일(삼일절)",
			"2025-05-06": "대체공휴일(어린이날)",
			"2025-06-03": "대통령 선거일",
			"2025-10-05": "추석 연휴",
			"2025-10-06": "추석",
			"2025-10-07": "추석 연휴",
			"2025-10-08": "대체공휴일(추석)",
			// 2026
			"2026-02-16": "설날 연휴",
			"2026-02-17": "설날",
			"2026-02-18": "설날 연휴",
			"2026-03-02": "대체공휴일(삼일절)",
			"2026-05-24": "석가탄신일",
			"2026-05-25": "대체공휴일(석가탄신일)",
			"2026-08-17": "대체공휴일(광복절)",
			"2026-09-24": "추석 연휴",
			"2026-09-25": "추석",
			"2026-09-26": "추석 연휴",
			"2026-10-05": "대체공휴일(개천절)",
		},
	}
}

// HolidayName 实现 HolidayProvider
// 按年份硬编码的条目优先于阳历固定条目，便于用代替公休日覆盖。
func (t *KRHolidayTable) HolidayName(date time.Time) (string, bool) {
	if name, ok := t.dated[date.Format("2006-01-02")]; ok {
		return name, true
	}
	if name, ok := t.solar[date.Format("01-02")]; ok {
		return name, true
	}
	return "", false
}

// EmptyProvider 无节假日的空表（测试和纯周末场景用）
type EmptyProvider struct{}

// HolidayName 实现 HolidayProvider，恒为否
func (EmptyProvider) HolidayName(time.Time) (string, bool) {
	return "", false
}
