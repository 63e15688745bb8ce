// Package model 定义特勤记录引擎的核心数据模型
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 通用日期/时间格式
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04:05"
)

// DayType 候选日类型
type DayType string

const (
	DaySaturday DayType = "SAT"     // 周六
	DaySunday   DayType = "SUN"     // 周日
	DayHoliday  DayType = "HOLIDAY" // 法定节假日
)

// Archetype 员工行为原型
type Archetype string

const (
	ArchetypeFocused        Archetype = "FOCUSED"        // 集中爆发型：周次顺序随机打乱
	ArchetypeSteady         Archetype = "STEADY"         // 均衡稳定型：按时间顺序、日均分配
	ArchetypeSundayLover    Archetype = "SUNDAY_LOVER"   // 周日偏好型：周内优先安排周日
	ArchetypeProcrastinator Archetype = "PROCRASTINATOR" // 月末冲刺型：从月末的周开始安排
)

// TimePreference 时段偏好
type TimePreference string

const (
	PreferenceAM  TimePreference = "AM"  // 上午开工（09:00 基准）
	PreferencePM  TimePreference = "PM"  // 下午开工（13:00 基准）
	PreferenceAny TimePreference = "ANY" // 不固定：逐班次随机选择基准
)

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WeekKey 计算日期所属的周标签（W{NN}）
// 以该年1月1日当天或之后的第一个周一为起点，此前的日期记为 W00。
// 调用方用它把生成的班次与周上限报表对齐。
func WeekKey(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}

	firstMonday := time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	for firstMonday.Weekday() != time.Monday {
		firstMonday = firstMonday.AddDate(0, 0, 1)
	}

	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(firstMonday) {
		return "W00"
	}

	days := int(day.Sub(firstMonday).Hours() / 24)
	return fmt.Sprintf("W%02d", days/7+1)
}

// ISOWeekKey 计算日期所属 ISO 周（周一至周日）的排序键
// 格式 YYYY-WW，用于把候选日按周分桶。
func ISOWeekKey(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	year, week := d.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}
