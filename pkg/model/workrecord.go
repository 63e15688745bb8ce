// Package model 定义特勤记录引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// CandidateDay 当月可安排特勤的候选日
// 由日历组件枚举生成，整个生成过程中只读。
type CandidateDay struct {
	Date        string  `json:"date" db:"date"` // YYYY-MM-DD
	DayType     DayType `json:"day_type" db:"day_type"`
	HolidayName string  `json:"holiday_name,omitempty" db:"holiday_name"` // 仅节假日有值
}

// Persona 员工行为画像
// 由姓名确定性派生，同名必然同画像，是班次风格一致性的基础。
type Persona struct {
	Archetype      Archetype      `json:"archetype"`
	TimePreference TimePreference `json:"time_preference"`
}

// Label 返回画像的可读描述
func (p Persona) Label() string {
	return archetypeLabel(p.Archetype) + "·" + preferenceLabel(p.TimePreference)
}

// archetypeLabel 原型的显示名称
func archetypeLabel(a Archetype) string {
	switch a {
	case ArchetypeFocused:
		return "集中爆发型"
	case ArchetypeSteady:
		return "均衡稳定型"
	case ArchetypeSundayLover:
		return "周日偏好型"
	case ArchetypeProcrastinator:
		return "月末冲刺型"
	default:
		return string(a)
	}
}

// preferenceLabel 时段偏好的显示名称
func preferenceLabel(p TimePreference) string {
	switch p {
	case PreferenceAM:
		return "上午型"
	case PreferencePM:
		return "下午型"
	case PreferenceAny:
		return "随机型"
	default:
		return string(p)
	}
}

// GenerationOptions 特勤记录生成请求参数
type GenerationOptions struct {
	TargetMonth              string `json:"target_month"`  // YYYY-MM
	TotalHours               int    `json:"total_hours"`   // 目标总时数（小时）
	EmployeeName             string `json:"employee_name"` // 画像派生依据
	MaxWeeklyOvertimeMinutes int    `json:"max_weekly_overtime_minutes,omitempty"`
	BreakMinutes4h           int    `json:"break_minutes_4h,omitempty"`
	BreakMinutes8h           int    `json:"break_minutes_8h,omitempty"`
	Seed                     *int64 `json:"seed,omitempty"` // 随机种子（测试复现用，0值走熵源）
}

// 默认策略参数
const (
	DefaultWeeklyCapMinutes = 720 // 每周特勤上限：12小时
	DefaultBreak4h          = 30  // 4小时档休息时间
	DefaultBreak8h          = 60  // 8小时档休息时间
)

// Normalize 填充未指定的策略默认值
func (o GenerationOptions) Normalize() GenerationOptions {
	if o.MaxWeeklyOvertimeMinutes == 0 {
		o.MaxWeeklyOvertimeMinutes = DefaultWeeklyCapMinutes
	}
	if o.BreakMinutes4h == 0 {
		o.BreakMinutes4h = DefaultBreak4h
	}
	if o.BreakMinutes8h == 0 {
		o.BreakMinutes8h = DefaultBreak8h
	}
	return o
}

// GeneratedShift 一条合成的特勤班次
type GeneratedShift struct {
	Date         string `json:"date"`       // YYYY-MM-DD
	StartTime    string `json:"start_time"` // HH:MM:SS
	EndTime      string `json:"end_time"`   // HH:MM:SS
	BreakMinutes int    `json:"break_minutes"`
	Description  string `json:"description"` // 节假日名称或周末特勤标注
}

// GrossMinutes 班次总时长（含休息，分钟），时间解析失败返回0
func (s GeneratedShift) GrossMinutes() int {
	start, err1 := time.Parse(TimeLayout, s.StartTime)
	end, err2 := time.Parse(TimeLayout, s.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// RecognizedMinutes 认定工时（总时长扣除休息，分钟）
func (s GeneratedShift) RecognizedMinutes() int {
	return s.GrossMinutes() - s.BreakMinutes
}

// TotalRecognizedMinutes 汇总一组班次的认定工时
func TotalRecognizedMinutes(shifts []GeneratedShift) int {
	total := 0
	for _, s := range shifts {
		total += s.RecognizedMinutes()
	}
	return total
}

// GenerationResult 生成结果
type GenerationResult struct {
	Shifts                []GeneratedShift `json:"shifts"`
	Persona               Archetype        `json:"persona"`
	TimePreference        TimePreference   `json:"time_preference"`
	PersonaLabel          string           `json:"persona_label"`
	TotalAllocatedMinutes int              `json:"total_allocated_minutes"`
	Shortfall             int              `json:"shortfall_minutes"` // 候选日容量不足时未能安排的分钟数
	Attempts              int              `json:"attempts"`
	ErrorMinutes          int              `json:"error_minutes"` // 与目标的最终偏差（绝对值）
}

// WorkRecord 持久化的特勤记录行
type WorkRecord struct {
	BaseModel
	BatchID      uuid.UUID `json:"batch_id" db:"batch_id"`
	EmployeeName string    `json:"employee_name" db:"employee_name"`
	Date         string    `json:"date" db:"date"`
	StartTime    string    `json:"start_time" db:"start_time"`
	EndTime      string    `json:"end_time" db:"end_time"`
	BreakMinutes int       `json:"break_minutes" db:"break_minutes"`
	Description  string    `json:"description" db:"description"`
	WeekKey      string    `json:"week_key" db:"week_key"`
}

// NewWorkRecord 由生成的班次构建持久化记录
func NewWorkRecord(batchID uuid.UUID, employeeName string, shift GeneratedShift) *WorkRecord {
	return &WorkRecord{
		BaseModel:    NewBaseModel(),
		BatchID:      batchID,
		EmployeeName: employeeName,
		Date:         shift.Date,
		StartTime:    shift.StartTime,
		EndTime:      shift.EndTime,
		BreakMinutes: shift.BreakMinutes,
		Description:  shift.Description,
		WeekKey:      WeekKey(shift.Date),
	}
}
