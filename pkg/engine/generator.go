package engine

import (
	"math/rand"
	"time"

	"github.com/teukgeun/teukgeun/pkg/calendar"
	"github.com/teukgeun/teukgeun/pkg/errors"
	"github.com/teukgeun/teukgeun/pkg/logger"
	"github.com/teukgeun/teukgeun/pkg/model"
)

// 引擎硬参数
const (
	defaultMaxRetries = 10  // 重试预算
	defaultShiftCap   = 300 // 单班次认定工时上限（分钟）
	defaultShiftFloor = 60  // 修正时的班次下限（分钟）

	exactTolerance = 1 // 视为精确命中的偏差（分钟）
)

// Config 引擎参数
type Config struct {
	MaxRetries      int // 重试预算
	MaxShiftMinutes int // 单班次认定工时上限（分钟）
	MinShiftMinutes int // 事后修正时的班次下限（分钟）
}

// DefaultConfig 默认引擎参数
func DefaultConfig() Config {
	return Config{
		MaxRetries:      defaultMaxRetries,
		MaxShiftMinutes: defaultShiftCap,
		MinShiftMinutes: defaultShiftFloor,
	}
}

// Generator 特勤记录生成器
// 纯计算、无共享状态：多个员工可由调用方并行处理。
type Generator struct {
	provider calendar.HolidayProvider
	cfg      Config
	log      *logger.EngineLogger
}

// New 创建生成器
func New(provider calendar.HolidayProvider) *Generator {
	return NewWithConfig(provider, DefaultConfig())
}

// NewWithConfig 以指定参数创建生成器
func NewWithConfig(provider calendar.HolidayProvider, cfg Config) *Generator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MaxShiftMinutes <= 0 {
		cfg.MaxShiftMinutes = defaultShiftCap
	}
	if cfg.MinShiftMinutes <= 0 {
		cfg.MinShiftMinutes = defaultShiftFloor
	}
	return &Generator{
		provider: provider,
		cfg:      cfg,
		log:      logger.NewEngineLogger(),
	}
}

// attemptOutcome 单次尝试的产出
type attemptOutcome struct {
	shifts   []model.GeneratedShift
	achieved int // 认定工时合计
	leftover int // 分配器未能安排的分钟数
}

// Generate 生成一名员工一个月的特勤记录
// 画像只派生一次；随后在重试预算内反复执行
// 周分配 -> 日拆分 -> 时刻合成，每次重抽全部抖动，
// 偏差不超过1分钟立即返回，否则保留偏差最小的一次。
// 重试耗尽仍有偏差时走事后修正，把总量精确拉回目标
// （候选日容量不足时修正也无能为力，结果带 Shortfall 返回）。
func (g *Generator) Generate(opts model.GenerationOptions) (*model.GenerationResult, error) {
	start := time.Now()

	opts = opts.Normalize()
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	persona := AssignPersona(opts.EmployeeName)
	target := opts.TotalHours * 60

	// 候选日与画像一样全程复用，重试只重抽抖动
	candidates, err := calendar.FindCandidates(opts.TargetMonth, g.provider)
	if err != nil {
		return nil, err
	}

	g.log.StartGeneration(opts.TargetMonth, opts.EmployeeName, target, len(candidates))

	rng := newRand(opts.Seed)

	var best *attemptOutcome
	attempts := 0
	for i := 0; i < g.cfg.MaxRetries; i++ {
		attempts++

		outcome, err := g.runAttempt(candidates, target, opts, persona, rng)
		if err != nil {
			// InvalidAllocation 属于bug，大声上抛，不参与重试
			logger.WithError(err).Str("employee", opts.EmployeeName).Msg("分配契约被破坏")
			return nil, err
		}

		g.log.AttemptResult(attempts, outcome.achieved, target)

		if best == nil || absInt(outcome.achieved-target) < absInt(best.achieved-target) {
			best = outcome
		}
		if absInt(outcome.achieved-target) <= exactTolerance {
			break
		}
	}

	// 重试没有命中时做逐分钟修正；容量不足的部分修正也补不出来
	if absInt(best.achieved-target) > exactTolerance && len(best.shifts) > 0 {
		best.shifts = Correct(best.shifts, target, CorrectionConfig{
			MaxShiftMinutes:  g.cfg.MaxShiftMinutes,
			MinShiftMinutes:  g.cfg.MinShiftMinutes,
			WeeklyCapMinutes: opts.MaxWeeklyOvertimeMinutes,
		})
		best.achieved = model.TotalRecognizedMinutes(best.shifts)
	}

	errorMinutes := absInt(best.achieved - target)
	if best.leftover > 0 {
		g.log.Shortfall(opts.EmployeeName, best.leftover)
	}
	g.log.GenerationComplete(opts.EmployeeName, attempts, errorMinutes, time.Since(start))

	return &model.GenerationResult{
		Shifts:                best.shifts,
		Persona:               persona.Archetype,
		TimePreference:        persona.TimePreference,
		PersonaLabel:          persona.Label(),
		TotalAllocatedMinutes: best.achieved,
		Shortfall:             best.leftover,
		Attempts:              attempts,
		ErrorMinutes:          errorMinutes,
	}, nil
}

// runAttempt 执行一次完整的分配与合成
func (g *Generator) runAttempt(candidates []model.CandidateDay, target int, opts model.GenerationOptions, persona model.Persona, rng *rand.Rand) (*attemptOutcome, error) {
	allocations, leftover := allocateWeeks(
		candidates, target, persona,
		opts.MaxWeeklyOvertimeMinutes, g.cfg.MaxShiftMinutes, rng)

	synth := NewSynthesizer(opts.BreakMinutes4h, opts.BreakMinutes8h, g.cfg.MaxShiftMinutes, rng)

	// 周累计认定工时，用来限制正向抖动，保证周上限是硬约束
	weekRecognized := make(map[string]int)

	shifts := make([]model.GeneratedShift, 0, len(allocations))
	achieved := 0
	for _, alloc := range allocations {
		weekKey := model.ISOWeekKey(alloc.Day.Date)
		// 同周前序班次的正向抖动要从后续班次的基础分钟里扣掉，
		// 否则满载周会被抖动累计挤破周上限
		minutes := minInt(alloc.Minutes, opts.MaxWeeklyOvertimeMinutes-weekRecognized[weekKey])
		if minutes <= 0 {
			continue
		}
		headroom := opts.MaxWeeklyOvertimeMinutes - weekRecognized[weekKey] - minutes

		shift, err := synth.Synthesize(alloc.Day, minutes, persona.TimePreference, headroom)
		if err != nil {
			return nil, err
		}

		rec := shift.RecognizedMinutes()
		weekRecognized[weekKey] += rec
		achieved += rec
		shifts = append(shifts, shift)
	}

	return &attemptOutcome{shifts: shifts, achieved: achieved, leftover: leftover}, nil
}

// validateOptions 校验请求参数，格式问题立即报错、不进入重试
func validateOptions(opts model.GenerationOptions) *errors.AppError {
	if _, err := time.Parse(model.MonthLayout, opts.TargetMonth); err != nil {
		return errors.InvalidInput("target_month", "月份格式应为 YYYY-MM")
	}
	if opts.TotalHours <= 0 {
		return errors.InvalidInput("total_hours", "目标时数必须为正整数")
	}
	if opts.EmployeeName == "" {
		return errors.InvalidInput("employee_name", "员工姓名不能为空")
	}
	if opts.MaxWeeklyOvertimeMinutes <= 0 {
		return errors.InvalidInput("max_weekly_overtime_minutes", "周上限必须为正数")
	}
	if opts.BreakMinutes4h < 0 || opts.BreakMinutes8h < 0 {
		return errors.InvalidInput("break_minutes", "休息时间不能为负数")
	}
	return nil
}

// newRand 构建随机源，带种子时可完全复现
func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// absInt 取绝对值
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
