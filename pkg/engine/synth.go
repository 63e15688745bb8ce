package engine

import (
	"fmt"
	"math/rand"

	"github.com/teukgeun/teukgeun/pkg/errors"
	"github.com/teukgeun/teukgeun/pkg/model"
)

// 班次时刻合成参数
const (
	baseStartAM = 9 * 60  // 上午基准 09:00
	baseStartPM = 13 * 60 // 下午基准 13:00

	breakThreshold4h = 240 // 4小时档休息阈值（分钟）
	breakThreshold8h = 480 // 8小时档休息阈值（分钟）

	earlyStartProb  = 0.8 // 提前打卡的概率
	maxEarlyMinutes = 15  // 最多提前15分钟
	maxLateMinutes  = 10  // 最多推后10分钟

	positiveEndProb = 0.9 // 结束时刻多打几分钟的概率
	maxEndOverrun   = 10  // 多打的上限
	maxEndUnderrun  = 5   // 偶尔早退的上限
)

// Synthesizer 班次时刻合成器
// 把某天分到的净工时换算成具体的上下班时刻和休息扣除，
// 并叠加小幅抖动让记录不呈现机械感。
type Synthesizer struct {
	break4h  int
	break8h  int
	shiftCap int
	rng      *rand.Rand
}

// NewSynthesizer 创建班次合成器
func NewSynthesizer(break4h, break8h, shiftCap int, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{
		break4h:  break4h,
		break8h:  break8h,
		shiftCap: shiftCap,
		rng:      rng,
	}
}

// Synthesize 把某天的净工时合成为一条班次记录
// headroom 是结束抖动还允许多出的认定分钟数（受单班次上限和
// 周上限共同约束，由调用方计算），为0时结束抖动只会取非正值。
// 传入负的净工时属于上游分配器的bug，返回 InvalidAllocation。
func (s *Synthesizer) Synthesize(day model.CandidateDay, minutes int, pref model.TimePreference, headroom int) (model.GeneratedShift, error) {
	if minutes < 0 {
		return model.GeneratedShift{}, errors.InvalidAllocation(
			fmt.Sprintf("日期 %s 收到负的净工时 %d", day.Date, minutes))
	}

	breakMinutes := s.breakFor(minutes)

	// 选择基准开工时刻
	base := baseStartAM
	switch pref {
	case model.PreferencePM:
		base = baseStartPM
	case model.PreferenceAny:
		if s.rng.Intn(2) == 1 {
			base = baseStartPM
		}
	}

	// 开工抖动：大概率提前几分钟，偶尔迟到
	start := base
	if s.rng.Float64() < earlyStartProb {
		start -= s.rng.Intn(maxEarlyMinutes + 1)
	} else {
		start += s.rng.Intn(maxLateMinutes + 1)
	}

	// 收工抖动：九成情况多打1~10分钟，偶尔提前1~5分钟收工。
	// 正向抖动同时受 headroom 和"认定工时不超过单班次上限"约束，
	// 负向抖动不允许把认定工时压成负数。
	endJitter := 0
	if s.rng.Float64() < positiveEndProb {
		endJitter = 1 + s.rng.Intn(maxEndOverrun)
	} else {
		endJitter = -(1 + s.rng.Intn(maxEndUnderrun))
	}
	if endJitter > 0 {
		allowed := minInt(headroom, s.shiftCap-minutes)
		if endJitter > allowed {
			endJitter = maxInt(allowed, 0)
		}
	} else if minutes+endJitter < 0 {
		endJitter = -minutes
	}

	end := start + minutes + breakMinutes + endJitter

	return model.GeneratedShift{
		Date:         day.Date,
		StartTime:    formatClock(start),
		EndTime:      formatClock(end),
		BreakMinutes: breakMinutes,
		Description:  describeDay(day),
	}, nil
}

// breakFor 根据净工时选择休息扣除档位
// 休息与总时长互为因果，这里按规则用净工时单趟判档，
// 不做收敛迭代——阈值设计保证单趟结果自洽。
func (s *Synthesizer) breakFor(minutes int) int {
	switch {
	case minutes >= breakThreshold8h:
		return s.break8h
	case minutes >= breakThreshold4h:
		return s.break4h
	default:
		return 0
	}
}

// describeDay 生成班次的用途描述
func describeDay(day model.CandidateDay) string {
	if day.DayType == model.DayHoliday && day.HolidayName != "" {
		return day.HolidayName
	}
	if day.DayType == model.DaySunday {
		return "일요일 특근"
	}
	return "토요일 특근"
}

// formatClock 把自零点起的分钟数格式化为 HH:MM:SS
func formatClock(minutesOfDay int) string {
	return fmt.Sprintf("%02d:%02d:00", minutesOfDay/60, minutesOfDay%60)
}

// maxInt 取较大值
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
