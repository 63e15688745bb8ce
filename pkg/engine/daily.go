package engine

import (
	"github.com/teukgeun/teukgeun/pkg/model"
)

// distributeDaily 把一周的预算拆分到该周的候选日上
// 返回长度为 dayCount 的分钟数组，每项不超过单班次上限，
// 总和不超过 total：天数装不下时宁可少分，绝不虚构候选日。
func distributeDaily(total, dayCount int, archetype model.Archetype, shiftCap int) []int {
	if dayCount <= 0 {
		return nil
	}

	out := make([]int, dayCount)
	if total <= 0 {
		return out
	}

	// 取整到小时后不超过4小时的小额预算不拆分：
	// 真实的零散加班通常集中在一天完成。
	if (total+30)/60 <= 4 {
		out[0] = minInt(total, shiftCap)
		return out
	}

	if archetype == model.ArchetypeSteady {
		// 均衡型：整小时均分，余数小时逐个补给前几天
		totalHours := total / 60
		perDay := totalHours / dayCount
		remHours := totalHours % dayCount
		leftover := total % 60

		for i := 0; i < dayCount; i++ {
			minutes := perDay * 60
			if i < remHours {
				minutes += 60
			}
			if i == 0 {
				minutes += leftover
			}
			out[i] = minInt(minutes, shiftCap)
		}
		return out
	}

	// 爆发型：按日序贪心填满到单班次上限
	remaining := total
	for i := 0; i < dayCount && remaining > 0; i++ {
		out[i] = minInt(remaining, shiftCap)
		remaining -= out[i]
	}
	return out
}

// minInt 取较小值
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
