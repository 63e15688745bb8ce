package engine

import (
	"math/rand"
	"sort"

	"github.com/teukgeun/teukgeun/pkg/model"
)

// DayAllocation 某个候选日被分到的净工时
type DayAllocation struct {
	Day     model.CandidateDay
	Minutes int
}

// weekBucket 一个ISO周（周一至周日）内的候选日
type weekBucket struct {
	key  string // YYYY-WW，按时间排序用
	days []model.CandidateDay
}

// allocateWeeks 把月度预算按周摊到候选日上
// 流程：候选日按ISO周分桶 -> 按画像排列周次 -> 周内按画像排列日优先级 ->
// 每周领取 min(剩余预算, 周上限) 交给日分配器。
// 返回每日分配（仅含分钟数大于0的日）和未能安排的剩余分钟数；
// 剩余大于0是候选日容量不足的唯一信号，引擎不会为此报错。
func allocateWeeks(candidates []model.CandidateDay, budgetMinutes int, persona model.Persona, weeklyCap, shiftCap int, rng *rand.Rand) ([]DayAllocation, int) {
	if budgetMinutes <= 0 || len(candidates) == 0 {
		return nil, budgetMinutes
	}

	buckets := bucketByWeek(candidates)
	orderWeeks(buckets, persona.Archetype, rng)

	var allocations []DayAllocation
	remaining := budgetMinutes

	for _, bucket := range buckets {
		if remaining <= 0 {
			break
		}
		// 没有候选日的周直接跳过，不算错误
		if len(bucket.days) == 0 {
			continue
		}

		days := orderDays(bucket.days, persona.Archetype)
		weekBudget := minInt(remaining, weeklyCap)
		amounts := distributeDaily(weekBudget, len(days), persona.Archetype, shiftCap)

		placed := 0
		for i, minutes := range amounts {
			if minutes <= 0 {
				continue
			}
			allocations = append(allocations, DayAllocation{Day: days[i], Minutes: minutes})
			placed += minutes
		}
		remaining -= placed
	}

	return allocations, remaining
}

// bucketByWeek 按ISO周分桶，桶默认按时间升序
func bucketByWeek(candidates []model.CandidateDay) []*weekBucket {
	index := make(map[string]*weekBucket)
	var buckets []*weekBucket

	for _, day := range candidates {
		key := model.ISOWeekKey(day.Date)
		bucket, ok := index[key]
		if !ok {
			bucket = &weekBucket{key: key}
			index[key] = bucket
			buckets = append(buckets, bucket)
		}
		bucket.days = append(bucket.days, day)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].key < buckets[j].key
	})
	return buckets
}

// orderWeeks 按原型的时间倾向排列周次
func orderWeeks(buckets []*weekBucket, archetype model.Archetype, rng *rand.Rand) {
	switch archetype {
	case model.ArchetypeFocused:
		// 爆发型：打乱周次，呈现突击式的分布
		rng.Shuffle(len(buckets), func(i, j int) {
			buckets[i], buckets[j] = buckets[j], buckets[i]
		})
	case model.ArchetypeProcrastinator:
		// 冲刺型：从月末的周开始安排
		for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
			buckets[i], buckets[j] = buckets[j], buckets[i]
		}
	default:
		// STEADY / SUNDAY_LOVER 保持时间顺序
	}
}

// orderDays 按原型的日优先级排列一周内的候选日
// 默认节假日 > 周六 > 周日；周日偏好型反过来先装周日。
func orderDays(days []model.CandidateDay, archetype model.Archetype) []model.CandidateDay {
	ordered := make([]model.CandidateDay, len(days))
	copy(ordered, days)

	rank := func(t model.DayType) int {
		if archetype == model.ArchetypeSundayLover {
			switch t {
			case model.DaySunday:
				return 0
			case model.DaySaturday:
				return 1
			default:
				return 2
			}
		}
		switch t {
		case model.DayHoliday:
			return 0
		case model.DaySaturday:
			return 1
		default:
			return 2
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rank(ordered[i].DayType), rank(ordered[j].DayType)
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Date < ordered[j].Date
	})
	return ordered
}
