package calendar

import (
	"time"

	"github.com/teukgeun/teukgeun/pkg/errors"
	"github.com/teukgeun/teukgeun/pkg/model"
)

// FindCandidates 枚举目标月份内所有可安排特勤的候选日
// 候选日 = 周六、周日或法定节假日；节假日与周末重叠时按节假日计。
// 结果按日期升序，无副作用；节假日表固定时输出确定。
func FindCandidates(month string, provider HolidayProvider) ([]model.CandidateDay, error) {
	first, err := time.Parse(model.MonthLayout, month)
	if err != nil {
		return nil, errors.InvalidInput("target_month", "月份格式应为 YYYY-MM").WithCause(err)
	}

	var candidates []model.CandidateDay
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if name, ok := provider.HolidayName(d); ok {
			candidates = append(candidates, model.CandidateDay{
				Date:        d.Format(model.DateLayout),
				DayType:     model.DayHoliday,
				HolidayName: name,
			})
			continue
		}

		switch d.Weekday() {
		case time.Saturday:
			candidates = append(candidates, model.CandidateDay{
				Date:    d.Format(model.DateLayout),
				DayType: model.DaySaturday,
			})
		case time.Sunday:
			candidates = append(candidates, model.CandidateDay{
				Date:    d.Format(model.DateLayout),
				DayType: model.DaySunday,
			})
		}
	}

	return candidates, nil
}
