package engine

import (
	"testing"

	"github.com/teukgeun/teukgeun/pkg/model"
)

func TestDistributeDaily_SmallBudgetSingleDay(t *testing.T) {
	tests := []struct {
		name  string
		total int
	}{
		{"整4小时", 240},
		{"取整后4小时", 250},
		{"2小时", 120},
		{"1分钟", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := distributeDaily(tt.total, 3, model.ArchetypeFocused, 300)
			if len(out) != 3 {
				t.Fatalf("len(out) = %v, expected 3", len(out))
			}
			if out[0] != tt.total {
				t.Errorf("out[0] = %v, expected %v", out[0], tt.total)
			}
			if out[1] != 0 || out[2] != 0 {
				t.Errorf("small budget should stay on one day, got %v", out)
			}
		})
	}
}

func TestDistributeDaily_SteadySplit(t *testing.T) {
	// 600分钟拆2天：均衡型每天300
	out := distributeDaily(600, 2, model.ArchetypeSteady, 300)
	if out[0] != 300 || out[1] != 300 {
		t.Errorf("steady 600/2 = %v, expected [300 300]", out)
	}

	// 600分钟拆3天：10小时 = 3+3+3 余1小时补给第一天
	out = distributeDaily(600, 3, model.ArchetypeSteady, 300)
	if out[0] != 240 || out[1] != 180 || out[2] != 180 {
		t.Errorf("steady 600/3 = %v, expected [240 180 180]", out)
	}

	// 零散分钟数归到第一天
	out = distributeDaily(630, 2, model.ArchetypeSteady, 300)
	sum := out[0] + out[1]
	if out[0] != 300 || sum > 630 {
		t.Errorf("steady 630/2 = %v, first day should hit cap", out)
	}
}

func TestDistributeDaily_GreedyFill(t *testing.T) {
	out := distributeDaily(720, 3, model.ArchetypeFocused, 300)
	if out[0] != 300 || out[1] != 300 || out[2] != 120 {
		t.Errorf("greedy 720/3 = %v, expected [300 300 120]", out)
	}
}

func TestDistributeDaily_RespectsCap(t *testing.T) {
	archetypes := []model.Archetype{
		model.ArchetypeFocused,
		model.ArchetypeSteady,
		model.ArchetypeSundayLover,
		model.ArchetypeProcrastinator,
	}

	for _, a := range archetypes {
		out := distributeDaily(720, 2, a, 300)
		total := 0
		for i, minutes := range out {
			if minutes > 300 {
				t.Errorf("%s: out[%d] = %v exceeds cap 300", a, i, minutes)
			}
			total += minutes
		}
		if total > 720 {
			t.Errorf("%s: allocated %v exceeds budget 720", a, total)
		}
	}
}

func TestDistributeDaily_EdgeCases(t *testing.T) {
	if out := distributeDaily(300, 0, model.ArchetypeSteady, 300); out != nil {
		t.Errorf("zero days should return nil, got %v", out)
	}

	out := distributeDaily(0, 3, model.ArchetypeSteady, 300)
	for i, m := range out {
		if m != 0 {
			t.Errorf("zero budget: out[%d] = %v, expected 0", i, m)
		}
	}
}
