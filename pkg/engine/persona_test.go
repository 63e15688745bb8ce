package engine

import (
	"testing"

	"github.com/teukgeun/teukgeun/pkg/model"
)

func TestAssignPersona_Deterministic(t *testing.T) {
	names := []string{"김민수", "이영희", "박철수", "최지은", "John Smith"}

	for _, name := range names {
		first := AssignPersona(name)
		for i := 0; i < 10; i++ {
			if p := AssignPersona(name); p != first {
				t.Fatalf("AssignPersona(%s) not stable: %v vs %v", name, p, first)
			}
		}
	}
}

func TestAssignPersona_HashDerivation(t *testing.T) {
	// 画像必须与哈希表的取模结果严格一致
	name := "김민수"
	h := nameHash(name)

	p := AssignPersona(name)
	if p.Archetype != archetypeTable[h%4] {
		t.Errorf("Archetype = %v, expected %v", p.Archetype, archetypeTable[h%4])
	}
	if p.TimePreference != preferenceTable[(h>>3)%4] {
		t.Errorf("TimePreference = %v, expected %v", p.TimePreference, preferenceTable[(h>>3)%4])
	}
}

func TestNameHash(t *testing.T) {
	// 31进制多项式哈希按rune累加
	if h := nameHash(""); h != 0 {
		t.Errorf("nameHash(\"\") = %v, expected 0", h)
	}
	if h := nameHash("a"); h != uint32('a') {
		t.Errorf("nameHash(\"a\") = %v, expected %v", h, uint32('a'))
	}
	if h := nameHash("ab"); h != uint32('a')*31+uint32('b') {
		t.Errorf("nameHash(\"ab\") = %v, expected %v", h, uint32('a')*31+uint32('b'))
	}
}

func TestAssignPersona_ValidValues(t *testing.T) {
	validArchetypes := map[model.Archetype]bool{
		model.ArchetypeFocused:        true,
		model.ArchetypeSteady:         true,
		model.ArchetypeSundayLover:    true,
		model.ArchetypeProcrastinator: true,
	}
	validPrefs := map[model.TimePreference]bool{
		model.PreferenceAM:  true,
		model.PreferencePM:  true,
		model.PreferenceAny: true,
	}

	for _, name := range []string{"가", "나다", "라마바", "A", "BB", "CCC"} {
		p := AssignPersona(name)
		if !validArchetypes[p.Archetype] {
			t.Errorf("AssignPersona(%s) returned unknown archetype %v", name, p.Archetype)
		}
		if !validPrefs[p.TimePreference] {
			t.Errorf("AssignPersona(%s) returned unknown preference %v", name, p.TimePreference)
		}
	}
}
