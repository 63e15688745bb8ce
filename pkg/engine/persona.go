// Package engine 实现特勤记录的分配与合成
package engine

import (
	"github.com/teukgeun/teukgeun/pkg/model"
)

// archetypeTable 原型选择表（哈希值 mod 4）
var archetypeTable = [4]model.Archetype{
	model.ArchetypeFocused,
	model.ArchetypeSteady,
	model.ArchetypeSundayLover,
	model.ArchetypeProcrastinator,
}

// preferenceTable 时段偏好选择表（派生哈希 mod 4，ANY 占两格）
var preferenceTable = [4]model.TimePreference{
	model.PreferenceAM,
	model.PreferencePM,
	model.PreferenceAny,
	model.PreferenceAny,
}

// AssignPersona 根据员工姓名派生稳定的行为画像
// 不含任何随机性：同名在任何进程、任何时刻都得到同一画像。
// 重试循环每次重抽时刻抖动，但画像保持不变，否则同一人的
// 记录在不同查看者眼中会呈现不同的"个人风格"。
func AssignPersona(name string) model.Persona {
	h := nameHash(name)
	return model.Persona{
		Archetype: archetypeTable[h%4],
		// 右移3位得到与原型弱相关的第二哈希
		TimePreference: preferenceTable[(h>>3)%4],
	}
}

// nameHash 对姓名做31进制多项式哈希
// 明确按 rune 逐个累加，避免移植时依赖语言的字符串迭代语义。
func nameHash(name string) uint32 {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	return h
}
