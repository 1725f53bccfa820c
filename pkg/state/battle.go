package state

import "github.com/jwebster45206/spellbound/pkg/content"

// BattleState is the combat sub-state. Enemy is nil outside an encounter;
// when set it is a deep copy of a content-store template with independently
// mutable health.
type BattleState struct {
	Enemy          *content.Enemy `json:"enemy,omitempty"`
	Log            []string       `json:"battle_log"`
	SelectedSkills []string       `json:"selected_skills"`
	Dodge          bool           `json:"dodge"`
	Defense        bool           `json:"defense"`

	PersistentDamage DamageOverTime `json:"persistent_damage"`
	Buff             AttackBuff     `json:"buff"`
}

// DamageOverTime is a countdown effect applied to the enemy once per round
// while Duration is positive.
type DamageOverTime struct {
	Damage   int `json:"damage"`
	Duration int `json:"duration"`
}

// AttackBuff is a countdown attack multiplier bonus. The boost applies only
// while Duration is positive.
type AttackBuff struct {
	AttackBoost float64 `json:"attack_boost"`
	Duration    int     `json:"duration"`
}

// AppendLog appends one narration line to the encounter log.
func (b *BattleState) AppendLog(line string) {
	b.Log = append(b.Log, line)
}

// Reset clears the whole battle sub-state to its neutral baseline.
func (b *BattleState) Reset() {
	*b = BattleState{
		Log:            []string{},
		SelectedSkills: []string{},
	}
}

// Clone returns an independent copy of the battle state.
func (b BattleState) Clone() BattleState {
	c := b
	c.Enemy = b.Enemy.Clone()
	c.Log = cloneStrings(b.Log)
	c.SelectedSkills = cloneStrings(b.SelectedSkills)
	return c
}
