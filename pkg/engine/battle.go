package engine

import (
	"fmt"

	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// BattleExitScene is the aftermath scene forced after an encounter ends,
// by victory or defeat.
const BattleExitScene = "forbidden_forest"

// MaxSelectedSkills is the per-round cap on selected spells.
const MaxSelectedSkills = 3

// Per-type spell effect defaults, used when the definition leaves the
// parameter at zero.
const (
	defaultDamage      = 10
	defaultDotDamage   = 5
	defaultDotDuration = 3
	defaultBuffBoost   = 0.2
	defaultBuffRounds  = 3
)

const dodgeChance = 0.5

// startBattle clones an enemy template into the battle sub-state and clears
// the encounter log and round selections.
func (e *Engine) startBattle(gs *state.GameState, template *content.Enemy) {
	gs.Battle.Enemy = template.Clone()
	gs.Battle.Log = []string{}
	gs.Battle.SelectedSkills = []string{}
	gs.Battle.Dodge = false
	e.logger.Info("Battle started",
		"enemy", template.Name,
		"enemy_health", template.Health)
}

// SubmitDodge declares a dodge for the round and resolves it. Dodge and
// skill selection are mutually exclusive; either submission wipes the
// defense, persistent-damage and buff flags before the round resolves, so
// armed effects last at most until the next submission.
func (e *Engine) SubmitDodge(gs *state.GameState) (*Result, error) {
	if !gs.InBattle() {
		return &Result{}, nil
	}
	b := &gs.Battle
	b.Dodge = true
	b.SelectedSkills = []string{}
	b.Defense = false
	b.PersistentDamage = state.DamageOverTime{}
	b.Buff = state.AttackBuff{}

	res := &Result{}
	e.resolveRound(gs, res)
	return res, nil
}

// SubmitSkills declares up to MaxSelectedSkills known spells for the round
// and resolves it. Over-length selections are a silent no-op; names the
// player has not learned are dropped.
func (e *Engine) SubmitSkills(gs *state.GameState, names []string) (*Result, error) {
	if !gs.InBattle() {
		return &Result{}, nil
	}
	if len(names) > MaxSelectedSkills {
		return &Result{}, nil
	}
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if gs.KnowsSpell(name) {
			selected = append(selected, name)
		}
	}

	b := &gs.Battle
	b.SelectedSkills = selected
	b.Dodge = false
	b.Defense = false
	b.PersistentDamage = state.DamageOverTime{}
	b.Buff = state.AttackBuff{}

	res := &Result{}
	e.resolveRound(gs, res)
	return res, nil
}

// resolveRound runs one battle round: persistent damage tick, enemy attack,
// player spell resolution, buff countdown and outcome check. Narration is
// appended to the encounter log.
func (e *Engine) resolveRound(gs *state.GameState, res *Result) {
	b := &gs.Battle
	enemy := b.Enemy

	if b.PersistentDamage.Duration > 0 {
		b.Enemy.Health -= b.PersistentDamage.Damage
		b.AppendLog(fmt.Sprintf("%s takes %d lingering damage", enemy.Name, b.PersistentDamage.Damage))
		b.PersistentDamage.Duration--
		if b.PersistentDamage.Duration == 0 {
			b.AppendLog("The lingering damage has worn off.")
		}
	}

	enemySkill := pick(e.rng, enemy.Skills)
	b.AppendLog(fmt.Sprintf("%s uses %s!", enemy.Name, enemySkill.Name))

	if b.Dodge {
		if e.chance(dodgeChance) {
			b.AppendLog("You dodged the attack!")
		} else {
			b.AppendLog("Dodge failed!")
			e.resolveEnemyHit(gs, enemySkill)
		}
	} else {
		e.resolveEnemyHit(gs, enemySkill)
	}

	if !b.Dodge {
		for _, name := range b.SelectedSkills {
			spell, ok := e.store.Spell(name)
			if !ok {
				e.logger.Warn("Selected spell not in catalog", "spell", name)
				continue
			}
			if e.chance(successChance(gs.Stats)) {
				b.AppendLog(fmt.Sprintf("You cast %s!", spell.Name))
				e.applySpell(gs, spell)
			} else {
				b.AppendLog(fmt.Sprintf("Failed to cast %s!", spell.Name))
			}
		}
	}

	if b.Buff.Duration > 0 {
		b.Buff.Duration--
		if b.Buff.Duration == 0 {
			b.AppendLog("The attack boost has faded.")
			b.Buff.AttackBoost = 0
		}
	}

	switch {
	case gs.Stats.Health <= 0:
		b.AppendLog("You were defeated!")
		e.endBattle(gs)
	case enemy.Health <= 0:
		b.AppendLog(fmt.Sprintf("You defeated %s!", enemy.Name))
		e.grantRewards(gs, enemy, res)
		e.endBattle(gs)
	}
}

// resolveEnemyHit applies an enemy attack against the player, honoring a
// previously armed defense exactly once.
func (e *Engine) resolveEnemyHit(gs *state.GameState, skill content.EnemySkill) {
	b := &gs.Battle
	if b.Defense {
		b.AppendLog("Your defensive barrier blocked the attack!")
		b.Defense = false
		return
	}
	gs.Stats.Apply(skill.Effect)
}

// successChance is the per-spell cast probability:
// clamp(0.5 + san/100 - fatigue/100, 0, 1).
func successChance(s state.Stats) float64 {
	p := 0.5 + float64(s.San)/100.0 - float64(s.Fatigue)/100.0
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (e *Engine) applySpell(gs *state.GameState, spell *content.Spell) {
	b := &gs.Battle
	enemy := b.Enemy

	switch spell.Type {
	case content.SpellDamage:
		base := spell.Effect.Damage
		if base == 0 {
			base = defaultDamage
		}
		boost := 0.0
		if b.Buff.Duration > 0 {
			boost = b.Buff.AttackBoost
		}
		damage := int(float64(base) * (1 + float64(gs.Grade)*0.05 + boost))
		enemy.Health -= damage
		b.AppendLog(fmt.Sprintf("Dealt %d damage to %s", damage, enemy.Name))

	case content.SpellDefense:
		b.Defense = true
		b.AppendLog("You will block the next attack!")

	case content.SpellDamageOver:
		damage := spell.Effect.Damage
		if damage == 0 {
			damage = defaultDotDamage
		}
		duration := spell.Effect.Duration
		if duration == 0 {
			duration = defaultDotDuration
		}
		// Initial tick applies now; the armed effect replaces any prior one.
		b.PersistentDamage = state.DamageOverTime{Damage: damage, Duration: duration}
		enemy.Health -= damage
		b.AppendLog(fmt.Sprintf("Dealt %d lingering damage to %s", damage, enemy.Name))

	case content.SpellBuff:
		boost := spell.Effect.AttackBoost
		if boost == 0 {
			boost = defaultBuffBoost
		}
		duration := spell.Effect.Duration
		if duration == 0 {
			duration = defaultBuffRounds
		}
		b.Buff = state.AttackBuff{AttackBoost: boost, Duration: duration}
		b.AppendLog(fmt.Sprintf("Your attack increased by %.0f%% for %d rounds!", boost*100, duration))
	}
}

// grantRewards rolls each victory reward independently against its own
// chance. Grants respect the inventory cap best-effort per reward; a drop
// that would overflow is skipped, not truncated.
func (e *Engine) grantRewards(gs *state.GameState, enemy *content.Enemy, res *Result) {
	b := &gs.Battle
	for _, reward := range enemy.Rewards {
		if !e.chance(reward.Chance) {
			continue
		}
		qty := reward.Quantity
		if qty <= 0 {
			qty = 1
		}
		if gs.Inventory.Total()+qty > state.InventoryCap {
			continue
		}
		gs.Inventory.Add(reward.Item, qty)
		b.AppendLog(fmt.Sprintf("Obtained %s x%d", reward.Item, qty))
		res.Unlocked = append(res.Unlocked, e.checkAndUnlock(gs, content.ConditionItemCollected)...)
	}
}

// endBattle clears the encounter and forces the aftermath scene.
func (e *Engine) endBattle(gs *state.GameState) {
	gs.Battle.Enemy = nil
	gs.Battle.SelectedSkills = []string{}
	gs.Battle.Dodge = false
	gs.CurrentScene = BattleExitScene
}
