package engine

import (
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// checkAndUnlock scans the global achievement definitions for the given
// condition kind and unlocks any not yet held. Unlocks are idempotent;
// evaluation order is definition order.
func (e *Engine) checkAndUnlock(gs *state.GameState, condition string) []content.Achievement {
	var unlocked []content.Achievement
	for _, a := range e.store.Achievements() {
		if a.Condition != condition {
			continue
		}
		if gs.UnlockAchievement(a.ID) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// unlockSceneAchievements evaluates a scene's visit-triggered achievements
// on first visit. Display names resolve through the global definitions,
// falling back to the name declared on the scene.
func (e *Engine) unlockSceneAchievements(gs *state.GameState, scene *content.Scene) []content.Achievement {
	var unlocked []content.Achievement
	for _, sa := range scene.Achievements {
		if sa.Condition != content.ConditionVisit {
			continue
		}
		if !gs.UnlockAchievement(sa.ID) {
			continue
		}
		if def, ok := e.store.Achievement(sa.ID); ok {
			unlocked = append(unlocked, def)
			continue
		}
		unlocked = append(unlocked, content.Achievement{
			ID:        sa.ID,
			Name:      sa.Name,
			Condition: sa.Condition,
		})
	}
	return unlocked
}
