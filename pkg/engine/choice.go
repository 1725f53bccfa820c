package engine

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// ApplyChoice resolves one scene choice: talk transitions, probabilistic
// random sub-events (first successful trial wins), unconditional item
// actions, clock advance, direct stat effects and the scene transition
// itself. An out-of-range index is a silent no-op.
//
// The pre-choice snapshot is captured before any mutation, so the whole
// transition is undoable as a unit.
func (e *Engine) ApplyChoice(gs *state.GameState, choiceIndex int) (*Result, error) {
	scene, ok := e.store.Scene(gs.CurrentScene)
	if !ok {
		return nil, fmt.Errorf("current scene %q not found", gs.CurrentScene)
	}
	if choiceIndex < 0 || choiceIndex >= len(scene.Choices) {
		return &Result{}, nil
	}

	gs.PreviousState = gs.Snapshot()
	choice := scene.Choices[choiceIndex]

	// A talk transition enters dialogue mode and nothing else applies.
	if choice.Type == "talk" {
		if len(choice.TalkFiles) == 0 {
			return nil, fmt.Errorf("talk choice in scene %q has no dialogue candidates", gs.CurrentScene)
		}
		talkID := pick(e.rng, choice.TalkFiles)
		if _, ok := e.store.Talk(talkID); !ok {
			return nil, fmt.Errorf("talk %q not found", talkID)
		}
		gs.CurrentTalk = talkID
		gs.CurrentTalkNode = content.EntryNode
		return &Result{}, nil
	}

	res := &Result{}
	var eventMsg string
	var itemMsgs []string

	for _, ev := range choice.RandomEvents {
		if !e.chance(ev.Chance) {
			continue
		}
		eventMsg = ev.Event

		if strings.Contains(ev.Next, "battle") {
			if ev.Enemy == "" {
				res.Message = "No enemy was named for this encounter."
				return res, nil
			}
			template, ok := e.store.Enemy(ev.Enemy)
			if !ok {
				// Recoverable: surface as narration, the action no-ops.
				e.logger.Warn("Enemy not found for random event",
					"enemy", ev.Enemy,
					"scene", gs.CurrentScene)
				res.Message = fmt.Sprintf("Enemy not found: %s", ev.Enemy)
				return res, nil
			}
			e.startBattle(gs, template)
			res.Message = eventMsg
			res.BattleStarted = true
			return res, nil
		}

		if len(ev.Effect) > 0 {
			gs.Stats.Apply(ev.Effect)
		}
		if ev.Item != "" {
			if msg, ok := e.grantItem(gs, ev.Item, 1); ok {
				itemMsgs = append(itemMsgs, msg)
				res.Unlocked = append(res.Unlocked, e.checkAndUnlock(gs, content.ConditionItemCollected)...)
			}
		}
		break // first successful trial wins
	}

	for _, grant := range choice.Items {
		if !e.chance(grant.ChanceOrDefault()) {
			continue
		}
		switch grant.Action {
		case "add":
			if msg, ok := e.grantItem(gs, grant.Item, grant.QuantityOrDefault()); ok {
				itemMsgs = append(itemMsgs, msg)
				res.Unlocked = append(res.Unlocked, e.checkAndUnlock(gs, content.ConditionItemCollected)...)
			}
		case "remove":
			if removed := gs.Inventory.Remove(grant.Item, grant.QuantityOrDefault()); removed > 0 {
				itemMsgs = append(itemMsgs, fmt.Sprintf("Lost %s x%d", grant.Item, removed))
			}
		}
	}

	if choice.Time != 0 {
		newClock, err := advanceClock(gs.Stats.Time, choice.Time)
		if err != nil {
			e.logger.Warn("Failed to advance clock", "error", err)
		} else {
			gs.Stats.Time = newClock
		}
	}

	gs.Stats.Apply(choice.Effect)
	gs.CurrentScene = choice.Next

	if !gs.HasVisited(choice.Next) {
		gs.MarkVisited(choice.Next)
		if nextScene, ok := e.store.Scene(choice.Next); ok {
			res.Unlocked = append(res.Unlocked, e.unlockSceneAchievements(gs, nextScene)...)
		}
	}

	res.Message = joinNarration(eventMsg, itemMsgs)
	return res, nil
}

// grantItem adds an item respecting the inventory cap; an add that would
// exceed the cap is dropped whole, never partially applied.
func (e *Engine) grantItem(gs *state.GameState, item string, qty int) (string, bool) {
	if gs.Inventory.Total()+qty > state.InventoryCap {
		return "", false
	}
	gs.Inventory.Add(item, qty)
	return fmt.Sprintf("Obtained %s x%d", item, qty), true
}

func joinNarration(eventMsg string, itemMsgs []string) string {
	if len(itemMsgs) == 0 {
		return eventMsg
	}
	joined := strings.Join(itemMsgs, "; ")
	if eventMsg == "" {
		return joined
	}
	return eventMsg + " " + joined
}
