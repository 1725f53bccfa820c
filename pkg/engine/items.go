package engine

import (
	"fmt"

	"github.com/jwebster45206/spellbound/pkg/state"
)

// Item action verbs.
const (
	ActionMoveToContainer = "move_to_container"
	ActionMoveToInventory = "move_to_inventory"
	ActionDiscard         = "discard"
	ActionUse             = "use"
)

// ItemAction performs one unit-quantity item operation. The rollback slot
// is committed only when the action actually mutated state, so a no-op
// (missing item, full container, unusable item) leaves nothing to undo.
func (e *Engine) ItemAction(gs *state.GameState, action, item, container string) (*Result, error) {
	snap := gs.SnapshotItems()
	if container != "" {
		if _, ok := gs.Containers[container]; !ok {
			gs.Containers[container] = state.ItemCount{}
		}
	}

	var message string
	mutated := false

	switch action {
	case ActionMoveToContainer:
		if container == "" {
			break
		}
		dest := gs.Containers[container]
		if gs.Inventory.Count(item) > 0 && dest.Total() < state.ContainerCap {
			gs.Inventory.Remove(item, 1)
			dest.Add(item, 1)
			message = fmt.Sprintf("Moved %s into %s", item, container)
			mutated = true
		}

	case ActionMoveToInventory:
		if container == "" {
			break
		}
		src := gs.Containers[container]
		if src.Count(item) > 0 && gs.Inventory.Total() < state.InventoryCap {
			src.Remove(item, 1)
			gs.Inventory.Add(item, 1)
			message = fmt.Sprintf("Took %s from %s", item, container)
			mutated = true
		}

	case ActionDiscard:
		if gs.Inventory.Remove(item, 1) > 0 {
			message = fmt.Sprintf("Discarded %s", item)
			mutated = true
		}

	case ActionUse:
		effect, ok := e.store.ItemEffect(item)
		if !ok || effect.Type != "consumable" {
			break
		}
		if gs.Inventory.Count(item) == 0 {
			break
		}
		gs.Stats.Apply(effect.Effect)
		gs.Inventory.Remove(item, 1)
		message = effect.Message
		mutated = true

	default:
		return nil, fmt.Errorf("unknown item action %q", action)
	}

	if mutated {
		gs.PreviousItemState = snap
	}
	return &Result{Message: message}, nil
}

// UndoItemAction restores the inventory, containers, equipment and stats
// captured before the last item action and clears the rollback slot.
// Without a prior action this is a no-op signalling nothing to undo.
func (e *Engine) UndoItemAction(gs *state.GameState) *Result {
	if gs.PreviousItemState == nil {
		return &Result{Message: "Nothing to undo."}
	}
	gs.RestoreItems(gs.PreviousItemState)
	gs.PreviousItemState = nil
	return &Result{Message: "Item action undone."}
}
