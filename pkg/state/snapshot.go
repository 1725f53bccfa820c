package state

// ItemSnapshot is the rollback slot captured before each item action.
// It covers exactly the four fields an item action may touch.
type ItemSnapshot struct {
	Inventory  ItemCount            `json:"inventory"`
	Containers map[string]ItemCount `json:"containers"`
	Equipment  map[string]string    `json:"equipment,omitempty"`
	Stats      Stats                `json:"stats"`
}

// Snapshot returns a deep copy of the state suitable for single-level undo.
// The copy's own undo slots are cleared, so a retained snapshot never chains.
func (gs *GameState) Snapshot() *GameState {
	c := *gs
	c.Inventory = gs.Inventory.Clone()
	c.Containers = cloneContainers(gs.Containers)
	c.Equipment = cloneStringMap(gs.Equipment)
	c.KnownSpells = cloneStrings(gs.KnownSpells)
	c.Achievements = cloneStrings(gs.Achievements)
	c.Visited = cloneStrings(gs.Visited)
	c.UnlockedScenes = cloneStrings(gs.UnlockedScenes)
	c.Battle = gs.Battle.Clone()
	c.PreviousState = nil
	c.PreviousItemState = nil
	return &c
}

// SnapshotItems captures the item-action rollback slot.
func (gs *GameState) SnapshotItems() *ItemSnapshot {
	return &ItemSnapshot{
		Inventory:  gs.Inventory.Clone(),
		Containers: cloneContainers(gs.Containers),
		Equipment:  cloneStringMap(gs.Equipment),
		Stats:      gs.Stats,
	}
}

// RestoreItems puts the captured item-action fields back.
func (gs *GameState) RestoreItems(snap *ItemSnapshot) {
	gs.Inventory = snap.Inventory
	gs.Containers = snap.Containers
	gs.Equipment = snap.Equipment
	gs.Stats = snap.Stats
}
