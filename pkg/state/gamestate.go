// Package state defines the game-state aggregate. A GameState is owned
// exclusively by the caller between turns; the engine mutates it in place and
// never retains a reference across calls.
package state

import (
	"time"

	"github.com/google/uuid"
)

// Character is the player's identity, fixed at session creation.
type Character struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// Stats is the player's stat block. Health, san and fatigue are clamped to
// [0,100] on every write; currency is unbounded. Time is an in-game
// 12-hour wall clock.
type Stats struct {
	Health   int    `json:"health"`
	San      int    `json:"san"`
	Fatigue  int    `json:"fatigue"`
	Galleons int    `json:"galleons"`
	Sickle   int    `json:"sickle"`
	Knut     int    `json:"knut"`
	Time     string `json:"time"`
}

// Apply adds the named deltas to the stat block. Clamped stats clamp on
// write; currency adds without bounds. Unknown keys are ignored.
func (s *Stats) Apply(delta map[string]int) {
	for stat, v := range delta {
		switch stat {
		case "health":
			s.Health = clamp(s.Health + v)
		case "san":
			s.San = clamp(s.San + v)
		case "fatigue":
			s.Fatigue = clamp(s.Fatigue + v)
		case "galleons":
			s.Galleons += v
		case "sickle":
			s.Sickle += v
		case "knut":
			s.Knut += v
		}
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// GameState is the root aggregate for one game session.
type GameState struct {
	ID             uuid.UUID            `json:"id"`
	Character      Character            `json:"character"`
	Stats          Stats                `json:"stats"`
	Inventory      ItemCount            `json:"inventory"`
	Containers     map[string]ItemCount `json:"containers"`
	Equipment      map[string]string    `json:"equipment,omitempty"`
	KnownSpells    []string             `json:"known_spells"`
	Achievements   []string             `json:"achievements"`
	CurrentScene   string               `json:"current_scene"`
	Visited        []string             `json:"visited"`
	UnlockedScenes []string             `json:"unlocked_scenes"`

	// Dialogue cursor. Both fields are set together or empty together.
	CurrentTalk     string `json:"current_talk,omitempty"`
	CurrentTalkNode string `json:"current_talk_node,omitempty"`

	// Grade feeds the combat damage multiplier.
	Grade int `json:"grade"`

	Battle BattleState `json:"battle"`

	// PreviousState holds at most one prior snapshot for single-level undo.
	// It never itself contains a snapshot.
	PreviousState *GameState `json:"previous_state,omitempty"`

	// PreviousItemState is the rollback slot for item actions, distinct
	// from PreviousState.
	PreviousItemState *ItemSnapshot `json:"previous_item_state,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// InTalk reports whether the session is in dialogue mode.
func (gs *GameState) InTalk() bool {
	return gs.CurrentTalk != "" && gs.CurrentTalkNode != ""
}

// InBattle reports whether an encounter is in progress.
func (gs *GameState) InBattle() bool {
	return gs.Battle.Enemy != nil
}

// HasVisited reports whether the scene has been visited before.
func (gs *GameState) HasVisited(sceneID string) bool {
	return contains(gs.Visited, sceneID)
}

// IsUnlocked reports whether the scene is reachable via free navigation.
func (gs *GameState) IsUnlocked(sceneID string) bool {
	return contains(gs.UnlockedScenes, sceneID)
}

// MarkVisited records a first visit. Visited and unlocked sets only grow.
func (gs *GameState) MarkVisited(sceneID string) {
	if !contains(gs.Visited, sceneID) {
		gs.Visited = append(gs.Visited, sceneID)
	}
	if !contains(gs.UnlockedScenes, sceneID) {
		gs.UnlockedScenes = append(gs.UnlockedScenes, sceneID)
	}
}

// KnowsSpell reports whether the player has learned the named spell.
func (gs *GameState) KnowsSpell(name string) bool {
	return contains(gs.KnownSpells, name)
}

// HasAchievement reports whether the achievement id is already unlocked.
func (gs *GameState) HasAchievement(id string) bool {
	return contains(gs.Achievements, id)
}

// UnlockAchievement adds an achievement id. Returns false if it was already
// unlocked; ids are added at most once and never removed.
func (gs *GameState) UnlockAchievement(id string) bool {
	if contains(gs.Achievements, id) {
		return false
	}
	gs.Achievements = append(gs.Achievements, id)
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
