// Package engine implements the game-state transition rules: scene and
// dialogue graph traversal, the battle round algorithm, inventory and
// container operations, achievement evaluation and single-step undo.
//
// Every operation takes the caller-owned snapshot, mutates it in place and
// returns the events the transition produced. The engine holds no per-session
// state of its own; concurrent sessions are independent as long as each
// snapshot has at most one operation in flight.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// OpeningScene is where every new session starts.
const OpeningScene = "dormitory"

// Starting currency ranges, inclusive.
const (
	galleonsMin, galleonsMax = 20, 50
	sickleMin, sickleMax     = 50, 100
	knutMin, knutMax         = 100, 200
)

// Engine applies player actions to game-state snapshots.
type Engine struct {
	store  *content.Store
	rng    Rand
	logger *slog.Logger
}

// New creates an engine over the content store. A nil rng falls back to a
// time-seeded source; tests inject a seeded or scripted one.
func New(store *content.Store, rng Rand, logger *slog.Logger) *Engine {
	if rng == nil {
		rng = NewRand()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		rng:    rng,
		logger: logger,
	}
}

// Result carries the events emitted by one transition: an optional combined
// narration message plus any achievements unlocked along the way.
type Result struct {
	Message  string                `json:"message,omitempty"`
	Unlocked []content.Achievement `json:"unlocked,omitempty"`

	// BattleStarted signals that this transition entered combat.
	BattleStarted bool `json:"battle_started,omitempty"`
}

// Event joins the narration with unlock notifications into a single
// human-readable string, or "" if nothing notable happened.
func (r *Result) Event() string {
	parts := make([]string, 0, 1+len(r.Unlocked))
	if r.Message != "" {
		parts = append(parts, r.Message)
	}
	for _, a := range r.Unlocked {
		parts = append(parts, fmt.Sprintf("Achievement unlocked: %s", a.Name))
	}
	return strings.Join(parts, "; ")
}

// NewGameState builds a fresh session from the content-store template plus
// randomized starting currency.
func (e *Engine) NewGameState(name, gender string) *state.GameState {
	init := e.store.InitState()

	gs := &state.GameState{
		ID: uuid.New(),
		Character: state.Character{
			Name:   name,
			Gender: gender,
		},
		Stats: state.Stats{
			Health:   init.Stats.Health,
			San:      init.Stats.San,
			Fatigue:  init.Stats.Fatigue,
			Time:     init.Stats.Time,
			Galleons: e.randRange(galleonsMin, galleonsMax),
			Sickle:   e.randRange(sickleMin, sickleMax),
			Knut:     e.randRange(knutMin, knutMax),
		},
		Inventory:      state.ItemCount{},
		Containers:     make(map[string]state.ItemCount),
		Equipment:      make(map[string]string),
		KnownSpells:    []string{},
		Achievements:   []string{},
		CurrentScene:   OpeningScene,
		Visited:        []string{OpeningScene},
		UnlockedScenes: []string{OpeningScene},
		Grade:          1,
	}
	gs.Battle.Reset()

	for item, n := range init.Inventory {
		gs.Inventory[item] = n
	}
	for id, items := range init.Containers {
		c := make(state.ItemCount, len(items))
		for item, n := range items {
			c[item] = n
		}
		gs.Containers[id] = c
	}
	for slot, item := range init.Equipment {
		gs.Equipment[slot] = item
	}

	return gs
}

// Undo restores the previous snapshot taken before the last mutating
// narrative action. Repeated undo without an intervening action is a no-op.
func (e *Engine) Undo(gs *state.GameState) *Result {
	prev := gs.PreviousState
	if prev == nil {
		return &Result{Message: "Nothing to undo."}
	}
	*gs = *prev
	gs.PreviousState = nil
	return &Result{Message: "Reverted to the previous step."}
}

// Navigate jumps straight to a scene, bypassing choice traversal. Outside
// debug mode only unlocked scenes are reachable; locked targets are a
// silent no-op. Navigation exits dialogue mode and is not undoable.
func (e *Engine) Navigate(gs *state.GameState, sceneID string, debug bool) (*Result, error) {
	if !debug && !gs.IsUnlocked(sceneID) {
		return &Result{}, nil
	}
	scene, ok := e.store.Scene(sceneID)
	if !ok {
		return nil, fmt.Errorf("scene %q not found", sceneID)
	}

	gs.CurrentTalk = ""
	gs.CurrentTalkNode = ""
	gs.CurrentScene = sceneID

	res := &Result{}
	if !gs.HasVisited(sceneID) {
		gs.MarkVisited(sceneID)
		res.Unlocked = e.unlockSceneAchievements(gs, scene)
	}
	return res, nil
}

// LearnSpell adds a catalog spell to the player's known set and evaluates
// spell-learned achievements. Unknown spell names are an error; re-learning
// a known spell is a no-op.
func (e *Engine) LearnSpell(gs *state.GameState, name string) (*Result, error) {
	if _, ok := e.store.Spell(name); !ok {
		return nil, fmt.Errorf("spell %q not found", name)
	}
	if gs.KnowsSpell(name) {
		return &Result{}, nil
	}
	gs.KnownSpells = append(gs.KnownSpells, name)
	return &Result{
		Message:  fmt.Sprintf("Learned %s!", name),
		Unlocked: e.checkAndUnlock(gs, content.ConditionSpellLearned),
	}, nil
}

// LearnAllSpells grants the entire catalog. Debug helper.
func (e *Engine) LearnAllSpells(gs *state.GameState) *Result {
	names := make([]string, 0)
	for _, sp := range e.store.Spells() {
		names = append(names, sp.Name)
	}
	gs.KnownSpells = names
	return &Result{
		Message:  "All spells learned.",
		Unlocked: e.checkAndUnlock(gs, content.ConditionSpellLearned),
	}
}

// RestoreStats resets health, san and fatigue to full. Debug helper.
func (e *Engine) RestoreStats(gs *state.GameState) *Result {
	gs.Stats.Health = 100
	gs.Stats.San = 100
	gs.Stats.Fatigue = 0
	return &Result{Message: "Stats restored."}
}

// KnownSpells resolves the player's known spell names against the catalog.
func (e *Engine) KnownSpells(gs *state.GameState) []*content.Spell {
	out := make([]*content.Spell, 0, len(gs.KnownSpells))
	for _, sp := range e.store.Spells() {
		if gs.KnowsSpell(sp.Name) {
			out = append(out, sp)
		}
	}
	return out
}

// UnlockedAchievements resolves the session's unlocked ids to definitions,
// in definition order.
func (e *Engine) UnlockedAchievements(gs *state.GameState) []content.Achievement {
	out := make([]content.Achievement, 0, len(gs.Achievements))
	for _, a := range e.store.Achievements() {
		if gs.HasAchievement(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

func (e *Engine) randRange(lo, hi int) int {
	return lo + e.rng.Intn(hi-lo+1)
}
