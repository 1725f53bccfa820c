package engine

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// scriptedRand replays queued draws. An exhausted float queue fails every
// fractional trial; an exhausted int queue picks index 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func writeFixture(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testStore(t *testing.T) *content.Store {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, filepath.Join(dir, "scenes", "dormitory.json"), `{
		"story": "Your four-poster bed.",
		"choices": [
			{"text": "Head to the corridor", "next": "corridor", "time": 30, "effect": {"fatigue": 10}},
			{"text": "Walk the forest path", "next": "forest_path", "time": 10,
			 "random_events": [
				{"chance": 0.5, "event": "You found a shiny feather.", "item": "phoenix_feather"},
				{"chance": 1.0, "event": "A chill runs down your spine.", "effect": {"san": -5}}
			 ],
			 "items": [{"action": "add", "item": "toad"}]},
			{"type": "talk", "talk_files": ["hallway_chat"]},
			{"text": "Take the dark shortcut", "next": "corridor",
			 "random_events": [{"chance": 1.0, "event": "Ambush!", "next": "battle", "enemy": "Troll"}]},
			{"text": "Chase the shadow", "next": "corridor",
			 "random_events": [{"chance": 1.0, "event": "Ambush!", "next": "battle", "enemy": "Boggart"}]},
			{"text": "Tidy up", "next": "dormitory",
			 "items": [{"action": "remove", "item": "toad", "quantity": 2}]}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "scenes", "corridor.json"), `{
		"choices": [],
		"achievements": [{"id": "first_walk", "condition": "visit", "name": "First Walk"}]
	}`)
	writeFixture(t, filepath.Join(dir, "scenes", "forest_path.json"), `{"choices": []}`)
	writeFixture(t, filepath.Join(dir, "scenes", "forbidden_forest.json"), `{"choices": []}`)
	writeFixture(t, filepath.Join(dir, "scenes", "great_hall.json"), `{"choices": []}`)

	writeFixture(t, filepath.Join(dir, "talks", "hallway_chat.json"), `{
		"dialogue": {
			"1-1": [
				{"type": "text", "text": "A prefect waves you over."},
				{"type": "choice", "choices": [
					{"text": "Chat for a while", "next": "2-1", "effect": {"san": 5}},
					{"text": "Excuse yourself", "next": "end"}
				]}
			],
			"2-1": [
				{"type": "text", "text": "The conversation drifts on."},
				{"type": "choice", "choices": [
					{"text": "Say goodbye", "next": "3-1"}
				]}
			],
			"3-1": [{"type": "end", "next_scene": "great_hall"}]
		}
	}`)

	writeFixture(t, filepath.Join(dir, "spells.json"), `{
		"spells": [
			{"name": "Incendio", "type": 1, "effect": {"damage": 10}, "description": "A jet of flame."},
			{"name": "Protego", "type": 2, "effect": {}},
			{"name": "Venomous Vine", "type": 3, "effect": {"damage": 4, "duration": 2}},
			{"name": "Fortis", "type": 4, "effect": {"attack_boost": 0.2, "duration": 3}}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "enemies.json"), `{
		"enemies": [
			{"name": "Troll", "health": 15,
			 "skills": [{"name": "Club", "effect": {"health": -10}}],
			 "rewards": [{"item": "troll_tooth", "quantity": 1, "chance": 1.0}]}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "item_effects.json"), `{
		"chocolate_frog": {"type": "consumable", "effect": {"health": 10}, "message": "Delicious."},
		"old_hat": {"type": "misc", "message": "It does nothing."}
	}`)
	writeFixture(t, filepath.Join(dir, "achievements.json"), `[
		{"id": "first_walk", "name": "First Walk", "condition": "visit"},
		{"id": "collect_first_item", "name": "Collector", "condition": "item_collected"},
		{"id": "learn_first_spell", "name": "Apprentice", "condition": "spell_learned"}
	]`)
	writeFixture(t, filepath.Join(dir, "game_state_init.json"), `{
		"stats": {"health": 100, "san": 50, "fatigue": 0, "time": "08:00 AM"},
		"containers": {"trunk": {}}
	}`)

	store, err := content.NewStore(dir, nil)
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(t *testing.T, rng Rand) *Engine {
	t.Helper()
	return New(testStore(t), rng, testLogger())
}

func newSession(e *Engine) *state.GameState {
	return e.NewGameState("Morgan", "female")
}

func TestNewGameState(t *testing.T) {
	e := testEngine(t, NewSeededRand(7))
	gs := newSession(e)

	if gs.CurrentScene != OpeningScene {
		t.Errorf("expected opening scene %q, got %q", OpeningScene, gs.CurrentScene)
	}
	if !gs.HasVisited(OpeningScene) || !gs.IsUnlocked(OpeningScene) {
		t.Error("expected opening scene visited and unlocked")
	}
	if gs.Stats.Health != 100 || gs.Stats.San != 50 || gs.Stats.Fatigue != 0 {
		t.Errorf("unexpected starting stats: %+v", gs.Stats)
	}
	if gs.Stats.Time != "08:00 AM" {
		t.Errorf("unexpected starting time %q", gs.Stats.Time)
	}
	if gs.Stats.Galleons < 20 || gs.Stats.Galleons > 50 {
		t.Errorf("galleons out of range: %d", gs.Stats.Galleons)
	}
	if gs.Stats.Sickle < 50 || gs.Stats.Sickle > 100 {
		t.Errorf("sickle out of range: %d", gs.Stats.Sickle)
	}
	if gs.Stats.Knut < 100 || gs.Stats.Knut > 200 {
		t.Errorf("knut out of range: %d", gs.Stats.Knut)
	}
	if gs.Grade != 1 {
		t.Errorf("expected grade 1, got %d", gs.Grade)
	}
	if gs.InBattle() || gs.InTalk() {
		t.Error("expected neutral mode at start")
	}
	if gs.Containers["trunk"] == nil {
		t.Error("expected trunk container from init template")
	}
}

func TestNavigate(t *testing.T) {
	t.Run("locked scene outside debug is a no-op", func(t *testing.T) {
		e := testEngine(t, NewSeededRand(1))
		gs := newSession(e)

		res, err := e.Navigate(gs, "great_hall", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gs.CurrentScene != OpeningScene {
			t.Errorf("expected scene unchanged, got %q", gs.CurrentScene)
		}
		if res.Event() != "" {
			t.Errorf("expected no event, got %q", res.Event())
		}
	})

	t.Run("debug navigation visits and unlocks", func(t *testing.T) {
		e := testEngine(t, NewSeededRand(1))
		gs := newSession(e)

		res, err := e.Navigate(gs, "corridor", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gs.CurrentScene != "corridor" {
			t.Errorf("expected corridor, got %q", gs.CurrentScene)
		}
		if len(res.Unlocked) != 1 || res.Unlocked[0].ID != "first_walk" {
			t.Errorf("expected first_walk unlock, got %+v", res.Unlocked)
		}
	})

	t.Run("navigation exits dialogue mode", func(t *testing.T) {
		e := testEngine(t, NewSeededRand(1))
		gs := newSession(e)
		gs.CurrentTalk = "hallway_chat"
		gs.CurrentTalkNode = content.EntryNode

		if _, err := e.Navigate(gs, "dormitory", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gs.InTalk() {
			t.Error("expected dialogue mode cleared")
		}
	})

	t.Run("unknown scene is an error", func(t *testing.T) {
		e := testEngine(t, NewSeededRand(1))
		gs := newSession(e)

		if _, err := e.Navigate(gs, "atlantis", true); err == nil {
			t.Error("expected error for unknown scene")
		}
	})
}

func TestLearnSpell(t *testing.T) {
	e := testEngine(t, NewSeededRand(1))
	gs := newSession(e)

	res, err := e.LearnSpell(gs, "Incendio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gs.KnowsSpell("Incendio") {
		t.Error("expected spell to be known")
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].ID != "learn_first_spell" {
		t.Errorf("expected learn_first_spell unlock, got %+v", res.Unlocked)
	}

	// Re-learning is a no-op and unlocks nothing.
	res, err = e.LearnSpell(gs, "Incendio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Unlocked) != 0 || len(gs.KnownSpells) != 1 {
		t.Errorf("expected idempotent learn, got spells=%v unlocks=%v", gs.KnownSpells, res.Unlocked)
	}

	if _, err := e.LearnSpell(gs, "Abracadabra"); err == nil {
		t.Error("expected error for unknown spell")
	}
}

func TestLearnAllSpells(t *testing.T) {
	e := testEngine(t, NewSeededRand(1))
	gs := newSession(e)

	res := e.LearnAllSpells(gs)
	if len(gs.KnownSpells) != 4 {
		t.Errorf("expected 4 known spells, got %d", len(gs.KnownSpells))
	}
	if len(res.Unlocked) != 1 {
		t.Errorf("expected one unlock, got %+v", res.Unlocked)
	}
	if got := len(e.KnownSpells(gs)); got != 4 {
		t.Errorf("expected 4 resolved spells, got %d", got)
	}
}

func TestRestoreStats(t *testing.T) {
	e := testEngine(t, NewSeededRand(1))
	gs := newSession(e)
	gs.Stats.Health = 3
	gs.Stats.San = 12
	gs.Stats.Fatigue = 90

	e.RestoreStats(gs)
	if gs.Stats.Health != 100 || gs.Stats.San != 100 || gs.Stats.Fatigue != 0 {
		t.Errorf("unexpected stats after restore: %+v", gs.Stats)
	}
}

func TestUnlockedAchievements(t *testing.T) {
	e := testEngine(t, NewSeededRand(1))
	gs := newSession(e)
	gs.UnlockAchievement("collect_first_item")

	defs := e.UnlockedAchievements(gs)
	if len(defs) != 1 || defs[0].Name != "Collector" {
		t.Errorf("expected resolved Collector definition, got %+v", defs)
	}
}
