package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "scenes", "dormitory.json"), `{
		"story": "Your four-poster bed.",
		"choices": [
			{"text": "Head to the corridor", "next": "corridor", "time": 5}
		]
	}`)
	writeFile(t, filepath.Join(dir, "scenes", "corridor.json"), `{
		"choices": [],
		"achievements": [{"id": "first_walk", "condition": "visit", "name": "First Walk"}]
	}`)
	writeFile(t, filepath.Join(dir, "talks", "hallway_chat.json"), `{
		"dialogue": {
			"1-1": [
				{"type": "text", "text": "Hello there."},
				{"type": "choice", "choices": [{"text": "Hello", "next": "end"}]}
			]
		}
	}`)
	writeFile(t, filepath.Join(dir, "spells.json"), `{
		"spells": [
			{"name": "Incendio", "type": 1, "effect": {"damage": 10}}
		]
	}`)
	writeFile(t, filepath.Join(dir, "enemies.json"), `{
		"enemies": [
			{"name": "Troll", "health": 30, "skills": [{"name": "Club", "effect": {"health": -15}}],
			 "rewards": [{"item": "troll_tooth", "quantity": 1, "chance": 0.5}]}
		]
	}`)
	writeFile(t, filepath.Join(dir, "item_effects.json"), `{
		"chocolate_frog": {"type": "consumable", "effect": {"health": 10}, "message": "Delicious."}
	}`)
	writeFile(t, filepath.Join(dir, "achievements.json"), `[
		{"id": "first_walk", "name": "First Walk", "condition": "visit"},
		{"id": "collect_first_item", "name": "Collector", "condition": "item_collected"}
	]`)
	writeFile(t, filepath.Join(dir, "game_state_init.json"), `{
		"stats": {"health": 100, "san": 100, "fatigue": 0, "time": "08:00 AM"}
	}`)

	return dir
}

func TestNewStore(t *testing.T) {
	t.Run("loads all collections", func(t *testing.T) {
		s, err := NewStore(writeFixtures(t), nil)
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}

		if _, ok := s.Scene("dormitory"); !ok {
			t.Error("expected dormitory scene")
		}
		if _, ok := s.Talk("hallway_chat"); !ok {
			t.Error("expected hallway_chat talk")
		}
		if sp, ok := s.Spell("Incendio"); !ok || sp.Effect.Damage != 10 {
			t.Errorf("expected Incendio with damage 10, got %+v", sp)
		}
		if en, ok := s.Enemy("Troll"); !ok || en.Health != 30 {
			t.Errorf("expected Troll with health 30, got %+v", en)
		}
		if _, ok := s.ItemEffect("chocolate_frog"); !ok {
			t.Error("expected chocolate_frog item effect")
		}
		if len(s.Achievements()) != 2 {
			t.Errorf("expected 2 achievements, got %d", len(s.Achievements()))
		}
		if s.InitState().Stats.Time != "08:00 AM" {
			t.Errorf("unexpected init time %q", s.InitState().Stats.Time)
		}

		ids := s.SceneIDs()
		if len(ids) != 2 || ids[0] != "corridor" {
			t.Errorf("expected sorted scene ids, got %v", ids)
		}
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		dir := writeFixtures(t)
		if err := os.Remove(filepath.Join(dir, "spells.json")); err != nil {
			t.Fatal(err)
		}
		if _, err := NewStore(dir, nil); err == nil {
			t.Error("expected load error for missing spells.json")
		}
	})

	t.Run("malformed json is fatal", func(t *testing.T) {
		dir := writeFixtures(t)
		writeFile(t, filepath.Join(dir, "enemies.json"), `{not json`)
		if _, err := NewStore(dir, nil); err == nil {
			t.Error("expected load error for malformed enemies.json")
		}
	})

	t.Run("failed reload keeps previous catalog", func(t *testing.T) {
		dir := writeFixtures(t)
		s, err := NewStore(dir, nil)
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}

		writeFile(t, filepath.Join(dir, "spells.json"), `{broken`)
		if err := s.Reload(); err == nil {
			t.Fatal("expected reload error")
		}
		if _, ok := s.Spell("Incendio"); !ok {
			t.Error("expected previous catalog to stay active after failed reload")
		}
	})

	t.Run("reload picks up new content", func(t *testing.T) {
		dir := writeFixtures(t)
		s, err := NewStore(dir, nil)
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}

		writeFile(t, filepath.Join(dir, "scenes", "library.json"), `{"choices": []}`)
		if err := s.Reload(); err != nil {
			t.Fatalf("unexpected reload error: %v", err)
		}
		if _, ok := s.Scene("library"); !ok {
			t.Error("expected new scene after reload")
		}
	})
}

func TestEnemyClone(t *testing.T) {
	base, _ := NewStore(writeFixtures(t), nil)
	template, _ := base.Enemy("Troll")

	clone := template.Clone()
	clone.Health = 1
	clone.Skills[0].Effect["health"] = -99

	if template.Health != 30 {
		t.Errorf("clone health mutation leaked into template: %d", template.Health)
	}
	if template.Skills[0].Effect["health"] != -15 {
		t.Errorf("clone skill mutation leaked into template: %d", template.Skills[0].Effect["health"])
	}
}
