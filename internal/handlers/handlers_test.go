package handlers

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/spellbound/internal/storage"
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/engine"
)

func writeFixture(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testContent(t *testing.T) *content.Store {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, filepath.Join(dir, "scenes", "dormitory.json"), `{
		"story": "Your four-poster bed.",
		"choices": [
			{"text": "Head to the corridor", "next": "corridor", "time": 30},
			{"type": "talk", "talk_files": ["hallway_chat"]}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "scenes", "corridor.json"), `{"choices": []}`)
	writeFixture(t, filepath.Join(dir, "scenes", "forbidden_forest.json"), `{"choices": []}`)
	writeFixture(t, filepath.Join(dir, "talks", "hallway_chat.json"), `{
		"dialogue": {
			"1-1": [
				{"type": "text", "speaker": "Prefect", "text": "Morning!"},
				{"type": "choice", "choices": [{"text": "Wave back", "next": "end"}]}
			]
		}
	}`)
	writeFixture(t, filepath.Join(dir, "spells.json"), `{
		"spells": [
			{"name": "Incendio", "type": 1, "effect": {"damage": 10}},
			{"name": "Protego", "type": 2, "effect": {}}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "enemies.json"), `{
		"enemies": [
			{"name": "Troll", "health": 15, "skills": [{"name": "Club", "effect": {"health": -10}}]}
		]
	}`)
	writeFixture(t, filepath.Join(dir, "item_effects.json"), `{
		"chocolate_frog": {"type": "consumable", "effect": {"health": 10}, "message": "Delicious."}
	}`)
	writeFixture(t, filepath.Join(dir, "achievements.json"), `[
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

type testEnv struct {
	handler *GameStateHandler
	store   *content.Store
	storage *storage.MockStorage
	engine  *engine.Engine
}

func newTestEnv(t *testing.T, debug bool) *testEnv {
	t.Helper()
	store := testContent(t)
	mock := storage.NewMockStorage()
	log := testLogger()
	eng := engine.New(store, engine.NewSeededRand(1), log)
	return &testEnv{
		handler: NewGameStateHandler(eng, store, mock, log, debug),
		store:   store,
		storage: mock,
		engine:  eng,
	}
}
