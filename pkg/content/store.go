package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
)

// File layout inside the data directory.
const (
	scenesDir        = "scenes"
	talksDir         = "talks"
	spellsFile       = "spells.json"
	enemiesFile      = "enemies.json"
	itemEffectsFile  = "item_effects.json"
	achievementsFile = "achievements.json"
	initStateFile    = "game_state_init.json"
)

// Store is an immutable-after-load registry of game definitions.
// Reload builds a complete new catalog and swaps it in atomically, so
// in-flight readers always see a consistent snapshot.
type Store struct {
	dataDir string
	logger  *slog.Logger
	catalog atomic.Pointer[catalog]
}

type catalog struct {
	scenes       map[string]*Scene
	talks        map[string]*Talk
	spells       map[string]*Spell
	enemies      map[string]*Enemy
	itemEffects  map[string]*ItemEffect
	achievements []Achievement
	initState    *InitState
}

// NewStore loads all definitions from dataDir. Any missing or malformed
// file is a fatal load error.
func NewStore(dataDir string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		dataDir: dataDir,
		logger:  logger,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every definition file and atomically replaces the catalog.
// On error the previous catalog remains active. Callers must serialize
// Reload against in-flight state transitions.
func (s *Store) Reload() error {
	c, err := load(s.dataDir)
	if err != nil {
		return err
	}
	s.catalog.Store(c)
	if s.logger != nil {
		s.logger.Info("Content loaded",
			"scenes", len(c.scenes),
			"talks", len(c.talks),
			"spells", len(c.spells),
			"enemies", len(c.enemies),
			"achievements", len(c.achievements))
	}
	return nil
}

func load(dataDir string) (*catalog, error) {
	c := &catalog{
		scenes:      make(map[string]*Scene),
		talks:       make(map[string]*Talk),
		spells:      make(map[string]*Spell),
		enemies:     make(map[string]*Enemy),
		itemEffects: make(map[string]*ItemEffect),
	}

	if err := loadDir(filepath.Join(dataDir, scenesDir), c.scenes); err != nil {
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}
	if err := loadDir(filepath.Join(dataDir, talksDir), c.talks); err != nil {
		return nil, fmt.Errorf("failed to load talks: %w", err)
	}

	var spellList struct {
		Spells []*Spell `json:"spells"`
	}
	if err := loadFile(filepath.Join(dataDir, spellsFile), &spellList); err != nil {
		return nil, err
	}
	for _, sp := range spellList.Spells {
		c.spells[sp.Name] = sp
	}

	var enemyList struct {
		Enemies []*Enemy `json:"enemies"`
	}
	if err := loadFile(filepath.Join(dataDir, enemiesFile), &enemyList); err != nil {
		return nil, err
	}
	for _, en := range enemyList.Enemies {
		c.enemies[en.Name] = en
	}

	if err := loadFile(filepath.Join(dataDir, itemEffectsFile), &c.itemEffects); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dataDir, achievementsFile), &c.achievements); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dataDir, initStateFile), &c.initState); err != nil {
		return nil, err
	}
	return c, nil
}

// loadDir reads every *.json file in dir into m, keyed by filename without
// the extension.
func loadDir[T any](dir string, m map[string]*T) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		var v T
		if err := loadFile(filepath.Join(dir, entry.Name()), &v); err != nil {
			return err
		}
		m[id] = &v
	}
	return nil
}

func loadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Scene returns a scene definition by id.
func (s *Store) Scene(id string) (*Scene, bool) {
	sc, ok := s.catalog.Load().scenes[id]
	return sc, ok
}

// SceneIDs returns all scene ids in sorted order.
func (s *Store) SceneIDs() []string {
	scenes := s.catalog.Load().scenes
	ids := make([]string, 0, len(scenes))
	for id := range scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Talk returns a dialogue definition by id.
func (s *Store) Talk(id string) (*Talk, bool) {
	t, ok := s.catalog.Load().talks[id]
	return t, ok
}

// Spell returns a spell definition by name.
func (s *Store) Spell(name string) (*Spell, bool) {
	sp, ok := s.catalog.Load().spells[name]
	return sp, ok
}

// Spells returns all spell definitions sorted by name.
func (s *Store) Spells() []*Spell {
	spells := s.catalog.Load().spells
	out := make([]*Spell, 0, len(spells))
	for _, sp := range spells {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Enemy returns an enemy template by name.
func (s *Store) Enemy(name string) (*Enemy, bool) {
	en, ok := s.catalog.Load().enemies[name]
	return en, ok
}

// ItemEffect returns the declared effect of an item, if any.
func (s *Store) ItemEffect(item string) (*ItemEffect, bool) {
	ie, ok := s.catalog.Load().itemEffects[item]
	return ie, ok
}

// Achievements returns all global achievement definitions in definition order.
func (s *Store) Achievements() []Achievement {
	return s.catalog.Load().achievements
}

// Achievement returns a global achievement definition by id.
func (s *Store) Achievement(id string) (Achievement, bool) {
	for _, a := range s.catalog.Load().achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// InitState returns the new-game template.
func (s *Store) InitState() *InitState {
	return s.catalog.Load().initState
}
