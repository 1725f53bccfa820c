package state

import "testing"

func TestStats_Apply(t *testing.T) {
	t.Run("clamps bounded stats to [0,100]", func(t *testing.T) {
		s := Stats{Health: 95, San: 5, Fatigue: 50}
		s.Apply(map[string]int{"health": 20, "san": -10, "fatigue": 1000})

		if s.Health != 100 {
			t.Errorf("expected health 100, got %d", s.Health)
		}
		if s.San != 0 {
			t.Errorf("expected san 0, got %d", s.San)
		}
		if s.Fatigue != 100 {
			t.Errorf("expected fatigue 100, got %d", s.Fatigue)
		}
	})

	t.Run("currency is unclamped", func(t *testing.T) {
		s := Stats{Galleons: 10}
		s.Apply(map[string]int{"galleons": 500, "knut": -20})

		if s.Galleons != 510 {
			t.Errorf("expected 510 galleons, got %d", s.Galleons)
		}
		if s.Knut != -20 {
			t.Errorf("expected -20 knut, got %d", s.Knut)
		}
	})

	t.Run("unknown stat keys are ignored", func(t *testing.T) {
		s := Stats{Health: 50}
		s.Apply(map[string]int{"charisma": 10})

		if s.Health != 50 {
			t.Errorf("health changed unexpectedly: %d", s.Health)
		}
	})
}

func TestGameState_Achievements(t *testing.T) {
	gs := &GameState{}

	if !gs.UnlockAchievement("first_steps") {
		t.Error("expected first unlock to succeed")
	}
	if gs.UnlockAchievement("first_steps") {
		t.Error("expected repeat unlock to be a no-op")
	}
	if len(gs.Achievements) != 1 {
		t.Errorf("expected 1 achievement, got %d", len(gs.Achievements))
	}
	if !gs.HasAchievement("first_steps") {
		t.Error("expected achievement to be recorded")
	}
}

func TestGameState_MarkVisited(t *testing.T) {
	gs := &GameState{
		Visited:        []string{"dormitory"},
		UnlockedScenes: []string{"dormitory"},
	}

	gs.MarkVisited("library")
	gs.MarkVisited("library")

	if len(gs.Visited) != 2 {
		t.Errorf("expected 2 visited scenes, got %d", len(gs.Visited))
	}
	if !gs.IsUnlocked("library") {
		t.Error("expected visited scene to be unlocked")
	}
}

func TestGameState_TalkCursor(t *testing.T) {
	gs := &GameState{}
	if gs.InTalk() {
		t.Error("expected no dialogue mode on empty state")
	}
	gs.CurrentTalk = "hallway_chat"
	gs.CurrentTalkNode = "1-1"
	if !gs.InTalk() {
		t.Error("expected dialogue mode with cursor set")
	}
}
