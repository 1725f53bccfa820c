package handlers

import (
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// GameView is the render-ready projection of a session, resolved against
// the content catalog so clients never need the raw scene files.
type GameView struct {
	Scene   string   `json:"scene"`
	Story   string   `json:"story,omitempty"`
	Choices []string `json:"choices,omitempty"`

	// Dialogue mode
	Dialogue        []string `json:"dialogue,omitempty"`
	DialogueChoices []string `json:"dialogue_choices,omitempty"`

	Battle *BattleView `json:"battle,omitempty"`
}

type BattleView struct {
	Enemy       string   `json:"enemy"`
	EnemyHealth int      `json:"enemy_health"`
	Log         []string `json:"log"`
}

// NewGameView resolves the player's current position into display content.
// Battle takes precedence over dialogue, dialogue over scene choices.
func NewGameView(store *content.Store, gs *state.GameState) *GameView {
	view := &GameView{Scene: gs.CurrentScene}

	if gs.InBattle() {
		view.Battle = &BattleView{
			Enemy:       gs.Battle.Enemy.Name,
			EnemyHealth: gs.Battle.Enemy.Health,
			Log:         gs.Battle.Log,
		}
		return view
	}

	if gs.InTalk() {
		if talk, ok := store.Talk(gs.CurrentTalk); ok {
			if nodes, ok := talk.Dialogue[gs.CurrentTalkNode]; ok {
				for _, node := range nodes {
					switch node.Type {
					case "text":
						line := node.Text
						if node.Speaker != "" {
							line = node.Speaker + ": " + line
						}
						view.Dialogue = append(view.Dialogue, line)
					case "choice":
						for _, c := range node.Choices {
							view.DialogueChoices = append(view.DialogueChoices, c.Text)
						}
					}
				}
			}
		}
		return view
	}

	if scene, ok := store.Scene(gs.CurrentScene); ok {
		view.Story = scene.Story
		for _, c := range scene.Choices {
			text := c.Text
			if text == "" && c.Type == "talk" {
				text = "Strike up a conversation"
			}
			view.Choices = append(view.Choices, text)
		}
	}
	return view
}
