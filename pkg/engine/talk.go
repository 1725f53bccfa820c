package engine

import (
	"fmt"

	"github.com/jwebster45206/spellbound/pkg/state"
)

// terminalFallbackScene is where a dialogue exits when its end node names
// no follow-up scene.
const terminalFallbackScene = "corridor"

// ApplyTalkChoice resolves one dialogue-node choice: applies its stat
// effect and follows its next pointer. A terminal next pointer exits
// dialogue mode and transitions to the terminal's follow-up scene.
//
// Outside dialogue mode, or with an out-of-range index, this is a silent
// no-op.
func (e *Engine) ApplyTalkChoice(gs *state.GameState, choiceIndex int) (*Result, error) {
	if !gs.InTalk() {
		return &Result{}, nil
	}
	talk, ok := e.store.Talk(gs.CurrentTalk)
	if !ok {
		return nil, fmt.Errorf("talk %q not found", gs.CurrentTalk)
	}
	nodes, ok := talk.Dialogue[gs.CurrentTalkNode]
	if !ok {
		return nil, fmt.Errorf("talk %q has no node %q", gs.CurrentTalk, gs.CurrentTalkNode)
	}

	var choices []struct {
		next   string
		effect map[string]int
	}
	for _, n := range nodes {
		if n.Type != "choice" {
			continue
		}
		for _, c := range n.Choices {
			choices = append(choices, struct {
				next   string
				effect map[string]int
			}{c.Next, c.Effect})
		}
		break
	}
	if choiceIndex < 0 || choiceIndex >= len(choices) {
		return &Result{}, nil
	}

	gs.PreviousState = gs.Snapshot()
	chosen := choices[choiceIndex]
	gs.Stats.Apply(chosen.effect)

	if terminal, nextScene := e.talkTerminal(gs.CurrentTalk, chosen.next); terminal {
		gs.CurrentTalk = ""
		gs.CurrentTalkNode = ""
		gs.CurrentScene = nextScene
		return &Result{}, nil
	}

	gs.CurrentTalkNode = chosen.next
	return &Result{}, nil
}

// talkTerminal reports whether the next pointer resolves to a terminal
// marker, and if so which scene the dialogue exits to.
func (e *Engine) talkTerminal(talkID, next string) (bool, string) {
	talk, ok := e.store.Talk(talkID)
	if !ok {
		return false, ""
	}
	nodes := talk.Dialogue[next]
	end := next == "end"
	if len(nodes) > 0 && nodes[0].Type == "end" {
		end = true
	}
	if !end {
		return false, ""
	}
	scene := terminalFallbackScene
	if len(nodes) > 0 && nodes[0].NextScene != "" {
		scene = nodes[0].NextScene
	}
	return true, scene
}
