package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jwebster45206/spellbound/pkg/content"
)

// validate loads a content directory and cross-checks references between
// scenes, talks, spells, enemies and achievements. Exit code 1 on any
// problem, so it can gate content changes in CI.
func main() {
	dataDir := flag.String("data", "./data", "content directory to validate")
	flag.Parse()

	store, err := content.NewStore(*dataDir, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	problems := checkReferences(store)
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", p)
		}
		os.Exit(1)
	}

	fmt.Printf("OK: %d scenes validated\n", len(store.SceneIDs()))
}

func checkReferences(store *content.Store) []string {
	var problems []string

	sceneExists := func(id string) bool {
		_, ok := store.Scene(id)
		return ok
	}

	for _, id := range store.SceneIDs() {
		scene, _ := store.Scene(id)

		for i, choice := range scene.Choices {
			where := fmt.Sprintf("scene %q choice %d", id, i)

			if choice.Next != "" && !sceneExists(choice.Next) {
				problems = append(problems, fmt.Sprintf("%s: next scene %q not found", where, choice.Next))
			}
			for _, talkFile := range choice.TalkFiles {
				if _, ok := store.Talk(talkFile); !ok {
					problems = append(problems, fmt.Sprintf("%s: talk file %q not found", where, talkFile))
				}
			}
			for _, ev := range choice.RandomEvents {
				if strings.Contains(ev.Next, "battle") {
					if ev.Enemy == "" {
						problems = append(problems, fmt.Sprintf("%s: battle event without enemy", where))
					} else if _, ok := store.Enemy(ev.Enemy); !ok {
						problems = append(problems, fmt.Sprintf("%s: enemy %q not found", where, ev.Enemy))
					}
					continue
				}
				if ev.Next != "" && !sceneExists(ev.Next) {
					problems = append(problems, fmt.Sprintf("%s: event scene %q not found", where, ev.Next))
				}
			}
		}

		for _, a := range scene.Achievements {
			if _, ok := store.Achievement(a.ID); !ok {
				problems = append(problems, fmt.Sprintf("scene %q: achievement %q not defined", id, a.ID))
			}
		}
	}

	for _, a := range store.Achievements() {
		switch a.Condition {
		case content.ConditionVisit, content.ConditionItemCollected, content.ConditionSpellLearned:
		default:
			problems = append(problems, fmt.Sprintf("achievement %q: unknown condition %q", a.ID, a.Condition))
		}
	}

	init := store.InitState()
	if init.Stats.Time != "" {
		if _, err := time.Parse("03:04 PM", init.Stats.Time); err != nil {
			problems = append(problems, fmt.Sprintf("init state: invalid clock %q", init.Stats.Time))
		}
	}

	return problems
}
