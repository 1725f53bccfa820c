// Package content holds the read-only game definitions: scenes, dialogues,
// spells, enemies, item effects and achievements. Definitions are loaded once
// at startup and treated as immutable for the life of the process.
package content

// Achievement condition kinds. Scene-scoped achievements use ConditionVisit;
// global achievements use the collected/learned kinds.
const (
	ConditionVisit         = "visit"
	ConditionItemCollected = "item_collected"
	ConditionSpellLearned  = "spell_learned"
)

// Spell effect types.
const (
	SpellDamage     = 1
	SpellDefense    = 2
	SpellDamageOver = 3
	SpellBuff       = 4
)

// Scene is a narrative location node offering a list of choices.
type Scene struct {
	Story        string             `json:"story,omitempty"`
	Choices      []Choice           `json:"choices"`
	Achievements []SceneAchievement `json:"achievements,omitempty"`
}

// Choice is one selectable option within a scene.
type Choice struct {
	Text         string         `json:"text,omitempty"`
	Type         string         `json:"type,omitempty"` // "talk" enters dialogue mode
	Next         string         `json:"next,omitempty"`
	Time         int            `json:"time,omitempty"` // minute cost on the in-game clock
	Effect       map[string]int `json:"effect,omitempty"`
	RandomEvents []RandomEvent  `json:"random_events,omitempty"`
	Items        []ItemGrant    `json:"items,omitempty"`
	TalkFiles    []string       `json:"talk_files,omitempty"`
}

// RandomEvent is a probabilistic sub-event attached to a scene choice.
// Events are evaluated in order; the first successful trial wins.
type RandomEvent struct {
	Chance float64        `json:"chance"`
	Event  string         `json:"event,omitempty"`
	Next   string         `json:"next,omitempty"` // containing "battle" starts an encounter
	Enemy  string         `json:"enemy,omitempty"`
	Effect map[string]int `json:"effect,omitempty"`
	Item   string         `json:"item,omitempty"`
}

// ItemGrant is an unconditional add/remove entry on a choice.
// A nil Chance means the action always applies.
type ItemGrant struct {
	Chance    *float64 `json:"chance,omitempty"`
	Action    string   `json:"action"` // "add" or "remove"
	Item      string   `json:"item"`
	Quantity  int      `json:"quantity,omitempty"` // default 1
	Container string   `json:"container,omitempty"`
}

// ChanceOrDefault returns the grant's probability, defaulting to certain.
func (g ItemGrant) ChanceOrDefault() float64 {
	if g.Chance == nil {
		return 1.0
	}
	return *g.Chance
}

// QuantityOrDefault returns the grant's quantity, defaulting to one.
func (g ItemGrant) QuantityOrDefault() int {
	if g.Quantity <= 0 {
		return 1
	}
	return g.Quantity
}

// SceneAchievement is an achievement declared on a scene, unlocked on first
// visit when its condition is ConditionVisit.
type SceneAchievement struct {
	ID        string `json:"id"`
	Condition string `json:"condition"`
	Name      string `json:"name,omitempty"`
}

// Talk is a branching conversation graph keyed by node id.
// The entry node id is fixed (see EntryNode).
type Talk struct {
	Title    string                `json:"title,omitempty"`
	Dialogue map[string][]TalkNode `json:"dialogue"`
}

// EntryNode is the node id every dialogue starts at.
const EntryNode = "1-1"

// TalkNode is one element of a dialogue node's content list.
type TalkNode struct {
	Type      string       `json:"type"` // "text", "choice" or "end"
	Speaker   string       `json:"speaker,omitempty"`
	Text      string       `json:"text,omitempty"`
	Choices   []TalkChoice `json:"choices,omitempty"`
	NextScene string       `json:"next_scene,omitempty"` // on "end" nodes
}

// TalkChoice is one selectable option on a dialogue choice node.
type TalkChoice struct {
	Text   string         `json:"text"`
	Next   string         `json:"next"`
	Effect map[string]int `json:"effect,omitempty"`
}

// Spell is a castable skill definition.
type Spell struct {
	Name        string      `json:"name"`
	Type        int         `json:"type"` // see Spell* constants
	Effect      SpellEffect `json:"effect"`
	Description string      `json:"description,omitempty"`
}

// SpellEffect carries the type-specific parameters of a spell.
// Zero values fall back to per-type defaults at resolution time.
type SpellEffect struct {
	Damage      int     `json:"damage,omitempty"`
	Duration    int     `json:"duration,omitempty"`
	AttackBoost float64 `json:"attack_boost,omitempty"`
}

// Enemy is a combat encounter template. Battle state holds a deep copy with
// independently mutable health.
type Enemy struct {
	Name    string       `json:"name"`
	Health  int          `json:"health"`
	Skills  []EnemySkill `json:"skills"`
	Rewards []Reward     `json:"rewards,omitempty"`
}

// EnemySkill is one attack an enemy may use, expressed as stat deltas
// applied to the player.
type EnemySkill struct {
	Name   string         `json:"name"`
	Effect map[string]int `json:"effect"`
}

// Reward is a victory drop rolled independently against its own chance.
type Reward struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity,omitempty"`
	Chance   float64 `json:"chance"`
}

// Clone returns an independent copy of the enemy for use as battle state.
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	c := *e
	c.Skills = make([]EnemySkill, len(e.Skills))
	for i, s := range e.Skills {
		c.Skills[i] = s
		if s.Effect != nil {
			c.Skills[i].Effect = make(map[string]int, len(s.Effect))
			for k, v := range s.Effect {
				c.Skills[i].Effect[k] = v
			}
		}
	}
	c.Rewards = append([]Reward(nil), e.Rewards...)
	return &c
}

// ItemEffect describes what using an item does. Only "consumable" items
// apply their effect and are consumed.
type ItemEffect struct {
	Type    string         `json:"type"`
	Effect  map[string]int `json:"effect,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Achievement is a global achievement definition.
type Achievement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Condition string `json:"condition"`
}

// InitState is the new-game template loaded from game_state_init.json.
// Currency is randomized at session creation and not part of the template.
type InitState struct {
	Stats      InitStats                 `json:"stats"`
	Inventory  map[string]int            `json:"inventory,omitempty"`
	Containers map[string]map[string]int `json:"containers,omitempty"`
	Equipment  map[string]string         `json:"equipment,omitempty"`
}

// InitStats is the starting stat block.
type InitStats struct {
	Health  int    `json:"health"`
	San     int    `json:"san"`
	Fatigue int    `json:"fatigue"`
	Time    string `json:"time"` // 12-hour clock, e.g. "08:00 AM"
}
