package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const metaPanelWidth = 32

type uiMode int

const (
	modeScene uiMode = iota
	modeTalk
	modeBattle
	modeItems
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config   *ConsoleConfig
	client   *http.Client
	resp     *apiResponse
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	err      error
	loading  bool

	cursor  int
	history []string

	// Quit confirmation state
	showQuitModal bool

	// Item mode toggled with "i"; hides scene choices
	itemsOpen bool
}

type actionMsg struct {
	resp *apiResponse
	err  error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	metaPanelStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

var titleCaser = cases.Title(language.English)

// displayName renders an item or scene id for humans: "phoenix_feather"
// becomes "Phoenix Feather".
func displayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, resp *apiResponse) ConsoleUI {
	return ConsoleUI{
		config: cfg,
		client: client,
		resp:   resp,
	}
}

func (ui ConsoleUI) Init() tea.Cmd {
	return nil
}

func (ui ConsoleUI) mode() uiMode {
	switch {
	case ui.itemsOpen:
		return modeItems
	case ui.resp.View != nil && ui.resp.View.Battle != nil:
		return modeBattle
	case ui.resp.GameState.InTalk():
		return modeTalk
	default:
		return modeScene
	}
}

// options returns the selectable entries for the current mode.
func (ui ConsoleUI) options() []string {
	view := ui.resp.View
	switch ui.mode() {
	case modeItems:
		items := make([]string, 0, len(ui.resp.GameState.Inventory))
		for _, item := range sortedKeys(ui.resp.GameState.Inventory) {
			items = append(items, item)
		}
		return items
	case modeBattle:
		opts := append([]string{}, ui.resp.GameState.KnownSpells...)
		return append(opts, "Dodge")
	case modeTalk:
		return view.DialogueChoices
	default:
		return view.Choices
	}
}

func (ui ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		vpHeight := msg.Height - len(ui.options()) - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width-metaPanelWidth-2, vpHeight)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width - metaPanelWidth - 2
			ui.viewport.Height = vpHeight
		}
		ui.viewport.SetContent(ui.narration())
		return ui, nil

	case actionMsg:
		ui.loading = false
		if msg.err != nil {
			ui.err = msg.err
			return ui, nil
		}
		ui.err = nil
		ui.resp = msg.resp
		if msg.resp.Message != "" {
			ui.history = append(ui.history, msg.resp.Message)
		}
		if ui.cursor >= len(ui.options()) {
			ui.cursor = 0
		}
		if ui.ready {
			ui.viewport.SetContent(ui.narration())
			ui.viewport.GotoBottom()
		}
		return ui, nil

	case tea.KeyMsg:
		return ui.handleKey(msg)
	}

	return ui, nil
}

func (ui ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if ui.showQuitModal {
		switch msg.String() {
		case "y", "Y", "enter":
			return ui, tea.Quit
		default:
			ui.showQuitModal = false
			return ui, nil
		}
	}

	if ui.loading {
		return ui, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		ui.showQuitModal = true
		return ui, nil

	case "up", "k":
		if ui.cursor > 0 {
			ui.cursor--
		}
		return ui, nil

	case "down", "j":
		if ui.cursor < len(ui.options())-1 {
			ui.cursor++
		}
		return ui, nil

	case "i":
		ui.itemsOpen = !ui.itemsOpen
		ui.cursor = 0
		return ui, nil

	case "esc":
		ui.itemsOpen = false
		ui.cursor = 0
		return ui, nil

	case "z":
		if ui.mode() == modeItems {
			return ui.dispatch("item-undo", map[string]any{})
		}
		return ui.dispatch("undo", map[string]any{})

	case "x":
		if ui.mode() == modeItems {
			if item, ok := ui.selectedOption(); ok {
				return ui.dispatch("item", map[string]any{"item_action": "discard", "item": item})
			}
		}
		return ui, nil

	case "enter":
		return ui.submit()
	}

	var cmd tea.Cmd
	ui.viewport, cmd = ui.viewport.Update(msg)
	return ui, cmd
}

func (ui ConsoleUI) selectedOption() (string, bool) {
	opts := ui.options()
	if ui.cursor < 0 || ui.cursor >= len(opts) {
		return "", false
	}
	return opts[ui.cursor], true
}

func (ui ConsoleUI) submit() (tea.Model, tea.Cmd) {
	opt, ok := ui.selectedOption()
	if !ok {
		return ui, nil
	}

	switch ui.mode() {
	case modeItems:
		return ui.dispatch("item", map[string]any{"item_action": "use", "item": opt})
	case modeBattle:
		if opt == "Dodge" {
			return ui.dispatch("dodge", map[string]any{})
		}
		return ui.dispatch("skills", map[string]any{"skills": []string{opt}})
	case modeTalk:
		return ui.dispatch("talk", map[string]any{"choice": ui.cursor})
	default:
		return ui.dispatch("choice", map[string]any{"choice": ui.cursor})
	}
}

func (ui ConsoleUI) dispatch(action string, payload map[string]any) (tea.Model, tea.Cmd) {
	ui.loading = true
	id := ui.resp.GameState.ID.String()
	client, baseURL := ui.client, ui.config.APIBaseURL
	return ui, func() tea.Msg {
		resp, err := postAction(client, baseURL, id, action, payload)
		return actionMsg{resp: resp, err: err}
	}
}

// narration builds the main panel text for the current view.
func (ui ConsoleUI) narration() string {
	view := ui.resp.View
	var b strings.Builder

	switch {
	case view != nil && view.Battle != nil:
		b.WriteString(titleStyle.Render(fmt.Sprintf("Battle: %s (%d HP)", view.Battle.Enemy, view.Battle.EnemyHealth)))
		b.WriteString("\n\n")
		for _, line := range view.Battle.Log {
			b.WriteString(line + "\n")
		}
	case view != nil && len(view.Dialogue) > 0:
		for _, line := range view.Dialogue {
			b.WriteString(storyStyle.Render(line) + "\n")
		}
	case view != nil:
		b.WriteString(titleStyle.Render(displayName(view.Scene)) + "\n\n")
		if view.Story != "" {
			b.WriteString(storyStyle.Render(view.Story) + "\n")
		}
	}

	if len(ui.history) > 0 {
		b.WriteString("\n")
		start := 0
		if len(ui.history) > 8 {
			start = len(ui.history) - 8
		}
		for _, ev := range ui.history[start:] {
			b.WriteString(eventStyle.Render("• "+ev) + "\n")
		}
	}

	width := ui.viewport.Width
	if width <= 0 {
		width = 80
	}
	return wordwrap.String(b.String(), width)
}

func (ui ConsoleUI) metaPanel() string {
	gs := ui.resp.GameState
	var b strings.Builder

	b.WriteString(titleStyle.Render(gs.Character.Name) + "\n")
	b.WriteString(fmt.Sprintf("Health  %d\n", gs.Stats.Health))
	b.WriteString(fmt.Sprintf("San     %d\n", gs.Stats.San))
	b.WriteString(fmt.Sprintf("Fatigue %d\n", gs.Stats.Fatigue))
	b.WriteString(fmt.Sprintf("Time    %s\n", gs.Stats.Time))
	b.WriteString(metaStyle.Render(fmt.Sprintf("%dG %dS %dK", gs.Stats.Galleons, gs.Stats.Sickle, gs.Stats.Knut)) + "\n")

	b.WriteString("\n" + titleStyle.Render("Inventory") + "\n")
	if len(gs.Inventory) == 0 {
		b.WriteString(metaStyle.Render("(empty)") + "\n")
	}
	for _, item := range sortedKeys(gs.Inventory) {
		b.WriteString(fmt.Sprintf("%s x%d\n", displayName(item), gs.Inventory[item]))
	}

	b.WriteString("\n" + titleStyle.Render("Spells") + "\n")
	if len(gs.KnownSpells) == 0 {
		b.WriteString(metaStyle.Render("(none)") + "\n")
	}
	for _, sp := range gs.KnownSpells {
		b.WriteString(sp + "\n")
	}

	return metaPanelStyle.Render(b.String())
}

func (ui ConsoleUI) optionsPanel() string {
	opts := ui.options()
	var b strings.Builder

	if ui.mode() == modeItems {
		b.WriteString(titleStyle.Render("Items") + "  " + helpStyle.Render("enter use · x discard · z undo · esc close") + "\n")
	}

	for i, opt := range opts {
		label := opt
		if ui.mode() == modeItems {
			label = displayName(opt)
		}
		line := fmt.Sprintf("  %d. %s", i+1, label)
		if i == ui.cursor {
			b.WriteString(selectedChoiceStyle.Render("> "+line[2:]) + "\n")
		} else {
			b.WriteString(choiceStyle.Render(line) + "\n")
		}
	}

	if len(opts) == 0 {
		b.WriteString(metaStyle.Render("(no options here)") + "\n")
	}
	return b.String()
}

func (ui ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	if ui.showQuitModal {
		return lipgloss.Place(ui.width, ui.height, lipgloss.Center, lipgloss.Center,
			modalStyle.Render("Quit the game?\n\n[y] yes   [any key] no"))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, ui.viewport.View(), ui.metaPanel())

	status := helpStyle.Render("↑/↓ select · enter confirm · i items · z undo · q quit")
	if ui.loading {
		status = eventStyle.Render("...")
	}
	if ui.err != nil {
		status = errorStyle.Render("Error: " + ui.err.Error())
	}

	return main + "\n" + ui.optionsPanel() + "\n" + status
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
