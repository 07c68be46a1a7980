package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Piano    key.Binding
	Octave   key.Binding
	Select   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Piano, k.Select, k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Piano, k.Octave, k.Reset},
		{k.Select, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "value up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "value down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "value up a lot")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "value down a lot")),
	Piano:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a-k", "play")),
	Octave:   key.NewBinding(key.WithKeys("z", "x"), key.WithHelp("z/x", "octave")),
	Select:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1-6", "select param")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	nameStyle     = lipgloss.NewStyle().Width(6)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212"))
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func noteName(n uint8) string {
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n)/12-1)
}

// UIModel is the bubbletea model for the interactive front end.
type UIModel struct {
	ctl  *Controls
	host *Host
	keys keyMap
	help help.Model
}

func NewUI(h *Host, ctl *Controls) UIModel {
	return UIModel{
		ctl:  ctl,
		host: h,
		keys: keys,
		help: help.New(),
	}
}

func (m UIModel) Init() tea.Cmd {
	return nil
}

func (m UIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.ctl.Step(1)
		case key.Matches(msg, m.keys.Down):
			m.ctl.Step(-1)
		case key.Matches(msg, m.keys.PageUp):
			m.ctl.Step(coarseStep(m.ctl.Selected()))
		case key.Matches(msg, m.keys.PageDown):
			m.ctl.Step(-coarseStep(m.ctl.Selected()))
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			m.ctl.Rune(msg.Runes[0])
		}
	}
	return m, nil
}

func (m UIModel) View() string {
	u := m.host.Unit()

	var rows []string
	for id := ParamID(0); id < NumParams; id++ {
		row := fmt.Sprintf("%d %s %s", id+1, nameStyle.Render(paramTable[id].Name), ParamDisplay(u, id))
		if id == m.ctl.Selected() {
			row = selectedStyle.Render(row)
		}
		rows = append(rows, row)
	}

	p := m.host.Pitch()
	status := fmt.Sprintf("note %s  octave %d", noteName(p.Note()), m.ctl.Octave())

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(UnitHeader.Name),
		boxStyle.Render(strings.Join(rows, "\n")),
		status,
		"",
		m.help.View(m.keys),
	)
}
