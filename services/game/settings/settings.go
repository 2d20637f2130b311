package settings

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zarux/othello/pkg/othello"
)

var (
	listSelectorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).Render
	defaultStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8f8f8fff", Dark: "#8f8f8fff"}).Render
)

var timeChoiceRange = []int{1, 60}

type Settings struct {
	Team      othello.Team
	ThinkTime time.Duration
}

type choiceLevel int

const (
	choiceLevelTeam choiceLevel = iota
	choiceLevelThink
)

type model struct {
	cursor      int
	choiceLevel choiceLevel
	header      string

	settings     Settings
	defaultThink time.Duration

	clear     bool
	Cancelled bool
}

func (m model) GetSettings() Settings {
	return m.settings
}

// InitialModel starts the think time cursor on defaultThink.
func InitialModel(header string, defaultThink time.Duration) *model {
	return &model{
		header:       header,
		defaultThink: defaultThink,
		settings: Settings{
			ThinkTime: defaultThink,
		},
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) choices() []int {
	var choices []int
	switch m.choiceLevel {
	case choiceLevelTeam:
		choices = []int{0, 1}
	case choiceLevelThink:
		for i := timeChoiceRange[0]; i <= timeChoiceRange[1]; i++ {
			choices = append(choices, i)
		}
	}

	return choices
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	choices := m.choices()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.clear = true
			m.Cancelled = true
			return m, tea.Quit

		case "w", "W":
			if m.choiceLevel == choiceLevelTeam {
				m.cursor = 0
				return m.choose(choices)
			}

		case "b", "B":
			if m.choiceLevel == choiceLevelTeam {
				m.cursor = 1
				return m.choose(choices)
			}

		case "enter":
			return m.choose(choices)

		case "down", "j":
			m.cursor++
			if m.cursor >= len(choices) {
				m.cursor = 0
			}

		case "up", "k":
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(choices) - 1
			}
		}
	}

	return m, nil
}

func (m *model) choose(choices []int) (tea.Model, tea.Cmd) {
	switch m.choiceLevel {
	case choiceLevelTeam:
		m.settings.Team = othello.White
		if choices[m.cursor] == 1 {
			m.settings.Team = othello.Black
		}

		m.choiceLevel = choiceLevelThink
		m.cursor = 0
		if secs := int(m.settings.ThinkTime / time.Second); secs >= timeChoiceRange[0] && secs <= timeChoiceRange[1] {
			m.cursor = secs - timeChoiceRange[0]
		}
		return m, nil

	case choiceLevelThink:
		m.settings.ThinkTime = time.Duration(choices[m.cursor]) * time.Second
		m.clear = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *model) View() string {
	if m.clear {
		return ""
	}

	choices := m.choices()

	s := strings.Builder{}
	s.WriteString(m.header)

	switch m.choiceLevel {
	case choiceLevelTeam:
		s.WriteString("Are you W or B:\n")
	case choiceLevelThink:
		fmt.Fprintf(&s, "You play %s. Choose bot think time:\n", m.settings.Team)
	}

	from, to := window(m.cursor, len(choices))
	for i, v := range choices[from:to] {
		selector := "( ) "
		if m.cursor == from+i {
			selector = "(•) "
		}
		s.WriteString(listSelectorStyle(selector))

		switch m.choiceLevel {
		case choiceLevelTeam:
			switch v {
			case 0:
				s.WriteString("W (White)")
			case 1:
				s.WriteString("B (Black, moves first)")
			}
		case choiceLevelThink:
			fmt.Fprintf(&s, "%ds of thinking", v)
			if time.Duration(v)*time.Second == m.defaultThink {
				s.WriteString(defaultStyle(" (default)"))
			}
		}

		s.WriteString("\n")
	}

	return s.String()
}

// visibleChoices is how many list rows are shown around the cursor.
const visibleChoices = 7

// window returns the [from, to) slice of n choices to show for cursor.
func window(cursor, n int) (int, int) {
	if n <= visibleChoices {
		return 0, n
	}

	from := min(max(cursor-visibleChoices/2, 0), n-visibleChoices)
	return from, from + visibleChoices
}
