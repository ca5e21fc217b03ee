package input

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrSelectionCancelled is returned when the user quits a menu without choosing.
var ErrSelectionCancelled = errors.New("selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Choice is one menu entry.
type Choice struct {
	Value string
	Label string
}

// Select shows a menu with keyboard navigation and returns the chosen value.
func Select(title string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("no choices for %q", title)
	}

	p := tea.NewProgram(newSelectModel(title, choices))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to show menu: %w", err)
	}

	result := finalModel.(selectModel)
	if result.selected < 0 {
		return "", ErrSelectionCancelled
	}
	return choices[result.selected].Value, nil
}

// selectModel is the BubbleTea model behind Select.
type selectModel struct {
	title    string
	choices  []Choice
	cursor   int
	selected int
}

func newSelectModel(title string, choices []Choice) selectModel {
	return selectModel{
		title:    title,
		choices:  choices,
		selected: -1,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case "enter":
		m.selected = m.cursor
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice.Label) + "\n")
		} else {
			b.WriteString("      " + choice.Label + "\n")
		}
	}

	return b.String()
}
