package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxListedFiles is how many file names the clear prompt shows.
const maxListedFiles = 5

var promptKeyStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ConfirmModel - y/N question
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question. Anything but
// "y" answers no.
type ConfirmModel struct {
	Question  string
	Answered  bool
	Confirmed bool
}

// NewConfirmModel creates a confirm model.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.Confirmed = true
		m.Answered = true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.Answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(StyleWarning.Render(m.Question))
	b.WriteString(" ")
	if m.Answered {
		answer := "no"
		if m.Confirmed {
			answer = "yes"
		}
		b.WriteString(StyleValue.Render(answer))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(promptKeyStyle.Render("[y/N]"))
	return b.String()
}

// =============================================================================
// KeyModel - press any key
// =============================================================================

// KeyModel is the bubbletea model that waits for any key.
type KeyModel struct {
	Pressed bool
}

func (m KeyModel) Init() tea.Cmd {
	return nil
}

func (m KeyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Pressed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m KeyModel) View() string {
	if m.Pressed {
		return ""
	}
	return promptKeyStyle.Render("Press any key to exit.")
}

// =============================================================================
// Prompts
// =============================================================================

// confirmClear asks whether the files already in dir may be deleted.
func confirmClear(ctx context.Context, dir string, files []string) (bool, error) {
	printWarning("%d files in %s will be deleted", len(files), dir)
	for i, name := range files {
		if i == maxListedFiles {
			printDetail("... and %d more", len(files)-maxListedFiles)
			break
		}
		printDetail("%s", name)
	}

	final, err := tea.NewProgram(NewConfirmModel("Continue?"), tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Confirmed, nil
}

// waitForKey blocks until a key is pressed.
func waitForKey(ctx context.Context) error {
	_, err := tea.NewProgram(KeyModel{}, tea.WithContext(ctx)).Run()
	return err
}
