package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. Once submitted it shows the
// correct option, the learner's pick and the explanation.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Explanation  string
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int, explanation string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation:  explanation,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation and selection. Letters and digits
// pick an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if i := optionIndex(key); i >= 0 && i < len(m.Options) {
			m.Selected = i
			m.Submitted = true
			m.ChosenIndex = i
		}
	}

	return m, nil
}

func optionIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	case c >= '1' && c <= '4':
		return int(c - '1')
	}
	return -1
}

// View renders the multiple-choice component wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}

	if m.Submitted {
		b.WriteString("\n")
		if m.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
		if m.Explanation != "" {
			b.WriteString("\n" + theme.Hint.Width(width).Render(m.Explanation))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
