// Package questions provides the suggested questions picker for the TUI.
package questions

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// View lists the suggested questions. Choosing one asks it in the chat view.
type View struct {
	styles *styles.Styles
	list   *list.QuestionList
	width  int
	height int
	ready  bool
}

// NewView creates a picker over the suggested contract questions.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	l := list.NewQuestionList(s)
	l.SetQuestions(domain.SuggestedQuestions())

	return &View{
		styles: s,
		list:   l,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := v.list.SelectedQuestion()
			if question == "" {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.QuestionPicked{Question: question}
			}

		case "esc", "tab":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewChat}
			}
		}

		// Digits jump straight to a question; 0 is the tenth.
		if r := msg.Runes; msg.Type == tea.KeyRunes && len(r) == 1 && r[0] >= '0' && r[0] <= '9' {
			idx := int(r[0] - '1')
			if r[0] == '0' {
				idx = 9
			}
			v.list.SetSelected(idx)
			return v, nil
		}

		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Suggested questions"))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] Navigate  [1-9,0] Jump  [Enter] Ask  [Esc] Back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-6)
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// SelectedQuestion returns the currently selected question.
func (v *View) SelectedQuestion() string {
	return v.list.SelectedQuestion()
}
