// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/styles"
)

// QuestionList displays questions in a navigable, numbered list.
type QuestionList struct {
	questions []string
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewQuestionList creates a new question list component.
func NewQuestionList(s *styles.Styles) *QuestionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &QuestionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *QuestionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *QuestionList) Update(msg tea.Msg) (*QuestionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.questions) > 0 {
				l.selected = len(l.questions) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list around the selection.
func (l *QuestionList) View() string {
	if len(l.questions) == 0 {
		return l.styles.Muted.Render("No questions")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.questions) {
		end = len(l.questions)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderQuestion(i))
	}
	return strings.Join(lines, "\n")
}

func (l *QuestionList) renderQuestion(index int) string {
	text := l.questions[index]

	maxLen := l.width - 8
	if maxLen < 10 {
		maxLen = 10
	}
	if runes := []rune(text); len(runes) > maxLen {
		text = string(runes[:maxLen-3]) + "..."
	}

	line := fmt.Sprintf("%2d. %s", index+1, text)
	if index == l.selected {
		return l.styles.Selected.Render("> " + line)
	}
	return l.styles.Normal.Render("  " + line)
}

// SetQuestions replaces the list contents and resets the selection.
func (l *QuestionList) SetQuestions(questions []string) {
	l.questions = questions
	l.selected = 0
}

// Questions returns the list contents.
func (l *QuestionList) Questions() []string {
	return l.questions
}

// Selected returns the index of the selected question.
func (l *QuestionList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *QuestionList) SetSelected(index int) {
	if index >= 0 && index < len(l.questions) {
		l.selected = index
	}
}

// SelectedQuestion returns the selected question, or "" when the list is empty.
func (l *QuestionList) SelectedQuestion() string {
	if len(l.questions) == 0 {
		return ""
	}
	return l.questions[l.selected]
}

// MoveUp moves selection up.
func (l *QuestionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *QuestionList) MoveDown() {
	if l.selected < len(l.questions)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions. Height is in lines.
func (l *QuestionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of questions.
func (l *QuestionList) Count() int {
	return len(l.questions)
}
