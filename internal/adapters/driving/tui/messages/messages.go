// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// QuestionSubmitted is a command to ask a question about the open document.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries the answer to a submitted question.
type AnswerReceived struct {
	Question string
	Answer   string
	Err      error
}

// QuestionPicked is sent when a suggested question is chosen.
type QuestionPicked struct {
	Question string
}

// ValidationCompleted carries the legal-document verdict for the open document.
type ValidationCompleted struct {
	Classification *domain.Classification
	Err            error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the question and answer transcript.
	ViewChat ViewType = iota
	// ViewQuestions lists the suggested questions.
	ViewQuestions
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewQuestions:
		return "questions"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred is sent when an error happens.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
