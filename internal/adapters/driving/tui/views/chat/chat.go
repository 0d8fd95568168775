// Package chat provides the question and answer view for one cached document.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// Exchange is one question with its answer or failure.
type Exchange struct {
	Question string
	Answer   string
	Err      error
}

// View shows the transcript above a question input and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	statusbar *status.Bar
	viewport  viewport.Model

	query       driving.QueryService
	validation  driving.ValidationService
	fingerprint domain.Fingerprint
	document    string
	ctx         context.Context

	transcript []Exchange
	pending    string
	verdict    *domain.Classification

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a chat view for the document with the given fingerprint.
// validation may be nil, which disables the legal check.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	query driving.QueryService,
	validation driving.ValidationService,
	fp domain.Fingerprint,
	document string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetDocument(fmt.Sprintf("%s (%s)", document, fp.Short()))

	return &View{
		styles:      s,
		keymap:      km,
		input:       input.NewQuestionInput(s),
		statusbar:   bar,
		viewport:    viewport.New(80, 14),
		query:       query,
		validation:  validation,
		fingerprint: fp,
		document:    document,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.ValidationCompleted:
		v.handleValidation(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Ask):
		return v, v.Submit(v.input.Question())

	case keymap.Matches(keyStr, v.keymap.Questions):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewQuestions}
		}

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}

	case keymap.Matches(keyStr, v.keymap.Validate):
		return v, v.validate()

	case keymap.Matches(keyStr, v.keymap.Back):
		v.input.Reset()
		v.ClearError()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// Submit asks question about the document. Blank questions and questions
// sent while another is pending are ignored.
func (v *View) Submit(question string) tea.Cmd {
	question = strings.TrimSpace(question)
	if question == "" || v.pending != "" {
		return nil
	}

	v.pending = question
	v.input.Reset()
	v.ClearError()
	v.statusbar.SetState(status.StateThinking)
	v.refresh()

	return v.performAsk(question)
}

func (v *View) performAsk(question string) tea.Cmd {
	return func() tea.Msg {
		if v.query == nil {
			return messages.AnswerReceived{Question: question, Err: ErrNoQueryService}
		}
		answer, err := v.query.Ask(v.ctx, v.fingerprint, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

func (v *View) validate() tea.Cmd {
	if v.validation == nil {
		v.statusbar.SetMessage("Legal check not available")
		return nil
	}
	v.statusbar.SetState(status.StateValidating)
	return func() tea.Msg {
		c, err := v.validation.Validate(v.ctx, v.fingerprint)
		return messages.ValidationCompleted{Classification: c, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	v.pending = ""
	v.transcript = append(v.transcript, Exchange{
		Question: msg.Question,
		Answer:   msg.Answer,
		Err:      msg.Err,
	})

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	} else {
		v.err = nil
		v.statusbar.Clear()
		v.statusbar.SetExchanges(v.answered())
	}
	v.refresh()
}

func (v *View) handleValidation(msg messages.ValidationCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	v.verdict = msg.Classification
	v.statusbar.Clear()
	v.refresh()
}

func (v *View) answered() int {
	n := 0
	for _, ex := range v.transcript {
		if ex.Err == nil {
			n++
		}
	}
	return n
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.transcript) == 0 && v.pending == "" {
		return v.styles.Muted.Render("No questions yet. Type one below or press tab for suggestions.")
	}

	answerWidth := v.width - 4
	if answerWidth < 20 {
		answerWidth = 20
	}

	blocks := make([]string, 0, len(v.transcript)+1)
	for _, ex := range v.transcript {
		q := v.styles.Question.Render("Q: " + ex.Question)
		var a string
		if ex.Err != nil {
			a = v.styles.Error.Render("Error: " + ex.Err.Error())
		} else {
			a = v.styles.Answer.Width(answerWidth).Render(ex.Answer)
		}
		blocks = append(blocks, q+"\n"+a)
	}
	if v.pending != "" {
		blocks = append(blocks,
			v.styles.Question.Render("Q: "+v.pending)+"\n"+v.styles.Muted.Render("  ..."))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderVerdict() string {
	if v.verdict == nil {
		return ""
	}
	c := v.verdict
	label := "Not a legal document"
	if c.IsLegal {
		label = "Legal document"
	}
	line := fmt.Sprintf("%s: %s (%.0f%% confidence)", label, c.DocumentType, c.ConfidencePercent())
	return v.styles.Verdict(c.Accepted(), c.Rejected()).Render(line)
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("lexqa") + "  " + v.styles.Subtitle.Render(v.document)
	sections = append(sections, header)
	if verdict := v.renderVerdict(); verdict != "" {
		sections = append(sections, verdict)
	}
	sections = append(sections, "", v.viewport.View(), "", v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Reserve space for header, verdict, input and status bar
	vpHeight := height - 10
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Transcript returns the answered and failed exchanges in order.
func (v *View) Transcript() []Exchange {
	return v.transcript
}

// Pending returns the question awaiting an answer, or "".
func (v *View) Pending() string {
	return v.pending
}

// Verdict returns the last legal check result, or nil.
func (v *View) Verdict() *domain.Classification {
	return v.verdict
}

// Draft returns the text typed into the input.
func (v *View) Draft() string {
	return v.input.Value()
}

// SetDraft replaces the text in the input.
func (v *View) SetDraft(text string) {
	v.input.SetValue(text)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.Clear()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
