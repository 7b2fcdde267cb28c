package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/session"
	"github.com/abhisek/greekquiz/internal/ui/components"
	"github.com/abhisek/greekquiz/internal/ui/layout"
	"github.com/abhisek/greekquiz/internal/ui/theme"
)

var quizHints = []layout.KeyHint{
	{Key: "enter", Description: "next field"},
	{Key: ":mode", Description: "quiz|vocab|review"},
	{Key: ":stats", Description: "progress"},
	{Key: ":skip", Description: "next item"},
	{Key: "esc", Description: "quit"},
}

var modeTitles = map[session.Mode]string{
	session.ModeQuiz:       "Alphabet quiz",
	session.ModeVocabFocus: "Vocabulary",
	session.ModeReview:     "Review",
}

// Quiz is the inline Bubble Tea model driving a practice session. Each
// question shows one text field per answer part; commands starting with ':'
// may be typed into any field.
type Quiz struct {
	ctx context.Context
	ctl *session.Controller

	question session.Question
	inputs   []components.TextInput
	focus    int

	// Graded fields and feedback of the previous answer.
	answered []components.TextInput
	feedback []string
	notice   string

	width    int
	quitting bool
	err      error
}

// NewQuiz creates a quiz model backed by ctl. ctx bounds the controller
// calls made while handling keys.
func NewQuiz(ctx context.Context, ctl *session.Controller) *Quiz {
	return &Quiz{ctx: ctx, ctl: ctl, width: layout.Width}
}

// RunQuiz runs the quiz inline on the given terminal streams and prints a
// session summary when it ends.
func RunQuiz(ctx context.Context, ctl *session.Controller, in io.Reader, out io.Writer) error {
	q := NewQuiz(ctx, ctl)
	p := tea.NewProgram(q, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return err
	}
	if fq, ok := final.(*Quiz); ok && fq.err != nil {
		return fq.err
	}
	lipgloss.Fprintln(out, RenderSummary(ctl.Summary()))
	return nil
}

// Init asks the first question.
func (q *Quiz) Init() tea.Cmd {
	return q.next()
}

// Update handles key presses.
func (q *Quiz) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		q.width = min(max(msg.Width, 20), layout.Width)
		return q, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return q, q.quit()
		case "enter":
			return q, q.enter()
		case "tab", "down":
			return q, q.focusField(q.focus + 1)
		case "shift+tab", "up":
			return q, q.focusField(q.focus - 1)
		}
	}

	if len(q.inputs) == 0 {
		return q, nil
	}
	var cmd tea.Cmd
	q.inputs[q.focus], cmd = q.inputs[q.focus].Update(msg)
	return q, cmd
}

// View renders the quiz inline, without the alternate screen.
func (q *Quiz) View() tea.View {
	return tea.NewView(q.render())
}

func (q *Quiz) render() string {
	if q.quitting {
		return ""
	}

	var b strings.Builder
	total := len(q.ctl.Catalog().Words())
	b.WriteString(layout.RenderHeader(modeTitles[q.ctl.Mode()], q.ctl.Overview().LearnedWords, total, q.width))
	b.WriteString("\n")

	if len(q.answered) > 0 {
		for _, in := range q.answered {
			b.WriteString("  " + in.View() + "\n")
		}
		for _, line := range q.feedback {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if q.question.Item != nil {
		if q.question.IsReview {
			b.WriteString(theme.Review.Render(fmt.Sprintf("Review: %d left", q.question.ReviewRemaining)) + "\n")
		}
		b.WriteString(theme.Card.Render(theme.Glyph.Render(q.question.Item.Key())) + "\n")
		for _, in := range q.inputs {
			b.WriteString("  " + in.View() + "\n")
		}
	}

	if q.notice != "" {
		b.WriteString("\n" + q.notice + "\n")
	}
	b.WriteString("\n" + layout.RenderFooter(quizHints, q.width))
	return b.String()
}

func (q *Quiz) quit() tea.Cmd {
	q.quitting = true
	return tea.Quit
}

func (q *Quiz) fail(err error) tea.Cmd {
	q.err = err
	return q.quit()
}

// next fetches the next question and builds its answer fields.
func (q *Quiz) next() tea.Cmd {
	question, err := q.ctl.NextItem(q.ctx)
	switch {
	case errors.Is(err, session.ErrReviewPoolExhausted):
		q.notice = theme.Hint.Render(err.Error())
		return q.switchMode(session.ModeVocabFocus)
	case errors.Is(err, session.ErrEmptyPool):
		q.notice = theme.Incorrect.Render("Nothing to practice: the catalog is empty.")
		return q.quit()
	case err != nil:
		return q.fail(err)
	}

	q.question = question
	if question.Kind == catalog.KindLetter {
		q.inputs = []components.TextInput{
			components.NewTextInput(session.FieldName),
			components.NewTextInput(session.FieldSound),
		}
	} else {
		q.inputs = []components.TextInput{
			components.NewTextInput(session.FieldPronunciation),
			components.NewTextInput(session.FieldMeaning),
		}
	}
	q.focus = 0
	return q.inputs[0].Focus()
}

func (q *Quiz) focusField(i int) tea.Cmd {
	if len(q.inputs) == 0 {
		return nil
	}
	i = (i + len(q.inputs)) % len(q.inputs)
	q.inputs[q.focus].Blur()
	q.focus = i
	return q.inputs[i].Focus()
}

// enter advances to the next field, runs a command, or submits the answer
// from the last field.
func (q *Quiz) enter() tea.Cmd {
	if len(q.inputs) == 0 {
		return nil
	}
	value := strings.TrimSpace(q.inputs[q.focus].Value())
	if strings.HasPrefix(value, ":") {
		q.inputs[q.focus].Clear()
		return q.command(value)
	}
	if q.focus < len(q.inputs)-1 {
		return q.focusField(q.focus + 1)
	}
	return q.submit()
}

func (q *Quiz) submit() tea.Cmd {
	answer := session.Answer{Kind: q.question.Kind, Key: q.question.Item.Key()}
	if answer.Kind == catalog.KindLetter {
		answer.Name, answer.Sound = q.inputs[0].Value(), q.inputs[1].Value()
	} else {
		answer.Pronunciation, answer.Meaning = q.inputs[0].Value(), q.inputs[1].Value()
	}

	res, err := q.ctl.Submit(q.ctx, answer)
	if err != nil {
		return q.fail(err)
	}

	q.notice = ""
	q.answered = q.inputs
	for i := range q.answered {
		q.answered[i].Submit(res.Fields[q.answered[i].Label])
	}

	q.feedback = q.feedback[:0]
	if res.IsCorrect {
		q.feedback = append(q.feedback, theme.Correct.Render(res.Feedback))
	} else {
		q.feedback = append(q.feedback, theme.Incorrect.Render(res.Feedback))
	}
	if res.Transition != nil {
		q.feedback = append(q.feedback, theme.Hint.Render(fmt.Sprintf("%s: %s → %s", res.Transition.Key, res.Transition.From, res.Transition.To)))
	}
	if res.ReviewEnded {
		q.feedback = append(q.feedback, theme.Review.Render("Review session complete."))
	}
	if res.ReviewStarted {
		q.feedback = append(q.feedback, theme.Review.Render(fmt.Sprintf("Group complete! Starting a %d-question review.", res.Review.Remaining)))
	}

	q.inputs = nil
	return q.next()
}

func (q *Quiz) command(line string) tea.Cmd {
	q.notice = ""
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return q.quit()
	case "skip", "s":
		return q.next()
	case "stats":
		q.notice = RenderOverview(q.ctl.Overview(), len(q.ctl.Catalog().Words()))
		return nil
	case "mode", "m":
		mode, err := session.ParseMode(strings.TrimSpace(arg))
		if err != nil {
			q.notice = theme.Incorrect.Render(err.Error())
			return nil
		}
		return q.switchMode(mode)
	}
	q.notice = theme.Incorrect.Render("unknown command :" + name)
	return nil
}

func (q *Quiz) switchMode(mode session.Mode) tea.Cmd {
	if err := q.ctl.SetMode(q.ctx, mode); err != nil {
		return q.fail(err)
	}
	return q.next()
}
