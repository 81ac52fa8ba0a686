// Package prompt asks for setting values on a terminal and renders the
// resolved settings.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/handler"
	"github.com/drevops/vortex-sub001/internal/pipeline"
)

// ErrAborted is returned when input ends before a question is answered.
var ErrAborted = errors.New("prompt aborted")

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type styles struct {
	label   lipgloss.Style
	hint    lipgloss.Style
	option  lipgloss.Style
	errMsg  lipgloss.Style
	current lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		hint:    r.NewStyle().Faint(true),
		option:  r.NewStyle().PaddingLeft(2),
		errMsg:  r.NewStyle().Foreground(lipgloss.Color("9")),
		current: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Terminal is a line-based prompter. Pressing enter accepts the offered
// value; choices may be picked by number or by value.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

// NewTerminal reads answers from in and writes questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, styles: newStyles(out)}
}

var _ pipeline.Prompter = (*Terminal)(nil)

// Ask renders q and reads one answer. Input that cannot be read as the
// question's kind is asked again; everything else is left to the caller's
// validation.
func (t *Terminal) Ask(q pipeline.Question) (api.Value, error) {
	message := q.Message
	for {
		t.render(q, message)
		line, err := t.readLine()
		if err != nil {
			return api.None(), fmt.Errorf("%s: %w", q.ID, err)
		}
		v, msg := parse(q, line)
		if msg == "" {
			return v, nil
		}
		message = msg
	}
}

func (t *Terminal) render(q pipeline.Question, message string) {
	label := q.Label
	if q.Required {
		label += " *"
	}
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.styles.label.Render(label))
	if q.Description != "" {
		fmt.Fprintln(t.out, t.styles.hint.Render(q.Description))
	}
	if q.Hint != "" {
		fmt.Fprintln(t.out, t.styles.hint.Render(q.Hint))
	}
	for i, o := range q.Options {
		marker := " "
		if selected(q.Candidate, o.Value) {
			marker = "*"
		}
		line := fmt.Sprintf("%s %d) %s", marker, i+1, o.Label)
		if selected(q.Candidate, o.Value) {
			line = t.styles.current.Render(line)
		}
		fmt.Fprintln(t.out, t.styles.option.Render(line))
	}
	if message != "" {
		fmt.Fprintln(t.out, t.styles.errMsg.Render(message))
	}
	fmt.Fprint(t.out, promptLine(q))
}

func promptLine(q pipeline.Question) string {
	var offer string
	switch q.Kind {
	case handler.KindConfirm:
		if q.Candidate.Truth() {
			offer = "Y/n"
		} else {
			offer = "y/N"
		}
	case handler.KindMultiSelect:
		offer = "comma-separated"
		if d := q.Candidate.Display(); d != "" {
			offer += ", enter for " + d
		}
	default:
		if d := q.Candidate.Display(); d != "" {
			offer = d
		} else if q.Placeholder != "" {
			offer = q.Placeholder
		}
	}
	if offer == "" {
		return "> "
	}
	return fmt.Sprintf("[%s] > ", offer)
}

func selected(candidate api.Value, value string) bool {
	if candidate.Kind() == api.KindList {
		return candidate.Contains(value)
	}
	return candidate.Str() == value
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parse turns one line into a value of q's kind. A non-empty message means
// the line must be asked again.
func parse(q pipeline.Question, line string) (api.Value, string) {
	if line == "" {
		if q.Kind == handler.KindConfirm && !q.Candidate.Present() {
			return api.Bool(false), ""
		}
		if q.Kind == handler.KindText && !q.Candidate.Present() {
			return api.String(""), ""
		}
		return q.Candidate, ""
	}

	switch q.Kind {
	case handler.KindConfirm:
		v, err := handler.Coerce(handler.KindConfirm, line)
		if err != nil {
			return api.None(), "Please answer yes or no."
		}
		return v, ""
	case handler.KindSelect:
		return api.String(pick(q.Options, line)), ""
	case handler.KindMultiSelect:
		if line == "-" {
			return api.List(), ""
		}
		items := handler.SplitList(line)
		for i, item := range items {
			items[i] = pick(q.Options, item)
		}
		return api.List(items...), ""
	}
	return api.String(line), ""
}

// pick maps a 1-based option number to its value. Anything else is taken
// as the value itself.
func pick(opts []handler.Option, s string) string {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(opts) {
		return opts[n-1].Value
	}
	return s
}
