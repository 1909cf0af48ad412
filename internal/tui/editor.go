package tui

import (
	"strings"

	"golang.org/x/text/message"
)

// editorState is the single-line editor behind Prompter.Line and
// Prompter.Masked. Only characters 32..126 are accepted and at most width
// of them; extra input is dropped.
type editorState struct {
	prompt  string
	context []string
	width   int
	masked  bool
	text    []rune
}

func newEditorState(prompt string, context []string, width int, masked bool) *editorState {
	if width < 1 {
		width = 1
	}
	return &editorState{prompt: prompt, context: context, width: width, masked: masked}
}

func printable(r rune) bool {
	return r >= 32 && r <= 126
}

func (s *editorState) handle(k Key) (out Outcome[string], done bool) {
	switch k.Kind {
	case KeyChar:
		if printable(k.Rune) && len(s.text) < s.width {
			s.text = append(s.text, k.Rune)
		}
	case KeyBackspace:
		if len(s.text) > 0 {
			s.text = s.text[:len(s.text)-1]
		}
	case KeyEnter:
		v := string(s.text)
		if !s.masked {
			v = strings.TrimSpace(v)
		}
		return Value(v), true
	case KeyEscape:
		return Cancelled[string](), true
	}
	return out, false
}

// field returns the visible input: the text (or its mask) padded to width
func (s *editorState) field() string {
	shown := string(s.text)
	if s.masked {
		shown = strings.Repeat("*", len(s.text))
	}
	return shown + strings.Repeat(" ", s.width-len(s.text))
}

func (s *editorState) frame(title string, p *message.Printer) Frame {
	body := make([]Line, 0, len(s.context)+3)
	for _, c := range s.context {
		body = append(body, Line{Text: c, Tone: ToneSubtle})
	}
	if len(s.context) > 0 {
		body = append(body, Plain(""))
	}
	body = append(body, Plain(s.prompt), Line{Text: s.field(), Tone: ToneInput})
	return Frame{
		Title: title,
		Body:  body,
		Help:  p.Sprintf("enter confirm · esc cancel"),
	}
}
