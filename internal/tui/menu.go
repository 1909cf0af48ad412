package tui

import "golang.org/x/text/message"

// menuState is the selector behind Prompter.Menu
type menuState struct {
	title   string
	options []string
	cursor  int
}

func newMenuState(title string, options []string) *menuState {
	return &menuState{title: title, options: options}
}

// handle applies one key. done is true once enter or escape ended the menu.
func (s *menuState) handle(k Key) (out Outcome[int], done bool) {
	switch k.Kind {
	case KeyUp:
		if s.cursor > 0 {
			s.cursor--
		}
	case KeyDown:
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case KeyEnter:
		return Value(s.cursor), true
	case KeyEscape:
		return Cancelled[int](), true
	}
	return out, false
}

func (s *menuState) frame(p *message.Printer) Frame {
	body := make([]Line, 0, len(s.options))
	for i, opt := range s.options {
		if i == s.cursor {
			body = append(body, Line{Text: "> " + opt + " <", Tone: ToneSelected})
			continue
		}
		body = append(body, Plain(opt))
	}
	return Frame{
		Title: s.title,
		Body:  body,
		Help:  p.Sprintf("↑/↓ move · enter select · esc back"),
	}
}
