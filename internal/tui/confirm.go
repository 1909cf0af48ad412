package tui

import "golang.org/x/text/message"

type confirmState struct {
	message string
}

// handle accepts y/Y and n/N/escape; anything else keeps waiting
func (s *confirmState) handle(k Key) (answer, done bool) {
	switch k.Kind {
	case KeyEscape:
		return false, true
	case KeyChar:
		switch k.Rune {
		case 'y', 'Y':
			return true, true
		case 'n', 'N':
			return false, true
		}
	}
	return false, false
}

func (s *confirmState) frame(p *message.Printer) Frame {
	return Frame{
		Body: []Line{Plain(s.message), Line{Text: "(y/n)", Tone: ToneSubtle}},
		Help: p.Sprintf("y yes · n/esc no"),
	}
}
