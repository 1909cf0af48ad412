package tui

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultInputWidth caps the line editor when no width is configured
	DefaultInputWidth = 40
	// DefaultMessageDelay is how long a flashed message stays up
	DefaultMessageDelay = time.Second
)

// Prompter runs the interaction primitives against a Terminal. Every method
// blocks until the interaction ends; the only error it returns is the
// terminal's own (ErrClosed once the surface is gone).
type Prompter struct {
	term       Terminal
	printer    *message.Printer
	inputWidth int
	delay      time.Duration
	pause      func(time.Duration)
}

// Option configures a Prompter
type Option func(*Prompter)

// WithInputWidth sets the editor width cap
func WithInputWidth(n int) Option {
	return func(p *Prompter) {
		if n > 0 {
			p.inputWidth = n
		}
	}
}

// WithMessageDelay sets how long Flash keeps a message up
func WithMessageDelay(d time.Duration) Option {
	return func(p *Prompter) {
		if d >= 0 {
			p.delay = d
		}
	}
}

// WithPause replaces the sleep used by Flash
func WithPause(fn func(time.Duration)) Option {
	return func(p *Prompter) {
		p.pause = fn
	}
}

// WithPrinter sets the printer the primitives use for their own help lines
func WithPrinter(pr *message.Printer) Option {
	return func(p *Prompter) {
		p.printer = pr
	}
}

// NewPrompter creates a prompter drawing on term
func NewPrompter(term Terminal, opts ...Option) *Prompter {
	p := &Prompter{
		term:       term,
		printer:    message.NewPrinter(language.English),
		inputWidth: DefaultInputWidth,
		delay:      DefaultMessageDelay,
		pause:      time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Menu shows options under title and returns the chosen index
func (p *Prompter) Menu(title string, options []string) (Outcome[int], error) {
	s := newMenuState(title, options)
	for {
		p.term.Present(s.frame(p.printer))
		k, err := p.term.ReadKey()
		if err != nil {
			return Cancelled[int](), err
		}
		if out, done := s.handle(k); done {
			return out, nil
		}
	}
}

// Line reads one trimmed line of text. Context lines are shown above the
// prompt.
func (p *Prompter) Line(title, prompt string, context ...string) (Outcome[string], error) {
	return p.edit(title, prompt, context, false)
}

// Masked reads a secret, echoing '*'. The value is not trimmed.
func (p *Prompter) Masked(title, prompt string, context ...string) (Outcome[string], error) {
	return p.edit(title, prompt, context, true)
}

// EditorWidth returns the editor width for the current terminal size
func (p *Prompter) EditorWidth() int {
	w, _ := p.term.Size()
	width := p.inputWidth
	if w-EditorWidthMargin < width {
		width = w - EditorWidthMargin
	}
	if width < 1 {
		width = 1
	}
	return width
}

func (p *Prompter) edit(title, prompt string, context []string, masked bool) (Outcome[string], error) {
	s := newEditorState(prompt, context, p.EditorWidth(), masked)
	for {
		p.term.Present(s.frame(title, p.printer))
		k, err := p.term.ReadKey()
		if err != nil {
			return Cancelled[string](), err
		}
		if out, done := s.handle(k); done {
			return out, nil
		}
	}
}

// Confirm asks a yes/no question. Escape answers no.
func (p *Prompter) Confirm(msg string) (bool, error) {
	s := &confirmState{message: msg}
	for {
		p.term.Present(s.frame(p.printer))
		k, err := p.term.ReadKey()
		if err != nil {
			return false, err
		}
		if answer, done := s.handle(k); done {
			return answer, nil
		}
	}
}

// Page shows rows under a fixed header, scrolling one row per key, until
// escape
func (p *Prompter) Page(title, header string, rows []string) error {
	w, h := p.term.Size()
	s := newPagerState(title, header, rows, w, h-PagerHeightOffset)
	for {
		p.term.Present(s.frame(p.printer))
		k, err := p.term.ReadKey()
		if err != nil {
			return err
		}
		if s.handle(k) {
			return nil
		}
	}
}

// Show presents an information screen and waits for any key
func (p *Prompter) Show(title string, lines []string) error {
	body := make([]Line, len(lines))
	for i, l := range lines {
		body[i] = Plain(l)
	}
	p.term.Present(Frame{
		Title: title,
		Body:  body,
		Help:  p.printer.Sprintf("press any key to return"),
	})
	_, err := p.term.ReadKey()
	return err
}

// Flash shows msg alone on screen for the message delay
func (p *Prompter) Flash(tone Tone, msg string) {
	p.flash(tone, msg, p.delay)
}

// FlashLong is Flash held for twice the delay, for messages the user needs
// time to read
func (p *Prompter) FlashLong(tone Tone, msg string) {
	p.flash(tone, msg, 2*p.delay)
}

func (p *Prompter) flash(tone Tone, msg string, d time.Duration) {
	p.term.Present(Frame{Body: []Line{{Text: msg, Tone: tone}}})
	p.pause(d)
}

// Printer returns the printer used for user-visible text
func (p *Prompter) Printer() *message.Printer {
	return p.printer
}
