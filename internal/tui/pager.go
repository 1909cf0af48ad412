package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"golang.org/x/text/message"
)

// pagerState scrolls rows one line at a time. The offset stays within
// [0, max(0, len(rows)-height)] even when a row holds a line break.
type pagerState struct {
	title  string
	header string
	rows   []string
	view   viewport.Model
}

func newPagerState(title, header string, rows []string, width, height int) *pagerState {
	if height < 1 {
		height = 1
	}
	v := viewport.New(width, height)
	v.SetContent(strings.Join(rows, "\n"))
	return &pagerState{title: title, header: header, rows: rows, view: v}
}

// handle moves the offset; escape ends paging
func (s *pagerState) handle(k Key) (done bool) {
	switch k.Kind {
	case KeyUp:
		s.view.LineUp(1)
	case KeyDown:
		if s.view.YOffset < s.maxOffset() {
			s.view.LineDown(1)
		}
	case KeyEscape:
		return true
	}
	return false
}

func (s *pagerState) maxOffset() int {
	return max(0, len(s.rows)-s.view.Height)
}

// visible returns the rows in the window and the 1-based range shown
func (s *pagerState) visible() (rows []string, first, last int) {
	off := min(s.view.YOffset, s.maxOffset())
	end := off + s.view.Height
	if end > len(s.rows) {
		end = len(s.rows)
	}
	if off > end {
		off = end
	}
	return s.rows[off:end], off + 1, end
}

func (s *pagerState) frame(p *message.Printer) Frame {
	rows, first, last := s.visible()

	body := make([]Line, 0, len(rows)+1)
	if s.header != "" {
		body = append(body, Line{Text: s.header, Tone: ToneTitle})
	}
	for _, r := range rows {
		body = append(body, Plain(r))
	}

	help := p.Sprintf("↑/↓ scroll · esc back")
	if len(s.rows) > s.view.Height {
		help = p.Sprintf("(%d-%d/%d) ", first, last, len(s.rows)) + help
	}
	return Frame{Title: s.title, Body: body, Help: help}
}
