package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleInput = lipgloss.NewStyle().
			Underline(true)
)

// Tone selects the style of a frame line
type Tone int

const (
	ToneNormal Tone = iota
	ToneTitle
	ToneSelected
	ToneInput
	ToneSuccess
	ToneError
	ToneSubtle
)

func (t Tone) style() lipgloss.Style {
	switch t {
	case ToneTitle:
		return styleTitle
	case ToneSelected:
		return styleSelected
	case ToneInput:
		return styleInput
	case ToneSuccess:
		return styleSuccess
	case ToneError:
		return styleError
	case ToneSubtle:
		return styleSubtle
	}
	return lipgloss.NewStyle()
}

// Line is one body row of a frame
type Line struct {
	Text string
	Tone Tone
}

// Frame is everything drawn for one screen: a title on the second row, the
// body centered in the middle and a help line two rows from the bottom
type Frame struct {
	Title string
	Body  []Line
	Help  string
}

// Plain returns a body line in the normal tone
func Plain(text string) Line {
	return Line{Text: text}
}

// Text returns the body as plain strings, for matching in tests and logs
func (f Frame) Text() []string {
	out := make([]string, len(f.Body))
	for i, l := range f.Body {
		out[i] = l.Text
	}
	return out
}

// Contains reports whether any body line, the title or the help contains s
func (f Frame) Contains(s string) bool {
	if strings.Contains(f.Title, s) || strings.Contains(f.Help, s) {
		return true
	}
	for _, l := range f.Body {
		if strings.Contains(l.Text, s) {
			return true
		}
	}
	return false
}

// Render draws f into exactly height rows, each at most width cells wide.
// Lines longer than the width are truncated.
func Render(f Frame, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rows := make([]string, height)

	if f.Title != "" && height > TitleRow {
		rows[TitleRow] = center(f.Title, styleTitle, width)
	}

	// body rows available between title and help
	top, bottom := BodyTopRow, height-BodyBottomOffset
	if bottom < top {
		top, bottom = 0, height-1
	}
	avail := bottom - top + 1
	body := f.Body
	if len(body) > avail {
		body = body[:avail]
	}
	start := top + (avail-len(body))/2
	for i, l := range body {
		rows[start+i] = center(l.Text, l.Tone.style(), width)
	}

	if f.Help != "" && height > HelpRowOffset {
		rows[height-HelpRowOffset] = center(f.Help, styleSubtle, width)
	}

	return strings.Join(rows, "\n")
}

// center truncates text to width, pads it to the middle and applies style
func center(text string, style lipgloss.Style, width int) string {
	text = ansi.Truncate(text, width, "…")
	pad := (width - ansi.StringWidth(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + style.Render(text)
}
