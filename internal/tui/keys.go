package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyKind classifies a logical key
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
)

func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	}
	return "unknown"
}

// Key is one logical key press. Rune is set only for KeyChar.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns the key for a printable character
func Char(r rune) Key {
	return Key{Kind: KeyChar, Rune: r}
}

// Keys for the non-printable kinds
var (
	Up        = Key{Kind: KeyUp}
	Down      = Key{Kind: KeyDown}
	Enter     = Key{Kind: KeyEnter}
	Escape    = Key{Kind: KeyEscape}
	Backspace = Key{Kind: KeyBackspace}
)

// Text returns one KeyChar per rune of s
func Text(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Char(r))
	}
	return keys
}

func (k Key) String() string {
	if k.Kind == KeyChar {
		return string(k.Rune)
	}
	return k.Kind.String()
}

// readClipboard is swapped in tests
var readClipboard = clipboard.ReadAll

// translateKey maps a Bubble Tea key message to logical keys. A message can
// carry several runes (fast typing, bracketed paste) and yields one key per
// rune. Unknown keys yield nothing.
func translateKey(msg tea.KeyMsg) []Key {
	switch msg.Type {
	case tea.KeyUp:
		return []Key{Up}
	case tea.KeyDown:
		return []Key{Down}
	case tea.KeyEnter:
		return []Key{Enter}
	case tea.KeyEsc:
		return []Key{Escape}
	case tea.KeyBackspace:
		return []Key{Backspace}
	case tea.KeySpace:
		return []Key{Char(' ')}
	case tea.KeyRunes:
		return Text(string(msg.Runes))
	}

	switch msg.String() {
	case "ctrl+v", "shift+insert":
		// Paste from clipboard as typed characters; the editor filters them
		if text, err := readClipboard(); err == nil {
			return Text(text)
		}
	}
	return nil
}
