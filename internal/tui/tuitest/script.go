// Package tuitest provides a scripted tui.Terminal for driving the engine in
// tests. Keys are queued up front; every presented frame is recorded. When
// the script runs out of keys ReadKey reports tui.ErrClosed, which unwinds
// the engine the same way a closed terminal does.
package tuitest

import (
	"strconv"
	"strings"
	"sync"

	"github.com/studiowebux/gradebook/internal/tui"
)

// Script is a fake terminal
type Script struct {
	mu     sync.Mutex
	width  int
	height int
	keys   []tui.Key
	frames []tui.Frame
}

// New creates a script with a fixed terminal size
func New(width, height int) *Script {
	return &Script{width: width, height: height}
}

// Keys queues raw keys
func (s *Script) Keys(keys ...tui.Key) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, keys...)
	return s
}

// Type queues text followed by enter
func (s *Script) Type(text string) *Script {
	return s.Keys(append(tui.Text(text), tui.Enter)...)
}

// Select queues the keys picking option i of a menu whose cursor starts at 0
func (s *Script) Select(i int) *Script {
	for ; i > 0; i-- {
		s.Keys(tui.Down)
	}
	return s.Keys(tui.Enter)
}

func (s *Script) Enter() *Script { return s.Keys(tui.Enter) }
func (s *Script) Esc() *Script   { return s.Keys(tui.Escape) }
func (s *Script) Yes() *Script   { return s.Keys(tui.Char('y')) }
func (s *Script) No() *Script    { return s.Keys(tui.Char('n')) }

// Size implements tui.Terminal
func (s *Script) Size() (int, int) {
	return s.width, s.height
}

// Present implements tui.Terminal
func (s *Script) Present(f tui.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}

// ReadKey implements tui.Terminal
func (s *Script) ReadKey() (tui.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.keys) == 0 {
		return tui.Key{}, tui.ErrClosed
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// Remaining returns the number of keys not yet read
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// Frames returns every frame presented so far
func (s *Script) Frames() []tui.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tui.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Last returns the most recent frame
func (s *Script) Last() tui.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return tui.Frame{}
	}
	return s.frames[len(s.frames)-1]
}

// Saw reports whether any frame contained text
func (s *Script) Saw(text string) bool {
	for _, f := range s.Frames() {
		if f.Contains(text) {
			return true
		}
	}
	return false
}

// Count returns how many frames contained text
func (s *Script) Count(text string) int {
	n := 0
	for _, f := range s.Frames() {
		if f.Contains(text) {
			n++
		}
	}
	return n
}

// Dump renders every frame's body, for failure messages
func (s *Script) Dump() string {
	var b strings.Builder
	for i, f := range s.Frames() {
		b.WriteString("--- frame ")
		b.WriteString(strconv.Itoa(i))
		if f.Title != "" {
			b.WriteString(" [" + f.Title + "]")
		}
		b.WriteByte('\n')
		for _, l := range f.Text() {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
