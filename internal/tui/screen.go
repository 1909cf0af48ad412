package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// keyBuffer bounds keys queued ahead of the engine; overflow is dropped
const keyBuffer = 64

// Screen is a Terminal backed by a Bubble Tea program in the alternate
// screen. The program runs on its own goroutine; the engine runs on another
// and talks to it only through the key channel, Program.Send and the size.
type Screen struct {
	keys  chan Key
	ready chan struct{}
	done  chan struct{}

	readyOnce sync.Once
	closeOnce sync.Once

	mu     sync.Mutex
	width  int
	height int

	program *tea.Program
	opts    []tea.ProgramOption
}

// NewScreen creates a screen. Extra program options are appended after the
// alternate-screen option.
func NewScreen(opts ...tea.ProgramOption) *Screen {
	return &Screen{
		keys:  make(chan Key, keyBuffer),
		ready: make(chan struct{}),
		done:  make(chan struct{}),
		opts:  opts,
	}
}

// Run starts the program and runs engine against the screen once the first
// size is known. Whichever side ends first stops the other. An engine that
// unwinds with ErrClosed is a normal shutdown.
func (s *Screen) Run(ctx context.Context, engine func(Terminal) error) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, s.opts...)
	s.program = tea.NewProgram(Model{screen: s}, opts...)

	g := new(errgroup.Group)

	g.Go(func() error {
		defer s.close()
		if _, err := s.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		defer s.program.Quit()
		select {
		case <-s.ready:
		case <-s.done:
			return nil
		}
		if err := engine(s); err != nil && !errors.Is(err, ErrClosed) {
			return err
		}
		return nil
	})

	return g.Wait()
}

// Size returns the last size reported by the terminal
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Present replaces the frame on screen
func (s *Screen) Present(f Frame) {
	select {
	case <-s.done:
		return
	default:
	}
	s.program.Send(frameMsg(f))
}

// ReadKey blocks for the next key or until the program has exited
func (s *Screen) ReadKey() (Key, error) {
	select {
	case k := <-s.keys:
		return k, nil
	case <-s.done:
		return Key{}, ErrClosed
	}
}

func (s *Screen) setSize(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

// push never blocks the program's event loop
func (s *Screen) push(k Key) {
	select {
	case s.keys <- k:
	default:
	}
}

func (s *Screen) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
