// Package app is the gradebook engine: the login ⇄ main menu loop and the
// record operations, written as blocking code against a tui.Prompter.
package app

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/types"
)

// Options configures an App
type Options struct {
	Backend       storage.Backend
	Hasher        auth.Hasher
	AdminPassword string
	Logger        *slog.Logger
	Printer       *message.Printer

	InputWidth   int
	MessageDelay time.Duration
	// Pause replaces time.Sleep for flashed messages
	Pause func(time.Duration)
}

// App owns the session and the stores for the life of one run
type App struct {
	prompt  *tui.Prompter
	p       *message.Printer
	log     *slog.Logger
	backend storage.Backend
	hasher  auth.Hasher
	seed    string

	book    *store.Book
	session auth.Session
}

// New creates an app drawing on term. The store is loaded by Run.
func New(term tui.Terminal, opts Options) *App {
	if opts.Printer == nil {
		opts.Printer = message.NewPrinter(language.English)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = store.DefaultAdminPassword
	}

	popts := []tui.Option{
		tui.WithPrinter(opts.Printer),
		tui.WithInputWidth(opts.InputWidth),
	}
	if opts.MessageDelay > 0 {
		popts = append(popts, tui.WithMessageDelay(opts.MessageDelay))
	}
	if opts.Pause != nil {
		popts = append(popts, tui.WithPause(opts.Pause))
	}

	return &App{
		prompt:  tui.NewPrompter(term, popts...),
		p:       opts.Printer,
		log:     opts.Logger,
		backend: opts.Backend,
		hasher:  opts.Hasher,
		seed:    opts.AdminPassword,
	}
}

// Book returns the in-memory store; nil before Run has loaded it
func (a *App) Book() *store.Book {
	return a.book
}

// Run loads the store and drives the top-level loop until the user exits or
// the terminal closes. A closed terminal is returned as tui.ErrClosed.
func (a *App) Run() error {
	if err := a.load(); err != nil {
		return err
	}
	a.log.Info("gradebook started", "students", a.book.Len())

	for {
		ok, err := a.login()
		if err != nil {
			return err
		}

		if !ok {
			out, err := a.prompt.Menu(a.p.Sprintf("Login failed"), []string{
				a.p.Sprintf("1. Retry"),
				a.p.Sprintf("0. Exit"),
			})
			if err != nil {
				return err
			}
			// escape retries
			if choice, ok := out.Get(); ok && choice == 1 {
				return a.shutdown()
			}
			continue
		}

		exit, err := a.mainMenu()
		if err != nil {
			return err
		}
		if exit {
			return a.shutdown()
		}
	}
}

// load reads the backend. A failed load is reported and the app continues
// from an empty baseline holding only the seeded admin.
func (a *App) load() error {
	snap := types.NewSnapshot()
	if a.backend != nil {
		loaded, err := a.backend.Load()
		if err != nil {
			a.log.Error("load failed", "error", err)
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("Failed to load data: %v", a.describe(err)))
		} else {
			snap = loaded
		}
	}

	book, err := store.New(snap, a.hasher, a.seed)
	if err != nil {
		return err
	}
	a.book = book
	return nil
}

// persist writes the whole store. A failure is reported and logged; the
// in-memory change stays.
func (a *App) persist() error {
	if a.backend == nil {
		return nil
	}
	if err := a.backend.Save(a.book.Snapshot()); err != nil {
		a.log.Error("save failed", "error", err)
		a.prompt.Flash(tui.ToneError, a.p.Sprintf("Failed to save data: %v", a.describe(err)))
		return err
	}
	return nil
}

// describe returns the translated hint for a persistence failure, or the
// error text when there is none
func (a *App) describe(err error) string {
	if msg, ok := storage.Describe(err); ok {
		return a.p.Sprintf(msg)
	}
	return err.Error()
}

func (a *App) shutdown() error {
	_ = a.persist()
	a.session.Logout()
	a.log.Info("gradebook exited")
	a.prompt.Flash(tui.ToneTitle, a.p.Sprintf("Thank you for using the grade manager. Goodbye!"))
	return nil
}

// guard reports a failed permission check
func (a *App) guard(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrNotLoggedIn):
		a.prompt.Flash(tui.ToneError, a.p.Sprintf("Please log in first!"))
	case errors.Is(err, auth.ErrPermission):
		a.prompt.Flash(tui.ToneError, a.p.Sprintf("Only the administrator can do this!"))
	}
	return err
}

// isFatal reports errors that must unwind the engine
func isFatal(err error) bool {
	return errors.Is(err, tui.ErrClosed)
}
