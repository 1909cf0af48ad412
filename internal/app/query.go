package app

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/gradebook/internal/roster"
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/types"
)

// maxSuggestions bounds the ids offered after a failed lookup
const maxSuggestions = 3

// queryStudent shows one record. The administrator picks any id; a student
// always sees their own.
func (a *App) queryStudent() error {
	if err := a.guard(a.session.RequireAuthenticated()); err != nil {
		return err
	}
	title := a.p.Sprintf("Query student")

	if !a.session.IsAdmin() {
		id, _ := a.session.Identity()
		st, ok := a.book.Student(id)
		if !ok {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("No student with that ID!"))
			return fmt.Errorf("student %w: %s", store.ErrNotFound, id)
		}
		return a.showStudent(title, id, st)
	}

	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("ID of the student to query (Esc to go back):"))
		if err != nil {
			return err
		}
		id, ok := out.Get()
		if !ok {
			return nil
		}

		if st, found := a.book.Student(id); found {
			return a.showStudent(title, id, st)
		}

		msg := a.p.Sprintf("No student with that ID! Retry?")
		if near := a.suggest(id); len(near) > 0 {
			msg = a.p.Sprintf("No student with that ID! Did you mean %s? Retry?", strings.Join(near, ", "))
		}
		retry, err := a.prompt.Confirm(msg)
		if err != nil {
			return err
		}
		if !retry {
			return fmt.Errorf("student %w: %s", store.ErrNotFound, id)
		}
	}
}

// suggest returns existing ids that fuzzily match id, best first
func (a *App) suggest(id string) []string {
	if id == "" {
		return nil
	}
	matches := fuzzy.Find(id, a.book.StudentIDs())
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func (a *App) showStudent(title, id string, st types.Student) error {
	return a.prompt.Show(title, []string{
		a.p.Sprintf("ID: %s", id),
		a.p.Sprintf("Name: %s", st.Name),
		a.p.Sprintf("Chinese: %s", formatScore(st.Chinese)),
		a.p.Sprintf("Math: %s", formatScore(st.Math)),
		a.p.Sprintf("English: %s", formatScore(st.English)),
		a.p.Sprintf("Total: %s", formatScore(st.Total)),
		a.p.Sprintf("Average: %.2f", st.Average),
	})
}

// listStudents pages through the whole roster in insertion order
func (a *App) listStudents() error {
	if err := a.guard(a.session.RequireAdmin()); err != nil {
		return err
	}
	if a.book.Len() == 0 {
		a.prompt.Flash(tui.ToneNormal, a.p.Sprintf("No student records yet!"))
		return nil
	}

	return a.prompt.Page(a.p.Sprintf("All students"), roster.Header(a.p), roster.Rows(a.book.Students()))
}
