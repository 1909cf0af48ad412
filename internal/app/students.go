package app

import (
	"fmt"

	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
)

// addStudent creates a record and its account. A duplicate id is reported
// and asked for again; escape at any step leaves the store untouched.
func (a *App) addStudent() error {
	if err := a.guard(a.session.RequireAdmin()); err != nil {
		return err
	}
	title := a.p.Sprintf("Add student")

	var id string
	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("Student ID (Esc to go back):"))
		if err != nil {
			return err
		}
		v, ok := out.Get()
		if !ok {
			return nil
		}
		if a.book.IsAvailable(v) {
			id = v
			break
		}
		a.prompt.Flash(tui.ToneError, a.p.Sprintf("That student ID already exists!"))
	}

	out, err := a.prompt.Line(title, a.p.Sprintf("Name (Esc to go back):"))
	if err != nil {
		return err
	}
	name, ok := out.Get()
	if !ok {
		return nil
	}

	scoresOut, err := a.readScores(title, nil, nil)
	if err != nil {
		return err
	}
	scores, ok := scoresOut.Get()
	if !ok {
		return nil
	}

	if err := a.book.CreateStudent(id, name, scores); err != nil {
		return err
	}
	a.log.Info("student added", "id", id)
	saveErr := a.persist()
	a.prompt.FlashLong(tui.ToneSuccess, a.p.Sprintf("Student %s added! Initial password is %s", name, store.DefaultStudentPassword))
	return saveErr
}

// deleteStudent removes a record together with its account
func (a *App) deleteStudent() error {
	if err := a.guard(a.session.RequireAdmin()); err != nil {
		return err
	}
	title := a.p.Sprintf("Delete student")

	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("ID of the student to delete (Esc to go back):"))
		if err != nil {
			return err
		}
		id, ok := out.Get()
		if !ok {
			return nil
		}

		st, err := a.book.DeleteStudent(id)
		if err != nil {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("No student with that ID!"))
			continue
		}
		a.log.Info("student deleted", "id", id)
		saveErr := a.persist()
		a.prompt.Flash(tui.ToneSuccess, a.p.Sprintf("Student %s (ID: %s) deleted", st.Name, id))
		return saveErr
	}
}

// updateStudent replaces the scores of a record; blank input keeps a score
func (a *App) updateStudent() error {
	if err := a.guard(a.session.RequireAdmin()); err != nil {
		return err
	}
	title := a.p.Sprintf("Update scores")

	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("ID of the student to update (Esc to go back):"))
		if err != nil {
			return err
		}
		id, ok := out.Get()
		if !ok {
			return nil
		}

		st, found := a.book.Student(id)
		if !found {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("No student with that ID!"))
			continue
		}

		context := []string{
			a.p.Sprintf("Current record:"),
			a.p.Sprintf("ID: %s", id),
			a.p.Sprintf("Name: %s", st.Name),
			a.p.Sprintf("Chinese: %s", formatScore(st.Chinese)),
			a.p.Sprintf("Math: %s", formatScore(st.Math)),
			a.p.Sprintf("English: %s", formatScore(st.English)),
			"",
			a.p.Sprintf("Enter new scores (blank keeps the current value, Esc to go back):"),
		}
		base := st.Scores()
		scoresOut, err := a.readScores(title, &base, context)
		if err != nil {
			return err
		}
		scores, ok := scoresOut.Get()
		if !ok {
			return nil
		}

		if _, err := a.book.UpdateScores(id, scores); err != nil {
			return fmt.Errorf("update %s: %w", id, err)
		}
		a.log.Info("student updated", "id", id)
		saveErr := a.persist()
		a.prompt.Flash(tui.ToneSuccess, a.p.Sprintf("Student record updated!"))
		return saveErr
	}
}
