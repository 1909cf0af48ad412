package app

import (
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/types"
)

// Admin menu entries, in display order
const (
	adminAdd = iota
	adminDelete
	adminQuery
	adminUpdate
	adminList
	adminResetPassword
	adminChangePassword
	adminLogout
	adminExit
)

// Student menu entries, in display order
const (
	studentQuery = iota
	studentChangePassword
	studentLogout
	studentExit
)

func (a *App) adminOptions() []string {
	return []string{
		a.p.Sprintf("1. Add student"),
		a.p.Sprintf("2. Delete student"),
		a.p.Sprintf("3. Query student"),
		a.p.Sprintf("4. Update scores"),
		a.p.Sprintf("5. Show all students"),
		a.p.Sprintf("6. Reset student password"),
		a.p.Sprintf("7. Change password"),
		a.p.Sprintf("8. Log out"),
		a.p.Sprintf("0. Exit"),
	}
}

func (a *App) studentOptions() []string {
	return []string{
		a.p.Sprintf("1. My scores"),
		a.p.Sprintf("2. Change password"),
		a.p.Sprintf("3. Log out"),
		a.p.Sprintf("0. Exit"),
	}
}

// mainMenu runs the logged-in menu until logout (false) or confirmed
// exit (true)
func (a *App) mainMenu() (exit bool, err error) {
	for {
		admin := a.session.IsAdmin()

		title, options := a.p.Sprintf("Student menu"), a.studentOptions()
		if admin {
			title, options = a.p.Sprintf("Administrator menu"), a.adminOptions()
		}

		out, err := a.prompt.Menu(title, options)
		if err != nil {
			return false, err
		}

		choice, ok := out.Get()
		if !ok {
			back, err := a.prompt.Confirm(a.p.Sprintf("Return to the login screen?"))
			if err != nil {
				return false, err
			}
			if back {
				a.logout()
				return false, nil
			}
			continue
		}

		var done bool
		if admin {
			exit, done, err = a.dispatchAdmin(choice)
		} else {
			exit, done, err = a.dispatchStudent(choice)
		}
		if err != nil {
			if isFatal(err) {
				return false, err
			}
			a.log.Debug("operation ended with error", "error", err)
		}
		if done {
			return exit, nil
		}
	}
}

// dispatchAdmin runs one admin menu entry. done ends the menu loop.
func (a *App) dispatchAdmin(choice int) (exit, done bool, err error) {
	switch choice {
	case adminAdd:
		return false, false, a.addStudent()
	case adminDelete:
		return false, false, a.deleteStudent()
	case adminQuery:
		return false, false, a.queryStudent()
	case adminUpdate:
		return false, false, a.updateStudent()
	case adminList:
		return false, false, a.listStudents()
	case adminResetPassword:
		return false, false, a.resetPassword()
	case adminChangePassword:
		return false, false, a.changePassword()
	case adminLogout:
		a.logout()
		return false, true, nil
	case adminExit:
		ok, err := a.confirmExit()
		return ok, ok, err
	}
	return false, false, nil
}

func (a *App) dispatchStudent(choice int) (exit, done bool, err error) {
	switch choice {
	case studentQuery:
		return false, false, a.queryStudent()
	case studentChangePassword:
		return false, false, a.changePassword()
	case studentLogout:
		a.logout()
		return false, true, nil
	case studentExit:
		ok, err := a.confirmExit()
		return ok, ok, err
	}
	return false, false, nil
}

// confirmExit asks before exiting. The administrator must also re-enter the
// admin password; a failed check keeps the app running.
func (a *App) confirmExit() (bool, error) {
	yes, err := a.prompt.Confirm(a.p.Sprintf("Exit the system?"))
	if err != nil || !yes {
		return false, err
	}
	if !a.session.IsAdmin() {
		return true, nil
	}

	out, err := a.prompt.Masked(a.p.Sprintf("Exit"), a.p.Sprintf("Enter the administrator password to confirm:"))
	if err != nil {
		return false, err
	}
	pw, ok := out.Get()
	if ok {
		if role, err := a.book.Authenticate(store.AdminID, pw); err == nil && role == types.RoleAdmin {
			return true, nil
		}
	}
	a.log.Warn("exit refused: admin password check failed")
	a.prompt.Flash(tui.ToneError, a.p.Sprintf("Administrator password check failed!"))
	return false, nil
}

func (a *App) logout() {
	id, _ := a.session.Identity()
	a.session.Logout()
	a.log.Info("logout", "identity", id)
	a.prompt.Flash(tui.ToneNormal, a.p.Sprintf("Logged out"))
}
