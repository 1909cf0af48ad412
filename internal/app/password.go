package app

import (
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
)

// resetPassword lets the administrator set a new password on another
// account without knowing the old one
func (a *App) resetPassword() error {
	if err := a.guard(a.session.RequireAdmin()); err != nil {
		return err
	}
	title := a.p.Sprintf("Reset student password")

	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("Username whose password to reset (Esc to go back):"))
		if err != nil {
			return err
		}
		identity, ok := out.Get()
		if !ok {
			return nil
		}

		if identity == store.AdminID {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("Use Change password for the administrator account!"))
			continue
		}
		if !a.book.HasAccount(identity) {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("That user does not exist!"))
			continue
		}

		pwOut, err := a.prompt.Masked(title, a.p.Sprintf("New password (Esc to go back):"))
		if err != nil {
			return err
		}
		password, ok := pwOut.Get()
		if !ok {
			continue
		}

		if err := a.book.ResetPassword(identity, password); err != nil {
			return err
		}
		a.log.Info("password reset", "identity", identity)
		saveErr := a.persist()
		a.prompt.Flash(tui.ToneSuccess, a.p.Sprintf("Password of user %s has been reset", identity))
		return saveErr
	}
}

// changePassword changes the logged-in account's own password. The current
// password must be given, and the new one twice.
func (a *App) changePassword() error {
	if err := a.guard(a.session.RequireAuthenticated()); err != nil {
		return err
	}
	identity, _ := a.session.Identity()
	title := a.p.Sprintf("Change password")

	for {
		out, err := a.prompt.Masked(title, a.p.Sprintf("Current password (Esc to go back):"))
		if err != nil {
			return err
		}
		current, ok := out.Get()
		if !ok {
			return nil
		}
		if _, err := a.book.Authenticate(identity, current); err != nil {
			a.log.Info("password change refused", "identity", identity)
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("Current password is incorrect!"))
			continue
		}

		newOut, err := a.prompt.Masked(title, a.p.Sprintf("New password (Esc to go back):"))
		if err != nil {
			return err
		}
		next, ok := newOut.Get()
		if !ok {
			continue
		}

		againOut, err := a.prompt.Masked(title, a.p.Sprintf("New password again (Esc to go back):"))
		if err != nil {
			return err
		}
		again, ok := againOut.Get()
		if !ok {
			continue
		}

		if next != again {
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("The two new passwords do not match!"))
			continue
		}

		if err := a.book.SetPassword(identity, next); err != nil {
			return err
		}
		a.log.Info("password changed", "identity", identity)
		saveErr := a.persist()
		a.prompt.Flash(tui.ToneSuccess, a.p.Sprintf("Password changed!"))
		return saveErr
	}
}
