package app

import (
	"github.com/studiowebux/gradebook/internal/tui"
)

// login runs the authentication flow. It reports false when the user
// escapes out of a field or declines to retry after a failure.
func (a *App) login() (bool, error) {
	title := a.p.Sprintf("Login")
	for {
		out, err := a.prompt.Line(title, a.p.Sprintf("Username:"))
		if err != nil {
			return false, err
		}
		identity, ok := out.Get()
		if !ok {
			return false, nil
		}

		pwOut, err := a.prompt.Masked(title, a.p.Sprintf("Password:"))
		if err != nil {
			return false, err
		}
		password, ok := pwOut.Get()
		if !ok {
			return false, nil
		}

		role, err := a.book.Authenticate(identity, password)
		if err == nil {
			a.session.Login(identity, role)
			a.log.Info("login", "identity", identity, "role", role)
			a.prompt.Flash(tui.ToneSuccess, a.p.Sprintf("Login successful! Welcome %s", identity))
			return true, nil
		}

		// unknown identity and wrong password look the same
		a.log.Info("login failed", "identity", identity)
		retry, err := a.prompt.Confirm(a.p.Sprintf("Wrong username or password! Retry?"))
		if err != nil {
			return false, err
		}
		if !retry {
			return false, nil
		}
	}
}
