package app

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/storage/jsonfile"
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/tui/tuitest"
	"github.com/studiowebux/gradebook/internal/types"
)

func TestScenario_AddThenQuery(t *testing.T) {
	backend := newMemBackend()
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminAdd).Type("S1").Type("Alice").Type("90").Type("80").Type("70").
		Select(adminQuery).Type("S1").Enter()
	a := newTestApp(t, term, backend)

	err := run(t, a, term)
	tuitest.AssertErrorIs(t, err, tui.ErrClosed)

	st, ok := a.Book().Student("S1")
	if !ok {
		t.Fatalf("S1 missing\n%s", term.Dump())
	}
	if math.Abs(st.Total-240) > 1e-9 || math.Abs(st.Average-80) > 1e-9 {
		t.Errorf("S1 = %+v", st)
	}
	for _, want := range []string{"Total: 240", "Average: 80.00", "Name: Alice"} {
		if !term.Saw(want) {
			t.Errorf("query screen missing %q\n%s", want, term.Dump())
		}
	}
	if !term.Saw("Initial password is s123456") {
		t.Error("add confirmation not shown")
	}

	// committed to the backend together with its account
	if !backend.snap.Students.Has("S1") || backend.snap.Accounts["S1"].Role != types.RoleStudent {
		t.Errorf("backend = %+v", backend.snap)
	}
}

func TestScenario_StudentChangesPassword(t *testing.T) {
	backend := newMemBackend()
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminAdd).Type("S1").Type("Alice").Type("90").Type("80").Type("70").
		Select(adminLogout)
	loginStudent(term, "S1").
		Select(studentChangePassword).Type("s123456").Type("abc").Type("abc").
		Select(studentLogout)
	// old password is refused, retry with the new one
	loginStudent(term, "S1").Yes().Type("S1").Type("abc")
	a := newTestApp(t, term, backend)

	run(t, a, term)

	if !term.Saw("Password changed!") {
		t.Errorf("change not confirmed\n%s", term.Dump())
	}
	if !term.Saw("Wrong username or password! Retry?") {
		t.Error("old password was accepted")
	}
	if id, ok := a.session.Identity(); !ok || id != "S1" {
		t.Errorf("session = %q, %v; want S1 logged in", id, ok)
	}
	if _, err := a.Book().Authenticate("S1", "abc"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := a.Book().Authenticate("S1", store.DefaultStudentPassword); err == nil {
		t.Error("old password still valid")
	}
}

func TestScenario_StudentCannotDelete(t *testing.T) {
	backend := newMemBackend()
	withStudent(t, backend, "S1", "Alice", types.Scores{Chinese: 90, Math: 80, English: 70})
	term := tuitest.New(80, 24)
	a := newTestApp(t, term, backend)
	if err := a.load(); err != nil {
		t.Fatal(err)
	}
	a.session.Login("S1", types.RoleStudent)

	err := a.deleteStudent()
	tuitest.AssertErrorIs(t, err, auth.ErrPermission)

	if !a.Book().HasStudent("S1") || !a.Book().HasAccount("S1") {
		t.Error("store changed")
	}
	tuitest.AssertField(t, "saves", backend.saves, 0)
	if !term.Saw("Only the administrator can do this!") {
		t.Error("permission message not shown")
	}
}

func TestScenario_EscapeMidAdd(t *testing.T) {
	backend := newMemBackend()
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminAdd).Type("S9").Type("Bob").Esc()
	a := newTestApp(t, term, backend)

	run(t, a, term)

	if a.Book().HasStudent("S9") || a.Book().HasAccount("S9") {
		t.Error("cancelled add left a record")
	}
	tuitest.AssertField(t, "saves", backend.saves, 0)
}

func TestGuards_NotLoggedIn(t *testing.T) {
	term := tuitest.New(80, 24)
	a := newTestApp(t, term, newMemBackend())
	if err := a.load(); err != nil {
		t.Fatal(err)
	}

	ops := map[string]func() error{
		"add":            a.addStudent,
		"delete":         a.deleteStudent,
		"update":         a.updateStudent,
		"query":          a.queryStudent,
		"list":           a.listStudents,
		"resetPassword":  a.resetPassword,
		"changePassword": a.changePassword,
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, auth.ErrNotLoggedIn) {
			t.Errorf("%s: err = %v, want ErrNotLoggedIn", name, err)
		}
	}
	tuitest.AssertField(t, "keys read", term.Remaining(), 0)
	if !term.Saw("Please log in first!") {
		t.Error("guard message not shown")
	}
}

func TestGuards_StudentAdminOnly(t *testing.T) {
	backend := newMemBackend()
	withStudent(t, backend, "S1", "Alice", types.Scores{})
	a := newTestApp(t, tuitest.New(80, 24), backend)
	if err := a.load(); err != nil {
		t.Fatal(err)
	}
	a.session.Login("S1", types.RoleStudent)

	for name, op := range map[string]func() error{
		"add":           a.addStudent,
		"update":        a.updateStudent,
		"list":          a.listStudents,
		"resetPassword": a.resetPassword,
	} {
		if err := op(); !errors.Is(err, auth.ErrPermission) {
			t.Errorf("%s: err = %v, want ErrPermission", name, err)
		}
	}
}

func TestLogin_WrongPasswordNeverMutates(t *testing.T) {
	backend := newMemBackend()
	withStudent(t, backend, "S1", "Alice", types.Scores{})
	term := tuitest.New(80, 24).
		Type("S1").Type("nope").Yes().
		Type("ghost").Type("s123456").Yes().
		Type("admin").Type("wrong").No().
		// login failed menu: escape retries
		Esc().
		Type("S1").Type("bad").No()
	a := newTestApp(t, term, backend)

	run(t, a, term)

	before := copySnapshot(backend.snap)
	after := a.Book().Snapshot()
	for id, acc := range after.Accounts {
		if id == store.AdminID {
			continue
		}
		if before.Accounts[id] != acc {
			t.Errorf("account %s changed", id)
		}
	}
	if _, ok := a.session.Identity(); ok {
		t.Error("session set after failed logins")
	}
	tuitest.AssertField(t, "saves", backend.saves, 0)
	tuitest.AssertField(t, "login failed menus", term.Count("Login failed"), 2)
	// unknown user and wrong password read the same
	tuitest.AssertField(t, "failure prompts", term.Count("Wrong username or password! Retry?"), 4)
}

func TestLogin_EscapeAbortsAttempt(t *testing.T) {
	term := tuitest.New(80, 24).Type("admin").Esc().Select(1)
	a := newTestApp(t, term, newMemBackend())

	err := run(t, a, term)
	tuitest.AssertNoError(t, err)
	if !term.Saw("Login failed") {
		t.Error("escape in the password field should end the attempt")
	}
	if !term.Saw("Goodbye!") {
		t.Error("exit from the login failed menu should say goodbye")
	}
}

func TestMenu_EscapeAsksToLogOut(t *testing.T) {
	term := loginAdmin(tuitest.New(80, 24)).Esc().No().Esc().Yes()
	a := newTestApp(t, term, newMemBackend())

	run(t, a, term)

	tuitest.AssertField(t, "logout prompts", term.Count("Return to the login screen?"), 2)
	if !term.Saw("Logged out") {
		t.Errorf("not logged out\n%s", term.Dump())
	}
	if _, ok := a.session.Identity(); ok {
		t.Error("session still set")
	}
}

func TestExit_AdminMustReenterPassword(t *testing.T) {
	backend := newMemBackend()
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminExit).No().
		Select(adminExit).Yes().Type("wrong").
		Select(adminExit).Yes().Type(store.DefaultAdminPassword)
	a := newTestApp(t, term, backend)

	err := run(t, a, term)
	tuitest.AssertNoError(t, err)

	tuitest.AssertField(t, "failed checks", term.Count("Administrator password check failed!"), 1)
	if !term.Saw("Goodbye!") {
		t.Error("goodbye not shown")
	}
	tuitest.AssertField(t, "saves on exit", backend.saves, 1)
	tuitest.AssertField(t, "remaining keys", term.Remaining(), 0)
}

func TestExit_StudentOnlyConfirms(t *testing.T) {
	backend := newMemBackend()
	withStudent(t, backend, "S1", "Alice", types.Scores{})
	term := loginStudent(tuitest.New(80, 24), "S1").Select(studentExit).Yes()
	a := newTestApp(t, term, backend)

	err := run(t, a, term)
	tuitest.AssertNoError(t, err)
	if !term.Saw("Goodbye!") {
		t.Error("goodbye not shown")
	}
}

func TestMenu_StudentSeesOwnScores(t *testing.T) {
	backend := newMemBackend()
	withStudent(t, backend, "S1", "Alice", types.Scores{Chinese: 90, Math: 80, English: 70})
	withStudent(t, backend, "S2", "Bob", types.Scores{Chinese: 10, Math: 20, English: 30})
	term := loginStudent(tuitest.New(80, 24), "S1").Select(studentQuery).Enter()
	a := newTestApp(t, term, backend)

	run(t, a, term)

	if !term.Saw("Name: Alice") || term.Saw("Name: Bob") {
		t.Errorf("student query showed the wrong record\n%s", term.Dump())
	}
	if !term.Saw("Student menu") || term.Saw("Administrator menu") {
		t.Error("student got the wrong menu")
	}
}

func TestLoad_FailureUsesBaseline(t *testing.T) {
	backend := newMemBackend()
	backend.loadErr = errors.New("disk on fire")
	term := loginAdmin(tuitest.New(80, 24))
	a := newTestApp(t, term, backend)

	run(t, a, term)

	if !term.Saw("Failed to load data: disk on fire") {
		t.Error("load failure not reported")
	}
	if !a.session.IsAdmin() {
		t.Error("seeded admin could not log in")
	}
	tuitest.AssertField(t, "students", a.Book().Len(), 0)
}

func TestPersist_FailureKeepsChange(t *testing.T) {
	backend := newMemBackend()
	backend.saveErr = errors.New("read-only")
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminAdd).Type("S1").Type("Alice").Type("1").Type("2").Type("3")
	a := newTestApp(t, term, backend)

	run(t, a, term)

	if !term.Saw("Failed to save data: read-only") {
		t.Error("save failure not reported")
	}
	if !a.Book().HasStudent("S1") {
		t.Error("in-memory change was rolled back")
	}
	if !term.Saw("Student Alice added!") {
		t.Error("success still expected after a failed save")
	}
}

func TestPersist_OverflowingScoresNeverReachTheFile(t *testing.T) {
	backend := jsonfile.New(filepath.Join(t.TempDir(), "data.json"))
	huge := "1.7e308"
	term := loginAdmin(tuitest.New(80, 24)).
		Select(adminAdd).Type("S1").Type("Alice").
		Type(huge).Type(huge).Type(huge).
		Type("90").Type("80").Type("70")
	a := New(term, Options{
		Backend: backend,
		Hasher:  testHasher(t),
		Pause:   func(time.Duration) {},
	})

	run(t, a, term)

	tuitest.AssertField(t, "validation messages", term.Count("Please enter valid numeric scores!"), 1)
	if term.Saw("Failed to save data") {
		t.Errorf("save failed:\n%s", term.Dump())
	}

	snap, err := backend.Load()
	tuitest.AssertNoError(t, err)
	st, ok := snap.Students.Get("S1")
	if !ok || st.Total != 240 || math.IsInf(st.Average, 0) {
		t.Errorf("saved S1 = %+v, %v", st, ok)
	}
}
