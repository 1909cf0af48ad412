package app

import (
	"errors"
	"testing"
	"time"

	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/tui/tuitest"
	"github.com/studiowebux/gradebook/internal/types"
)

// memBackend is an in-memory storage.Backend
type memBackend struct {
	snap    types.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{snap: types.NewSnapshot()}
}

func (m *memBackend) Load() (types.Snapshot, error) {
	if m.loadErr != nil {
		return types.NewSnapshot(), m.loadErr
	}
	return copySnapshot(m.snap), nil
}

func (m *memBackend) Save(snap types.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = copySnapshot(snap)
	return nil
}

func (m *memBackend) Close() error { return nil }

func copySnapshot(s types.Snapshot) types.Snapshot {
	s.Normalize()
	out := types.Snapshot{Students: s.Students.Clone(), Accounts: make(map[string]types.Account, len(s.Accounts))}
	for k, v := range s.Accounts {
		out.Accounts[k] = v
	}
	return out
}

func testHasher(t *testing.T) auth.Hasher {
	t.Helper()
	h, err := auth.NewHasher(auth.SchemeMD5, 0)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

// withStudent seeds the backend with a record and its account
func withStudent(t *testing.T, b *memBackend, id, name string, scores types.Scores) {
	t.Helper()
	digest, err := testHasher(t).Hash(store.DefaultStudentPassword)
	if err != nil {
		t.Fatal(err)
	}
	b.snap.Students.Set(id, types.NewStudent(name, scores))
	b.snap.Accounts[id] = types.Account{Password: digest, Role: types.RoleStudent}
}

func newTestApp(t *testing.T, term *tuitest.Script, backend *memBackend) *App {
	t.Helper()
	return New(term, Options{
		Backend: backend,
		Hasher:  testHasher(t),
		Pause:   func(time.Duration) {},
	})
}

// run drives the app until the script runs out of keys or the user exits
func run(t *testing.T, a *App, term *tuitest.Script) error {
	t.Helper()
	err := a.Run()
	if err != nil && !errors.Is(err, tui.ErrClosed) {
		t.Fatalf("Run: %v\n%s", err, term.Dump())
	}
	return err
}

func loginAdmin(s *tuitest.Script) *tuitest.Script {
	return s.Type(store.AdminID).Type(store.DefaultAdminPassword)
}

func loginStudent(s *tuitest.Script, id string) *tuitest.Script {
	return s.Type(id).Type(store.DefaultStudentPassword)
}
