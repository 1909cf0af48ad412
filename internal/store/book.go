// Package store holds the in-memory record and account stores and the
// transactions that keep every student record paired with its account.
package store

import (
	"errors"
	"fmt"

	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/types"
)

const (
	// AdminID is the fixed identity of the administrator account
	AdminID = "admin"
	// DefaultStudentPassword is given to every new student account
	DefaultStudentPassword = "s123456"
	// DefaultAdminPassword seeds the admin account when none exists
	DefaultAdminPassword = "123456"
)

var (
	ErrDuplicate = errors.New("student id already exists")
	ErrNotFound  = errors.New("not found")
	// ErrProtected is returned for operations the admin account must not undergo
	ErrProtected = errors.New("admin account is protected")
)

// Book is the Record Store and Account Store together
type Book struct {
	students *types.StudentTable
	accounts map[string]types.Account
	hasher   auth.Hasher
}

// New builds a book from a loaded snapshot, seeding the admin account with
// adminPassword if the snapshot has none. The snapshot is copied before
// the derived fields are recomputed, the caller's table is left untouched.
func New(snap types.Snapshot, hasher auth.Hasher, adminPassword string) (*Book, error) {
	if snap.Students != nil {
		snap.Students = snap.Students.Clone()
	}
	snap.Normalize()

	b := &Book{
		students: snap.Students,
		accounts: make(map[string]types.Account, len(snap.Accounts)),
		hasher:   hasher,
	}
	for id, acc := range snap.Accounts {
		b.accounts[id] = acc
	}

	if acc, ok := b.accounts[AdminID]; !ok || acc.Role != types.RoleAdmin {
		digest, err := hasher.Hash(adminPassword)
		if err != nil {
			return nil, err
		}
		b.accounts[AdminID] = types.Account{Password: digest, Role: types.RoleAdmin}
	}

	return b, nil
}

// Snapshot returns a deep copy of the current state for persisting
func (b *Book) Snapshot() types.Snapshot {
	snap := types.Snapshot{
		Students: b.students.Clone(),
		Accounts: make(map[string]types.Account, len(b.accounts)),
	}
	for id, acc := range b.accounts {
		snap.Accounts[id] = acc
	}
	return snap
}

// HasStudent reports whether a record with id exists
func (b *Book) HasStudent(id string) bool {
	return b.students.Has(id)
}

// Student returns a copy of the record for id
func (b *Book) Student(id string) (types.Student, bool) {
	return b.students.Get(id)
}

// Students returns all records in insertion order
func (b *Book) Students() []types.StudentEntry {
	return b.students.Entries()
}

// StudentIDs returns all student ids in insertion order
func (b *Book) StudentIDs() []string {
	return b.students.IDs()
}

// Len returns the number of student records
func (b *Book) Len() int {
	return b.students.Len()
}

// IsAvailable reports whether id can be used for a new student: it must not
// name an existing record or an existing account
func (b *Book) IsAvailable(id string) bool {
	if b.students.Has(id) {
		return false
	}
	_, taken := b.accounts[id]
	return !taken
}

// CreateStudent adds a record together with its student account
func (b *Book) CreateStudent(id, name string, scores types.Scores) error {
	if !b.IsAvailable(id) {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	digest, err := b.hasher.Hash(DefaultStudentPassword)
	if err != nil {
		return err
	}
	b.students.Set(id, types.NewStudent(name, scores))
	b.accounts[id] = types.Account{Password: digest, Role: types.RoleStudent}
	return nil
}

// DeleteStudent removes a record and its account, returning the removed record
func (b *Book) DeleteStudent(id string) (types.Student, error) {
	st, ok := b.students.Get(id)
	if !ok {
		return types.Student{}, fmt.Errorf("student %w: %s", ErrNotFound, id)
	}
	b.students.Delete(id)
	if acc, ok := b.accounts[id]; ok && acc.Role == types.RoleStudent {
		delete(b.accounts, id)
	}
	return st, nil
}

// UpdateScores replaces the scores of an existing record
func (b *Book) UpdateScores(id string, scores types.Scores) (types.Student, error) {
	st, ok := b.students.Get(id)
	if !ok {
		return types.Student{}, fmt.Errorf("student %w: %s", ErrNotFound, id)
	}
	st.SetScores(scores)
	b.students.Set(id, st)
	return st, nil
}

// HasAccount reports whether identity has an account
func (b *Book) HasAccount(identity string) bool {
	_, ok := b.accounts[identity]
	return ok
}

// Authenticate checks credentials and returns the account's role. Unknown
// identities and wrong passwords fail the same way.
func (b *Book) Authenticate(identity, password string) (types.Role, error) {
	acc, ok := b.accounts[identity]
	if !ok || !b.hasher.Verify(acc.Password, password) {
		return "", auth.ErrBadCredentials
	}
	return acc.Role, nil
}

// ResetPassword is the administrator's reset of another account. The admin
// account itself is refused; it changes its password with SetPassword after
// proving the current one.
func (b *Book) ResetPassword(identity, password string) error {
	if identity == AdminID {
		return ErrProtected
	}
	return b.SetPassword(identity, password)
}

// SetPassword replaces the password of an existing account
func (b *Book) SetPassword(identity, password string) error {
	acc, ok := b.accounts[identity]
	if !ok {
		return fmt.Errorf("account %w: %s", ErrNotFound, identity)
	}
	digest, err := b.hasher.Hash(password)
	if err != nil {
		return err
	}
	acc.Password = digest
	b.accounts[identity] = acc
	return nil
}
