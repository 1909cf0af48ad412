// Package sqlite persists the gradebook in a SQLite database. Each save
// replaces both tables inside one transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/gradebook/internal/migrations"
	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/types"
)

// Backend is a storage.Backend over a SQLite file
type Backend struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations
func Open(path string) (*Backend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, storage.Wrap("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storage.Wrap("open database", err)
	}
	// a single connection keeps :memory: databases alive across calls
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storage.Wrap("connect to database", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, storage.Wrap("run migrations", err)
	}

	return &Backend{db: db}, nil
}

// Load reads every student in insertion order and every account
func (b *Backend) Load() (types.Snapshot, error) {
	snap := types.NewSnapshot()

	rows, err := sq.Select("id", "name", "chinese", "math", "english").
		From("students").
		OrderBy("seq").
		RunWith(b.db).
		Query()
	if err != nil {
		return snap, storage.Wrap("query students", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		var scores types.Scores
		if err := rows.Scan(&id, &name, &scores.Chinese, &scores.Math, &scores.English); err != nil {
			return types.NewSnapshot(), storage.Wrap("scan student", err)
		}
		snap.Students.Set(id, types.NewStudent(name, scores))
	}
	if err := rows.Err(); err != nil {
		return types.NewSnapshot(), storage.Wrap("iterate students", err)
	}

	accRows, err := sq.Select("identity", "password", "role").
		From("accounts").
		RunWith(b.db).
		Query()
	if err != nil {
		return types.NewSnapshot(), storage.Wrap("query accounts", err)
	}
	defer accRows.Close()

	for accRows.Next() {
		var identity string
		var acc types.Account
		if err := accRows.Scan(&identity, &acc.Password, &acc.Role); err != nil {
			return types.NewSnapshot(), storage.Wrap("scan account", err)
		}
		snap.Accounts[identity] = acc
	}
	if err := accRows.Err(); err != nil {
		return types.NewSnapshot(), storage.Wrap("iterate accounts", err)
	}

	return snap, nil
}

// Save replaces the stored state with snap
func (b *Backend) Save(snap types.Snapshot) error {
	snap.Normalize()

	tx, err := b.db.Begin()
	if err != nil {
		return storage.Wrap("begin transaction", err)
	}
	defer tx.Rollback()

	if err := replaceAll(tx, snap); err != nil {
		return storage.Wrap("save snapshot", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Wrap("commit transaction", err)
	}
	return nil
}

func replaceAll(tx *sql.Tx, snap types.Snapshot) error {
	if _, err := sq.Delete("students").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("clear students: %w", err)
	}
	if _, err := sq.Delete("accounts").RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}

	// rows are inserted one by one so seq follows insertion order
	for _, e := range snap.Students.Entries() {
		_, err := sq.Insert("students").
			Columns("id", "name", "chinese", "math", "english", "total", "average").
			Values(e.ID, e.Name, e.Chinese, e.Math, e.English, e.Total, e.Average).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("insert student %s: %w", e.ID, err)
		}
	}

	for identity, acc := range snap.Accounts {
		_, err := sq.Insert("accounts").
			Columns("identity", "password", "role").
			Values(identity, acc.Password, string(acc.Role)).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("insert account %s: %w", identity, err)
		}
	}

	return nil
}

// Close closes the database
func (b *Backend) Close() error {
	return b.db.Close()
}
