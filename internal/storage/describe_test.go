package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
	"testing"
)

func TestDescribe(t *testing.T) {
	var syntaxErr error
	if err := json.Unmarshal([]byte(`{"students": `), &struct{}{}); err != nil {
		syntaxErr = err
	}

	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{
			name:     "invalid json",
			err:      Wrap("load", syntaxErr),
			wantText: "Data file is not valid JSON",
		},
		{
			name:     "read-only errno",
			err:      Wrap("save", &fs.PathError{Op: "open", Path: "/data.json", Err: syscall.EROFS}),
			wantText: "Storage is read-only",
		},
		{
			name:     "readonly sqlite",
			err:      Wrap("save", errors.New("attempt to write a readonly database")),
			wantText: "Storage is read-only",
		},
		{
			name:     "permission denied",
			err:      Wrap("save", &fs.PathError{Op: "open", Path: "/data.json", Err: syscall.EACCES}),
			wantText: "Permission denied",
		},
		{
			name:     "disk full",
			err:      Wrap("save", fmt.Errorf("write: %w", syscall.ENOSPC)),
			wantText: "Disk is full",
		},
		{
			name:     "directory",
			err:      Wrap("load", &fs.PathError{Op: "read", Path: "/tmp", Err: syscall.EISDIR}),
			wantText: "Data path is a directory",
		},
		{
			name:     "locked",
			err:      Wrap("save", errors.New("database is locked")),
			wantText: "Database is locked",
		},
		{
			name:     "not a database",
			err:      Wrap("load", errors.New("file is not a database")),
			wantText: "Database file is damaged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Describe(tt.err)
			if !ok {
				t.Fatalf("Describe(%v) not categorized", tt.err)
			}
			if !strings.HasPrefix(msg, tt.wantText) {
				t.Errorf("Describe(%v) = %q, want prefix %q", tt.err, msg, tt.wantText)
			}
		})
	}
}

func TestDescribe_Uncategorized(t *testing.T) {
	for _, err := range []error{nil, errors.New("read-only"), errors.New("disk on fire")} {
		if msg, ok := Describe(err); ok {
			t.Errorf("Describe(%v) = %q, want uncategorized", err, msg)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap("save", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
	cause := errors.New("boom")
	err := Wrap("save", cause)
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, cause) {
		t.Errorf("Wrap lost an error: %v", err)
	}
}
