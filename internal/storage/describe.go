package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// Describe turns a load or save failure into an actionable message. The
// returned text is an English message key; ok is false when the error does
// not match a known category and its own text should be shown instead.
func Describe(err error) (msg string, ok bool) {
	if err == nil {
		return "", false
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "Data file is not valid JSON - fix or move it away to start over", true
	}

	errLower := strings.ToLower(err.Error())

	// Read-only before permission: a read-only mount can also report EPERM
	if errors.Is(err, syscall.EROFS) ||
		strings.Contains(errLower, "read-only file system") ||
		strings.Contains(errLower, "readonly database") {
		return "Storage is read-only - choose a writable data location", true
	}

	if errors.Is(err, fs.ErrPermission) {
		return "Permission denied - check the permissions of the data file and its directory", true
	}

	if errors.Is(err, syscall.ENOSPC) ||
		strings.Contains(errLower, "no space left") ||
		strings.Contains(errLower, "database or disk is full") {
		return "Disk is full - free some space and try again", true
	}

	if errors.Is(err, syscall.EISDIR) || strings.Contains(errLower, "is a directory") {
		return "Data path is a directory - point the data setting at a file", true
	}

	if strings.Contains(errLower, "database is locked") ||
		strings.Contains(errLower, "database table is locked") {
		return "Database is locked by another program - close it and try again", true
	}

	if strings.Contains(errLower, "file is not a database") ||
		strings.Contains(errLower, "malformed") {
		return "Database file is damaged or not a SQLite database", true
	}

	return "", false
}
