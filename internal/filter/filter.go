package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
)

const (
	// QueryShellTimeout is the maximum time allowed for query shell command execution
	QueryShellTimeout = 30 * time.Second
)

var (
	// Shell command pattern: $(command)
	shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)
)

// Document is JSON-shaped data as produced by encoding/json into an any
type Document = any

// Normalize converts v into a Document by a JSON round trip, so struct
// tags decide the field names an expression sees
func Normalize(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

// Search applies a JMESPath expression to v
// e.g. [?average > `80`].id
func Search(v any, expression string) (Document, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	doc, err := Normalize(v)
	if err != nil {
		return nil, err
	}

	result, err := jp.Search(doc)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// Pipe runs a $(...) shell command with body on stdin and returns its output.
// Anything that is not a shell command is an error.
func Pipe(ctx context.Context, body string, query string) (string, error) {
	matches := shellPattern.FindStringSubmatch(query)
	if len(matches) < 2 {
		return "", fmt.Errorf("not a shell command: %s (use $(command))", query)
	}
	command := matches[1]

	ctx, cancel := context.WithTimeout(ctx, QueryShellTimeout)
	defer cancel()

	// Use sh -c to execute the command
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(body)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := err.Error()
		if stderr.Len() > 0 {
			errMsg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, errMsg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// IsShellCommand checks if a query is a shell command (starts with $(...))
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}
