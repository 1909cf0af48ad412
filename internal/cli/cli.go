package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/filter"
	"github.com/studiowebux/gradebook/internal/roster"
	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/store"
	"github.com/studiowebux/gradebook/internal/types"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	// ErrPasswordMismatch is returned when the two new passwords differ
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmptyPassword is returned when no password was entered
	ErrEmptyPassword = errors.New("password is empty")
)

// Output formats accepted by Roster
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options contains what every operator command needs
type Options struct {
	Backend       storage.Backend
	Hasher        auth.Hasher
	AdminPassword string
	Printer       *message.Printer
	Logger        *slog.Logger
	Out           io.Writer // command output
	Prompt        io.Writer // password prompts, usually stderr
}

// RosterOptions contains options for printing the roster
type RosterOptions struct {
	OutputFormat string // text, json, yaml
	Filter       string // JMESPath expression, json/yaml only
	Query        string // $(command) run on the formatted output
	Color        bool   // highlight json/yaml output
}

// Roster prints every student record in insertion order after checking the
// administrator password
func Roster(ctx context.Context, opts Options, ro RosterOptions) error {
	if ro.OutputFormat == "" {
		ro.OutputFormat = FormatText
	}
	if err := checkRosterOptions(ro); err != nil {
		return err
	}

	book, err := opts.open()
	if err != nil {
		return err
	}

	password, err := promptPassword(opts.Prompt, opts.printer().Sprintf("Administrator password: "))
	if err != nil {
		return err
	}
	if role, err := book.Authenticate(store.AdminID, password); err != nil || role != types.RoleAdmin {
		opts.logger().Warn("roster: administrator password rejected")
		return auth.ErrBadCredentials
	}

	output, err := FormatRoster(book.Students(), opts.printer(), ro)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if ro.Query != "" {
		output, err = filter.Pipe(ctx, output, ro.Query)
		if err != nil {
			return fmt.Errorf("failed to execute query shell command: %w", err)
		}
		output += "\n"
	} else if ro.Color && ro.OutputFormat != FormatText {
		output = highlight(output, ro.OutputFormat)
	}

	_, err = fmt.Fprint(opts.Out, output)
	return err
}

// FormatRoster renders entries in the requested format. A filter narrows the
// json/yaml document before it is encoded.
func FormatRoster(entries []types.StudentEntry, p *message.Printer, ro RosterOptions) (string, error) {
	if err := checkRosterOptions(ro); err != nil {
		return "", err
	}

	var doc any = entries
	if ro.Filter != "" {
		filtered, err := filter.Search(entries, ro.Filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		doc = filtered
	}

	switch ro.OutputFormat {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		var sb strings.Builder
		sb.WriteString(strings.TrimRight(roster.Header(p), " "))
		sb.WriteString("\n")
		sb.WriteString(roster.Separator())
		sb.WriteString("\n")
		for _, row := range roster.Rows(entries) {
			sb.WriteString(strings.TrimRight(row, " "))
			sb.WriteString("\n")
		}
		return sb.String(), nil
	}
}

// ResetPassword sets a new password for any account, the administrator's
// included, and saves the store
func ResetPassword(opts Options, username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	book, err := opts.open()
	if err != nil {
		return err
	}
	if !book.HasAccount(username) {
		return fmt.Errorf("account %w: %s", store.ErrNotFound, username)
	}

	p := opts.printer()
	password, err := promptPassword(opts.Prompt, p.Sprintf("New password: "))
	if err != nil {
		return err
	}
	if password == "" {
		return ErrEmptyPassword
	}
	again, err := promptPassword(opts.Prompt, p.Sprintf("New password again: "))
	if err != nil {
		return err
	}
	if password != again {
		return ErrPasswordMismatch
	}

	if err := book.SetPassword(username, password); err != nil {
		return err
	}
	if err := opts.Backend.Save(book.Snapshot()); err != nil {
		return err
	}
	opts.logger().Info("password reset from the command line", "identity", username)

	_, err = fmt.Fprintln(opts.Out, p.Sprintf("Password of user %s has been reset", username))
	return err
}

// open loads the store. Unlike the interactive program a failed load is an
// error here, because a save would overwrite the unreadable data.
func (o Options) open() (*store.Book, error) {
	snap, err := o.Backend.Load()
	if err != nil {
		return nil, err
	}
	return store.New(snap, o.Hasher, o.AdminPassword)
}

func (o Options) printer() *message.Printer {
	if o.Printer == nil {
		return message.NewPrinter(language.English)
	}
	return o.Printer
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func checkRosterOptions(ro RosterOptions) error {
	switch ro.OutputFormat {
	case "", FormatText:
		if ro.Filter != "" {
			return errors.New("--filter needs json or yaml output")
		}
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (json/yaml/text)", ro.OutputFormat)
	}
	if ro.Filter != "" && !filter.IsValidJMESPath(ro.Filter) {
		return fmt.Errorf("invalid JMESPath expression '%s'", ro.Filter)
	}
	if ro.Query != "" && !filter.IsShellCommand(ro.Query) {
		return errors.New("--query must be a shell command: $(command)")
	}
	return nil
}

// promptPassword reads a password from the terminal without echo
func promptPassword(w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pwd), nil
}

// highlight colours a json or yaml document for the terminal. The input is
// returned unchanged if chroma cannot format it.
func highlight(source, format string) string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, source, format, "terminal256", "monokai"); err != nil {
		return source
	}
	return sb.String()
}
