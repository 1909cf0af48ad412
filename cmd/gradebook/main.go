package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/studiowebux/gradebook/internal/app"
	"github.com/studiowebux/gradebook/internal/auth"
	"github.com/studiowebux/gradebook/internal/cli"
	"github.com/studiowebux/gradebook/internal/config"
	"github.com/studiowebux/gradebook/internal/i18n"
	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/storage/jsonfile"
	"github.com/studiowebux/gradebook/internal/storage/sqlite"
	"github.com/studiowebux/gradebook/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Student grade manager",
	Long: `gradebook is a full-screen terminal grade manager with an administrator
and student accounts.

Run without arguments to start the interactive program. The administrator
logs in as "admin" (initial password 123456) and manages student records;
students log in with their student ID (initial password s123456).

Examples:
  gradebook                              # Start the interactive program
  gradebook --lang zh                    # Chinese interface
  gradebook --backend sqlite             # Use the SQLite database
  gradebook roster -o json               # Print all records as JSON
  gradebook roster -o json --filter '[?average > ` + "`80`" + `].id'
  gradebook resetpassword --username admin`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print every student record",
	Long: `Print every student record in insertion order after asking for the
administrator password.

json and yaml output can be narrowed with a JMESPath expression (--filter).
--query pipes the formatted output through a shell command: $(command).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoster(cmd)
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "resetpassword",
	Short: "Set a new password for an account",
	Long: `Set a new password for any account, the administrator's included.
The password is prompted twice without echo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResetPassword(cmd)
	},
}

// Flags for every command
var (
	flagConfig  string
	flagData    string
	flagBackend string
	flagLang    string
)

// Flags for roster
var (
	flagOutput string
	flagFilter string
	flagQuery  string
	flagColor  string
)

// Flags for resetpassword
var (
	flagUsername string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Settings file (default ~/.gradebook/settings.jsonc)")
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Data file or database path")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend (json/sqlite)")
	rootCmd.PersistentFlags().StringVarP(&flagLang, "lang", "l", "", "Interface language (en/zh)")

	rosterCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatText, "Output format (json/yaml/text)")
	rosterCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath expression applied to json/yaml output")
	rosterCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Shell command run on the output: $(command)")
	rosterCmd.Flags().StringVar(&flagColor, "color", "auto", "Colour json/yaml output (auto/always/never)")

	resetPasswordCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Account whose password is reset")
	_ = resetPasswordCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}

// environment is everything built from the settings
type environment struct {
	settings *config.Settings
	logger   *slog.Logger
	printer  *message.Printer
	hasher   auth.Hasher
	backend  storage.Backend
	closers  []func() error
}

func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// setup loads the settings, applies the command-line overrides and opens
// the log and the storage backend
func setup(cmd *cobra.Command) (*environment, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.SettingsFile
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		settings.Backend = flagBackend
	}
	if flags.Changed("lang") {
		settings.Language = flagLang
	}
	if flags.Changed("data") {
		if settings.Backend == "sqlite" {
			settings.DatabasePath = flagData
		} else {
			settings.DataFile = flagData
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	env := &environment{settings: settings}

	logFile, err := os.OpenFile(settings.ResolveLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	env.closers = append(env.closers, logFile.Close)
	env.logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: settings.SlogLevel()}))

	if env.printer, err = i18n.Printer(settings.Language); err != nil {
		env.close()
		return nil, err
	}
	if env.hasher, err = auth.NewHasher(auth.Scheme(settings.HashScheme), settings.BcryptCost); err != nil {
		env.close()
		return nil, err
	}

	switch settings.Backend {
	case "sqlite":
		db, err := sqlite.Open(settings.ResolveDatabasePath())
		if err != nil {
			env.close()
			return nil, err
		}
		env.backend = db
	default:
		env.backend = jsonfile.New(settings.ResolveDataFile())
	}
	env.closers = append(env.closers, env.backend.Close)

	env.logger.Info("starting", "version", version, "command", cmd.Name(), "backend", settings.Backend)
	return env, nil
}

// runTUI starts the interactive program
func runTUI(cmd *cobra.Command) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("the interactive program needs a terminal (use the roster command for scripts)")
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	opts := app.Options{
		Backend:       env.backend,
		Hasher:        env.hasher,
		AdminPassword: env.settings.AdminPassword,
		Logger:        env.logger,
		Printer:       env.printer,
		InputWidth:    env.settings.InputWidth,
		MessageDelay:  time.Duration(env.settings.MessageDelayMs) * time.Millisecond,
	}
	if env.settings.MessageDelayMs == 0 {
		opts.Pause = func(time.Duration) {}
	}

	err = tui.NewScreen().Run(cmd.Context(), func(t tui.Terminal) error {
		return app.New(t, opts).Run()
	})
	if err != nil {
		env.logger.Error("terminal program failed", "error", err)
		return err
	}
	env.logger.Info("exited")
	return nil
}

// runRoster prints the roster
func runRoster(cmd *cobra.Command) error {
	color, err := colorOutput(flagColor)
	if err != nil {
		return err
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	return cli.Roster(cmd.Context(), env.cliOptions(), cli.RosterOptions{
		OutputFormat: flagOutput,
		Filter:       flagFilter,
		Query:        flagQuery,
		Color:        color,
	})
}

// runResetPassword resets an account password
func runResetPassword(cmd *cobra.Command) error {
	if !isTerminal(os.Stdin) {
		return errors.New("resetpassword reads the password from a terminal")
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	return cli.ResetPassword(env.cliOptions(), flagUsername)
}

func (e *environment) cliOptions() cli.Options {
	return cli.Options{
		Backend:       e.backend,
		Hasher:        e.hasher,
		AdminPassword: e.settings.AdminPassword,
		Printer:       e.printer,
		Logger:        e.logger,
		Out:           os.Stdout,
		Prompt:        os.Stderr,
	}
}

// colorOutput resolves the --color flag; auto colours only a terminal
func colorOutput(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("unknown --color value %q (auto/always/never)", mode)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
