package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tidwall/jsonc"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "GRADEBOOK_HOME"

	// LocalDataFile is looked up in the working directory before the global data file
	LocalDataFile = "data.json"
)

var (
	// ConfigDir is the global configuration directory (~/.gradebook)
	ConfigDir string

	// SettingsFile is the JSONC settings file
	SettingsFile string

	// DataFile is the default JSON data file
	DataFile string

	// DatabasePath is the default SQLite database file
	DatabasePath string

	// LogFile is the default log file
	LogFile string
)

// ErrInvalidSettings is returned when a settings value fails validation
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds everything configurable. Values come from the settings file,
// then environment variables, then the env-default tags for fields left empty.
type Settings struct {
	Backend        string `json:"backend" env:"GRADEBOOK_BACKEND" env-default:"json" validate:"oneof=json sqlite"`
	DataFile       string `json:"dataFile" env:"GRADEBOOK_DATA"`
	DatabasePath   string `json:"databasePath" env:"GRADEBOOK_DATABASE"`
	Language       string `json:"language" env:"GRADEBOOK_LANG" env-default:"en" validate:"oneof=en zh"`
	HashScheme     string `json:"hashScheme" env:"GRADEBOOK_HASH" env-default:"bcrypt" validate:"oneof=bcrypt md5"`
	BcryptCost     int    `json:"bcryptCost" env:"GRADEBOOK_BCRYPT_COST" env-default:"10" validate:"min=4,max=31"`
	AdminPassword  string `json:"adminPassword" env:"GRADEBOOK_ADMIN_PASSWORD" env-default:"123456" validate:"required"`
	InputWidth     int    `json:"inputWidth" env:"GRADEBOOK_INPUT_WIDTH" env-default:"40" validate:"min=1,max=200"`
	MessageDelayMs int    `json:"messageDelayMs" env:"GRADEBOOK_MESSAGE_DELAY_MS" env-default:"1000" validate:"min=0,max=10000"`
	LogLevel       string `json:"logLevel" env:"GRADEBOOK_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFile        string `json:"logFile" env:"GRADEBOOK_LOG_FILE"`
}

const defaultSettings = `{
  // "json" keeps everything in one file, "sqlite" uses databasePath
  "backend": "json",
  // empty: ./data.json when present, else the file next to this one
  "dataFile": "",
  "databasePath": "",
  // "en" or "zh"
  "language": "en",
  // new passwords are stored with this scheme; both are accepted at login
  "hashScheme": "bcrypt",
  "bcryptCost": 10,
  // password given to the admin account when the store has none
  "adminPassword": "123456",
  "inputWidth": 40,
  "messageDelayMs": 1000,
  "logLevel": "info",
  "logFile": ""
}
`

// Initialize sets up the configuration directory and files
// It creates ~/.gradebook/ (or $GRADEBOOK_HOME) if it doesn't exist
func Initialize() error {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".gradebook")
	}

	// Set global paths
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "settings.jsonc")
	DataFile = filepath.Join(ConfigDir, LocalDataFile)
	DatabasePath = filepath.Join(ConfigDir, "gradebook.db")
	LogFile = filepath.Join(ConfigDir, "gradebook.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettings), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// Load reads a JSONC settings file, applies environment overrides and
// defaults, and validates the result. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	var s Settings

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
				return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every field against its validate tag
func (s *Settings) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %v", e.Field(), e.Param(), e.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s, got %v", e.Field(), e.Param(), e.Value()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s, got %v", e.Field(), e.Param(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, ", "))
}

// ResolveDataFile returns the JSON data file to use: the explicit setting,
// else ./data.json when it exists, else the global data file
func (s *Settings) ResolveDataFile() string {
	if s.DataFile != "" {
		return expandHome(s.DataFile)
	}
	if _, err := os.Stat(LocalDataFile); err == nil {
		return LocalDataFile
	}
	return DataFile
}

// ResolveDatabasePath returns the SQLite database to use
func (s *Settings) ResolveDatabasePath() string {
	if s.DatabasePath != "" {
		return expandHome(s.DatabasePath)
	}
	return DatabasePath
}

// ResolveLogFile returns the log file to use
func (s *Settings) ResolveLogFile() string {
	if s.LogFile != "" {
		return expandHome(s.LogFile)
	}
	return LogFile
}

// SlogLevel maps the logLevel setting to a slog level
func (s *Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
