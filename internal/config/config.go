package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"rhystmorgan/contactsTUI/internal/notify"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/store"
)

const (
	EnvAPIURL     = "CTERM_API_URL"
	EnvTimeout    = "CTERM_TIMEOUT"
	EnvRetryCount = "CTERM_RETRY_COUNT"
	EnvErrorTTL   = "CTERM_ERROR_TTL"
	EnvSuccessTTL = "CTERM_SUCCESS_TTL"
	EnvInitialID  = "CTERM_INITIAL_ID"
	EnvLogFile    = "CTERM_LOG_FILE"
	EnvDebug      = "CTERM_DEBUG"
	EnvConfig     = "CTERM_CONFIG"

	DefaultEnvFile = ".env"
)

type Config struct {
	APIURL     string        `validate:"required,url"`
	Timeout    time.Duration `validate:"gt=0"`
	RetryCount int           `validate:"gte=0,lte=10"`
	ErrorTTL   time.Duration `validate:"gt=0"`
	SuccessTTL time.Duration `validate:"gt=0"`
	InitialID  int           `validate:"gt=0"`
	LogFile    string
	Debug      bool
}

// fileConfig is the on-disk shape. Durations are written as strings like "30s".
type fileConfig struct {
	APIURL     *string `toml:"api_url"`
	Timeout    *string `toml:"timeout"`
	RetryCount *int    `toml:"retry_count"`
	ErrorTTL   *string `toml:"error_ttl"`
	SuccessTTL *string `toml:"success_ttl"`
	InitialID  *int    `toml:"initial_id"`
	LogFile    *string `toml:"log_file"`
	Debug      *bool   `toml:"debug"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func GetDefaultConfig() *Config {
	return &Config{
		APIURL:     remote.DefaultBaseURL,
		Timeout:    remote.DefaultTimeout,
		RetryCount: 0,
		ErrorTTL:   notify.DefaultErrorTTL,
		SuccessTTL: notify.DefaultSuccessTTL,
		InitialID:  store.DefaultInitialID,
		LogFile:    filepath.Join(os.TempDir(), "cterm.log"),
	}
}

// Load layers defaults, the optional TOML file at path, the .env files and
// the CTERM_* environment. An empty path falls back to CTERM_CONFIG; a path
// that was asked for but does not exist is an error. With no envFiles given
// ".env" in the working directory is read if present.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file '%s': %w", envFile, err)
		}
	}

	config := GetDefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	if file.APIURL != nil {
		c.APIURL = *file.APIURL
	}
	if file.RetryCount != nil {
		c.RetryCount = *file.RetryCount
	}
	if file.InitialID != nil {
		c.InitialID = *file.InitialID
	}
	if file.LogFile != nil {
		c.LogFile = *file.LogFile
	}
	if file.Debug != nil {
		c.Debug = *file.Debug
	}

	durations := []struct {
		key   string
		value *string
		dst   *time.Duration
	}{
		{"timeout", file.Timeout, &c.Timeout},
		{"error_ttl", file.ErrorTTL, &c.ErrorTTL},
		{"success_ttl", file.SuccessTTL, &c.SuccessTTL},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return fmt.Errorf("invalid %s in '%s': %w", d.key, path, err)
		}
		*d.dst = parsed
	}

	return nil
}

func (c *Config) applyEnv() error {
	var err error

	c.APIURL = getEnvOrDefault(EnvAPIURL, c.APIURL)
	c.LogFile = getEnvOrDefault(EnvLogFile, c.LogFile)

	if c.Timeout, err = parseDurationOrDefault(EnvTimeout, c.Timeout); err != nil {
		return err
	}
	if c.ErrorTTL, err = parseDurationOrDefault(EnvErrorTTL, c.ErrorTTL); err != nil {
		return err
	}
	if c.SuccessTTL, err = parseDurationOrDefault(EnvSuccessTTL, c.SuccessTTL); err != nil {
		return err
	}
	if c.RetryCount, err = parseIntOrDefault(EnvRetryCount, c.RetryCount); err != nil {
		return err
	}
	if c.InitialID, err = parseIntOrDefault(EnvInitialID, c.InitialID); err != nil {
		return err
	}

	if value := os.Getenv(EnvDebug); value != "" {
		c.Debug = value == "true" || value == "1"
	}

	return nil
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL, got: %v", fe.Field(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive, got: %v", fe.Field(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be non-negative, got: %v", fe.Field(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got: %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func (c *Config) ToRemoteConfig() remote.Config {
	return remote.Config{
		BaseURL:    c.APIURL,
		Timeout:    c.Timeout,
		RetryCount: c.RetryCount,
		RetryDelay: remote.DefaultRetryDelay,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func parseDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
