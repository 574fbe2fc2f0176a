// Package config resolves where the task table lives and how to reach it.
// Environment variables win over the credentials file written by
// `taskflow auth login`.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idilsaglam/taskflow/internal/dataclient"
)

const (
	dirName      = ".taskflow"
	credFileName = "credentials.json"

	EnvURL   = "SUPABASE_URL"
	EnvKey   = "SUPABASE_ANON_KEY"
	EnvTheme = "TASKFLOW_THEME"
	EnvLog   = "TASKFLOW_LOG_FILE"
)

// Names accepted for the same values by the web front-end's deployments.
var (
	urlAliases = []string{EnvURL, "NEXT_PUBLIC_SUPABASE_URL"}
	keyAliases = []string{EnvKey, "NEXT_PUBLIC_SUPABASE_ANON_KEY"}
)

// Source says where the connection values came from.
type Source string

const (
	SourceNone Source = ""
	SourceEnv  Source = "env"
	SourceFile Source = "file"
	SourceFlag Source = "flag"
)

// Credentials is the on-disk shape of the credentials file.
type Credentials struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// Config is everything the commands need from the environment.
type Config struct {
	Data    dataclient.Config
	Source  Source
	Theme   string
	LogFile string

	// CredentialsErr is set when the credentials file exists but could not
	// be used; Data is then left unconfigured.
	CredentialsErr error
}

// Dir is ~/.taskflow; HOME can be redirected in tests.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func credFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

func firstEnv(names []string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}

// Load resolves the config. Missing values are not an error; the returned
// Config simply reports Data.Configured() == false. An unreadable credentials
// file is reported in CredentialsErr so `auth login` and `auth logout` can
// still replace or remove it.
func Load() Config {
	cfg := Config{
		Theme:   strings.TrimSpace(os.Getenv(EnvTheme)),
		LogFile: strings.TrimSpace(os.Getenv(EnvLog)),
	}
	if cfg.LogFile == "" {
		if dir, err := Dir(); err == nil {
			cfg.LogFile = filepath.Join(dir, "taskflow.log")
		}
	}

	// 1) env override
	envURL, envKey := firstEnv(urlAliases), firstEnv(keyAliases)
	if envURL != "" || envKey != "" {
		cfg.Data = dataclient.Config{URL: envURL, Key: stripBearer(envKey)}
		cfg.Source = SourceEnv
		return cfg
	}

	// 2) file
	creds, err := ReadCredentials()
	if err != nil {
		cfg.CredentialsErr = err
		return cfg
	}
	if creds != nil {
		cfg.Data = dataclient.Config{URL: creds.URL, Key: creds.Key}
		cfg.Source = SourceFile
	}
	return cfg
}

// ReadCredentials returns nil, nil when no credentials file exists.
func ReadCredentials() (*Credentials, error) {
	p, err := credFilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Key = stripBearer(c.Key)
	return &c, nil
}

// SaveCredentials writes the file with owner-only permissions.
func SaveCredentials(endpoint, key string) error {
	endpoint = strings.TrimSpace(endpoint)
	key = stripBearer(strings.TrimSpace(key))
	if endpoint == "" || key == "" {
		return fmt.Errorf("both url and key are required")
	}
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Credentials{URL: endpoint, Key: key, CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p, _ := credFilePath()
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// DeleteCredentials is a no-op when the file is already gone.
func DeleteCredentials() error {
	p, err := credFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
