package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	BackendGraph  = "graph"
	BackendGoogle = "google"
)

// Config is built once at startup, validated, and then passed by reference.
// Values come from defaults, then an optional TOML file, then the
// environment (including a .env file in the working directory).
type Config struct {
	Backend string       `toml:"backend" env:"WORKBOOK_BACKEND"`
	Graph   GraphConfig  `toml:"graph"`
	Google  GoogleConfig `toml:"google"`
	Tables  Tables       `toml:"tables"`
	Server  ServerConfig `toml:"server"`
	Log     LogConfig    `toml:"log"`
}

type GraphConfig struct {
	BaseURL        string `toml:"base_url" env:"GRAPH_BASE_URL"`
	DriveID        string `toml:"drive_id" env:"WORKBOOK_DRIVE_ID"`
	ItemID         string `toml:"item_id" env:"WORKBOOK_ITEM_ID"`
	TenantID       string `toml:"tenant_id" env:"GRAPH_TENANT_ID"`
	ClientID       string `toml:"client_id" env:"GRAPH_CLIENT_ID"`
	ClientSecret   string `toml:"client_secret,omitempty" env:"GRAPH_CLIENT_SECRET"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"GRAPH_TIMEOUT"`
}

type GoogleConfig struct {
	CredentialsFile string `toml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	SpreadsheetID   string `toml:"spreadsheet_id" env:"SPREADSHEET_ID"`
}

// Tables names the three workbook tables.
type Tables struct {
	Roster string `toml:"roster" env:"ROSTER_TABLE"`
	Games  string `toml:"games" env:"GAMES_TABLE"`
	Events string `toml:"events" env:"EVENTS_TABLE"`
}

type ServerConfig struct {
	ListenAddress string `toml:"listen_address" env:"LISTEN_ADDRESS"`
}

type LogConfig struct {
	File       string `toml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `toml:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAgeDays int    `toml:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
}

func Default() *Config {
	return &Config{
		Backend: BackendGraph,
		Graph: GraphConfig{
			BaseURL:        "https://graph.microsoft.com/v1.0",
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			ListenAddress: ":80",
		},
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load builds a Config. A missing file is not an error; filename may be empty
// to skip the file entirely.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		if err := cfg.ReadFile(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	// .env is optional
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ReadFile loads the config from a toml file over the current values.
func (c *Config) ReadFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	return nil
}

// Save writes the config out to a toml file.
func (c *Config) Save(filename string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0600)
}

// Validate reports every missing identifier at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendGraph:
		errs = append(errs,
			requireField(c.Graph.DriveID, "graph.drive_id", "WORKBOOK_DRIVE_ID"),
			requireField(c.Graph.ItemID, "graph.item_id", "WORKBOOK_ITEM_ID"),
			requireField(c.Graph.TenantID, "graph.tenant_id", "GRAPH_TENANT_ID"),
			requireField(c.Graph.ClientID, "graph.client_id", "GRAPH_CLIENT_ID"),
			requireField(c.Graph.ClientSecret, "graph.client_secret", "GRAPH_CLIENT_SECRET"),
		)
	case BackendGoogle:
		errs = append(errs, requireField(c.Google.SpreadsheetID, "google.spreadsheet_id", "SPREADSHEET_ID"))
	default:
		errs = append(errs, &ConfigurationError{Field: "backend", Env: "WORKBOOK_BACKEND", Reason: fmt.Sprintf("unknown backend %q", c.Backend)})
	}
	errs = append(errs, c.Tables.Validate())
	return errors.Join(errs...)
}

func (t Tables) Validate() error {
	return errors.Join(
		requireField(t.Roster, "tables.roster", "ROSTER_TABLE"),
		requireField(t.Games, "tables.games", "GAMES_TABLE"),
		requireField(t.Events, "tables.events", "EVENTS_TABLE"),
	)
}

func requireField(value, field, envName string) error {
	if value != "" {
		return nil
	}
	return &ConfigurationError{Field: field, Env: envName}
}
