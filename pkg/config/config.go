package config

import (
	"encoding/json"
)

// ClientSecretFile is the default path to the Google OAuth credentials JSON
// file, used when the sheets writer is selected.
const ClientSecretFile = "data/client_secret.json"

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	// Reader is the name of the reader plugin to use.
	// Environment variable: SMSLEDGER_READER
	Reader string `koanf:"SMSLEDGER_READER"`

	// Writer is the name of the writer plugin to use.
	// Environment variable: SMSLEDGER_WRITER
	Writer string `koanf:"SMSLEDGER_WRITER"`

	// ReaderConfig is the JSON configuration for the reader plugin.
	// Environment variable: SMSLEDGER_READER_CONFIG
	ReaderConfig json.RawMessage `koanf:"SMSLEDGER_READER_CONFIG"`

	// WriterConfig is the JSON configuration for the writer plugin.
	// Environment variable: SMSLEDGER_WRITER_CONFIG
	WriterConfig json.RawMessage `koanf:"SMSLEDGER_WRITER_CONFIG"`

	// HorizonDays is the lookahead window for upcoming obligations.
	// Environment variable: SMSLEDGER_HORIZON_DAYS
	HorizonDays int `koanf:"SMSLEDGER_HORIZON_DAYS"`

	// PostgreSQL connection settings, used by the postgres writer plugin.
	Postgres PostgresConfig
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string `koanf:"POSTGRES_HOST"`
	Port     int    `koanf:"POSTGRES_PORT"`
	Database string `koanf:"POSTGRES_DB"`
	User     string `koanf:"POSTGRES_USER"`
	Password string `koanf:"POSTGRES_PASSWORD"`
	SSLMode  string `koanf:"POSTGRES_SSLMODE"`
}

// PluginConfig renders the connection settings as postgres writer plugin
// configuration, used when the postgres writer is selected without an
// explicit SMSLEDGER_WRITER_CONFIG.
func (c PostgresConfig) PluginConfig() (json.RawMessage, error) {
	return json.Marshal(struct {
		Host     string `json:"host"`
		Port     int    `json:"port,omitempty"`
		Database string `json:"database"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode,omitempty"`
	}{c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode})
}
