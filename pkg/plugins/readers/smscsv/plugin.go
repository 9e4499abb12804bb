// Package smscsv provides a plugin wrapper for the SMS CSV reader.
package smscsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/smsledger/smsledger/pkg/api"
	csvreader "github.com/smsledger/smsledger/pkg/reader/smscsv"
)

// Plugin implements the ReaderPlugin interface for SMS export CSV files.
type Plugin struct{}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "smscsv"
}

// Description returns a human-readable description.
func (p *Plugin) Description() string {
	return "Read financial transactions from an SMS export CSV file"
}

// RequiredScopes returns the OAuth scopes needed by this plugin.
func (p *Plugin) RequiredScopes() []string {
	// Local file reader, no OAuth.
	return nil
}

// Config represents the SMS CSV reader configuration.
type Config struct {
	Path string `json:"path"`
}

// NewReader creates a new SMS CSV reader instance. The httpClient is unused.
func (p *Plugin) NewReader(httpClient *http.Client, configData json.RawMessage, logger *slog.Logger) (api.Reader, error) {
	var cfg Config
	if err := json.Unmarshal(configData, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling smscsv config: %w", err)
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	return csvreader.New(csvreader.Config{Path: cfg.Path}, logger)
}
