package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/smsledger/smsledger/internal/daemon"
	"github.com/smsledger/smsledger/internal/plugins"
	"github.com/smsledger/smsledger/pkg/client"
	"github.com/smsledger/smsledger/pkg/config"
	"github.com/smsledger/smsledger/pkg/logging"
	smscsvplugin "github.com/smsledger/smsledger/pkg/plugins/readers/smscsv"
	csvplugin "github.com/smsledger/smsledger/pkg/plugins/writers/csv"
	jsonplugin "github.com/smsledger/smsledger/pkg/plugins/writers/json"
	postgresplugin "github.com/smsledger/smsledger/pkg/plugins/writers/postgres"
	sheetsplugin "github.com/smsledger/smsledger/pkg/plugins/writers/sheets"
)

func main() {
	// Optional .env file for local runs.
	_ = godotenv.Load()

	logger := logging.Setup(logging.FromEnv())

	registry := plugins.NewRegistry()

	if err := registry.RegisterReader(&smscsvplugin.Plugin{}); err != nil {
		logger.Error("failed to register smscsv plugin", "error", err)
		os.Exit(1)
	}

	if err := registry.RegisterWriter(&csvplugin.Plugin{}); err != nil {
		logger.Error("failed to register csv plugin", "error", err)
		os.Exit(1)
	}
	if err := registry.RegisterWriter(&jsonplugin.Plugin{}); err != nil {
		logger.Error("failed to register json plugin", "error", err)
		os.Exit(1)
	}
	if err := registry.RegisterWriter(&postgresplugin.Plugin{}); err != nil {
		logger.Error("failed to register postgres plugin", "error", err)
		os.Exit(1)
	}
	if err := registry.RegisterWriter(&sheetsplugin.Plugin{}); err != nil {
		logger.Error("failed to register sheets plugin", "error", err)
		os.Exit(1)
	}

	logger.Info("plugins registered",
		"readers", len(registry.ListReaders()),
		"writers", len(registry.ListWriters()),
	)

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var cfg config.Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		logger.Error("failed to unmarshal config", "error", err)
		os.Exit(1)
	}

	if err := applyDefaults(&cfg); err != nil {
		logger.Error("failed to apply config defaults", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"reader", cfg.Reader,
		"writer", cfg.Writer,
		"horizon_days", cfg.HorizonDays,
	)

	scopes, err := registry.GetAllScopes(cfg.Reader, cfg.Writer)
	if err != nil {
		logger.Error("failed to get required scopes", "error", err)
		os.Exit(1)
	}

	// The OAuth flow only runs when a selected plugin actually needs it.
	var httpClient *http.Client
	if len(scopes) > 0 {
		logger.Info("OAuth scopes required", "scopes", scopes)
		c, err := client.New(config.ClientSecretFile, scopes...)
		if err != nil {
			logger.Error("failed to create http client", "error", err)
			os.Exit(1)
		}
		httpClient = c
	}

	runner := daemon.New(registry, httpClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := runner.Run(ctx, cfg); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

// applyDefaults fills in the local CSV-to-CSV pipeline when nothing is
// configured. The postgres writer builds its config from the POSTGRES_*
// variables when SMSLEDGER_WRITER_CONFIG is absent.
func applyDefaults(cfg *config.Config) error {
	if cfg.Reader == "" {
		cfg.Reader = "smscsv"
	}
	if len(cfg.ReaderConfig) == 0 {
		cfg.ReaderConfig = json.RawMessage(`{"path":"data/sms.csv"}`)
	}
	if cfg.Writer == "" {
		cfg.Writer = "csv"
	}
	if len(cfg.WriterConfig) == 0 {
		switch cfg.Writer {
		case "postgres":
			writerCfg, err := cfg.Postgres.PluginConfig()
			if err != nil {
				return fmt.Errorf("building postgres writer config: %w", err)
			}
			cfg.WriterConfig = writerCfg
		default:
			cfg.WriterConfig = json.RawMessage(`{"filePath":"data/transactions.csv"}`)
		}
	}
	return nil
}
