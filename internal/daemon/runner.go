// Package daemon provides the core pipeline runner for smsledger.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/smsledger/smsledger/internal/plugins"
	"github.com/smsledger/smsledger/pkg/api"
	"github.com/smsledger/smsledger/pkg/config"
	"github.com/smsledger/smsledger/pkg/ledger"
	"github.com/smsledger/smsledger/pkg/recurring"
)

// Runner manages the ingestion pipeline lifecycle: reader to writer, with
// the transaction stream teed into an in-memory ledger used for recurring
// payment detection once the run completes.
type Runner struct {
	registry   *plugins.Registry
	httpClient *http.Client
	ledger     *ledger.Ledger
	logger     *slog.Logger
}

// New creates a new pipeline runner.
func New(registry *plugins.Registry, httpClient *http.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		registry:   registry,
		httpClient: httpClient,
		ledger:     ledger.New(),
		logger:     logger,
	}
}

// Ledger exposes the transaction history accumulated by the run.
func (r *Runner) Ledger() *ledger.Ledger {
	return r.ledger
}

// Run starts the ingestion pipeline with the given configuration. It blocks
// until the reader is exhausted or the context is canceled, then reports
// upcoming recurring obligations from the accumulated history.
func (r *Runner) Run(ctx context.Context, cfg config.Config) error {
	if cfg.Reader == "" {
		return fmt.Errorf("SMSLEDGER_READER environment variable is required")
	}
	if cfg.Writer == "" {
		return fmt.Errorf("SMSLEDGER_WRITER environment variable is required")
	}

	r.logger.Info("starting smsledger pipeline",
		"reader", cfg.Reader,
		"writer", cfg.Writer,
	)

	reader, err := r.registry.CreateReader(
		cfg.Reader,
		r.httpClient,
		cfg.ReaderConfig,
		r.logger.With("component", "reader", "plugin", cfg.Reader),
	)
	if err != nil {
		return fmt.Errorf("creating reader: %w", err)
	}

	writer, err := r.registry.CreateWriter(
		cfg.Writer,
		r.httpClient,
		cfg.WriterConfig,
		r.logger.With("component", "writer", "plugin", cfg.Writer),
	)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	transactions := make(chan *api.Transaction, 100)
	toWriter := make(chan *api.Transaction, 100)
	ackChan := make(chan string, 100)

	writerDone := make(chan error, 1)
	writerExited := make(chan struct{})
	go func() {
		writerDone <- writer.Write(ctx, toWriter, ackChan)
		close(writerExited)
	}()

	// Tee the stream: every transaction lands in the ledger before it is
	// handed to the writer. If the writer exits early its sends are
	// discarded so the reader can still drain, keeping the history intact.
	go func() {
		defer close(toWriter)
		for txn := range transactions {
			r.ledger.Append(*txn)
			select {
			case toWriter <- txn:
			case <-writerExited:
			}
		}
	}()

	r.logger.Info("pipeline started")
	if err := reader.Read(ctx, transactions, ackChan); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("reader error", "error", err)
	}

	if err := <-writerDone; err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("writer error", "error", err)
	}

	r.reportUpcoming(cfg.HorizonDays)

	r.logger.Info("pipeline stopped", "transactions", r.ledger.Len())
	return nil
}

// reportUpcoming logs every recurring obligation due within the horizon.
func (r *Runner) reportUpcoming(horizonDays int) {
	obligations := recurring.Upcoming(r.ledger.History(), horizonDays, time.Now())
	if len(obligations) == 0 {
		r.logger.Info("no upcoming recurring payments")
		return
	}

	for _, o := range obligations {
		r.logger.Info("upcoming recurring payment",
			"description", o.Description,
			"amount", o.Amount,
			"due_date", o.DueDate,
			"days_left", o.DaysLeft,
		)
	}
}
