// Package smscsv implements a Reader that ingests an SMS export CSV file.
//
// The export format is not fixed: the first record is treated as the header
// row and the text, date and sender columns are sniffed by name. Each
// qualifying row becomes one transaction, in file order.
package smscsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/smsledger/smsledger/pkg/api"
	"github.com/smsledger/smsledger/pkg/batch"
)

// Config holds configuration for the SMS CSV reader.
type Config struct {
	// Path is the SMS export CSV file to ingest.
	Path string
}

// Reader reads an SMS export CSV and emits the extracted transactions.
type Reader struct {
	path      string
	processor *batch.Processor
	logger    *slog.Logger
}

// New creates a new SMS CSV reader.
func New(cfg Config, logger *slog.Logger) (*Reader, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sms csv reader: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Reader{
		path:      cfg.Path,
		processor: batch.New(logger.With("component", "sms_batch")),
		logger:    logger,
	}, nil
}

// Read ingests the CSV file and sends every extracted transaction on out.
// The out channel is closed when the file is exhausted. Acknowledgments are
// drained so a slow or silent writer cannot stall the pipeline.
func (r *Reader) Read(ctx context.Context, out chan<- *api.Transaction, ackChan <-chan string) error {
	defer close(out)

	go r.drainAcks(ctx, ackChan)

	table, err := r.loadTable()
	if err != nil {
		return err
	}

	transactions, err := r.processor.Process(table)
	if err != nil {
		return fmt.Errorf("processing sms batch: %w", err)
	}

	r.logger.Info("extracted transactions from sms export",
		"file", r.path,
		"rows", len(table.Rows),
		"transactions", len(transactions),
	)

	for i := range transactions {
		select {
		case out <- &transactions[i]:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (r *Reader) loadTable() (batch.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return batch.Table{}, fmt.Errorf("opening sms export: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return batch.Table{}, fmt.Errorf("reading sms export: %w", err)
	}
	if len(records) == 0 {
		return batch.Table{}, fmt.Errorf("sms export is empty: %s", r.path)
	}

	return batch.Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

func (r *Reader) drainAcks(ctx context.Context, ackChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-ackChan:
			if !ok {
				return
			}
			r.logger.Debug("transaction acknowledged", "id", id)
		}
	}
}
