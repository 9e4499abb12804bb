// Package batch maps heterogeneous SMS tables to normalized transaction
// records. Schema resolution ("find the columns") is separated from row
// processing; only the former can fail. Rows whose amount resolves to zero
// are silently omitted, which is the defined filter semantics rather than an
// error.
package batch

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smsledger/smsledger/pkg/api"
	"github.com/smsledger/smsledger/pkg/classifier"
	"github.com/smsledger/smsledger/pkg/extractor"
)

// epochMillisThreshold splits epoch-second from epoch-millisecond values:
// magnitudes above it are interpreted as milliseconds.
const epochMillisThreshold = 1e12

// Processor converts input tables into transaction records.
type Processor struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a batch processor. The clock defaults to time.Now.
func New(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, now: time.Now}
}

// WithClock overrides the ingestion clock used for unresolvable dates.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// Process resolves the table schema and converts every qualifying row into
// a Transaction, preserving input row order. The only error returned is a
// *SchemaError; all per-row problems degrade to defaulted fields or row
// omission.
func (p *Processor) Process(table Table) ([]api.Transaction, error) {
	schema, err := ResolveSchema(table.Columns)
	if err != nil {
		return nil, err
	}

	out := make([]api.Transaction, 0, len(table.Rows))
	for _, row := range table.Rows {
		txn, ok := p.processRow(schema, row)
		if !ok {
			continue
		}
		out = append(out, txn)
	}

	p.logger.Debug("processed sms batch",
		"rows_in", len(table.Rows),
		"transactions_out", len(out),
	)
	return out, nil
}

func (p *Processor) processRow(schema Schema, row []string) (api.Transaction, bool) {
	if schema.Text >= len(row) {
		return api.Transaction{}, false
	}
	message := row[schema.Text]

	fields := extractor.Extract(message)
	if !fields.Amount.IsPositive() {
		// Not an error: rows without a usable amount are filtered out.
		return api.Transaction{}, false
	}

	cls := classifier.Classify(message)

	currency := fields.Currency
	if currency == "" {
		currency = api.DefaultCurrency
	}

	return api.Transaction{
		ID:              api.NewID(),
		Date:            p.resolveDate(schema, row),
		Amount:          fields.Amount,
		Direction:       cls.Direction,
		Description:     cls.Description,
		Category:        cls.Category,
		Currency:        currency,
		Channel:         cls.Channel,
		AccountType:     cls.AccountType,
		ReferenceNumber: fields.Reference,
		CounterpartyID:  fields.CounterpartyID,
		Sender:          p.resolveSender(schema, row),
		RawMessage:      message,
	}, true
}

// resolveDate coerces the date cell to a numeric epoch value: milliseconds
// when the magnitude exceeds 10^12, seconds otherwise. Anything that does
// not coerce falls back to the ingestion clock rather than failing the row.
func (p *Processor) resolveDate(schema Schema, row []string) time.Time {
	if schema.Date < 0 || schema.Date >= len(row) {
		return p.now()
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[schema.Date]), 64)
	if err != nil {
		return p.now()
	}
	if math.Abs(value) > epochMillisThreshold {
		return time.UnixMilli(int64(value))
	}
	return time.Unix(int64(value), 0)
}

func (p *Processor) resolveSender(schema Schema, row []string) string {
	if schema.Sender < 0 || schema.Sender >= len(row) {
		return api.UnknownSender
	}
	if sender := strings.TrimSpace(row[schema.Sender]); sender != "" {
		return sender
	}
	return api.UnknownSender
}
