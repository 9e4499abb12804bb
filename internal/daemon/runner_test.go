package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/internal/plugins"
	"github.com/smsledger/smsledger/pkg/api"
	"github.com/smsledger/smsledger/pkg/config"
)

type stubReader struct {
	count int
}

func (r *stubReader) Read(ctx context.Context, out chan<- *api.Transaction, ackChan <-chan string) error {
	defer close(out)
	for i := 0; i < r.count; i++ {
		txn := &api.Transaction{
			ID:          api.NewID(),
			Date:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Amount:      decimal.NewFromInt(100),
			Direction:   api.DirectionDebit,
			Description: fmt.Sprintf("merchant %d", i),
		}
		select {
		case out <- txn:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

type stubReaderPlugin struct {
	count int
}

func (p *stubReaderPlugin) Name() string             { return "stub" }
func (p *stubReaderPlugin) Description() string      { return "fixed transaction source" }
func (p *stubReaderPlugin) RequiredScopes() []string { return nil }
func (p *stubReaderPlugin) NewReader(*http.Client, json.RawMessage, *slog.Logger) (api.Reader, error) {
	return &stubReader{count: p.count}, nil
}

type collectingWriter struct {
	got chan *api.Transaction
}

func (w *collectingWriter) Write(ctx context.Context, in <-chan *api.Transaction, ackChan chan<- string) error {
	for txn := range in {
		w.got <- txn
		ackChan <- txn.ID
	}
	return nil
}

type collectingWriterPlugin struct {
	writer *collectingWriter
}

func (p *collectingWriterPlugin) Name() string             { return "collect" }
func (p *collectingWriterPlugin) Description() string      { return "in-memory sink" }
func (p *collectingWriterPlugin) RequiredScopes() []string { return nil }
func (p *collectingWriterPlugin) NewWriter(*http.Client, json.RawMessage, *slog.Logger) (api.Writer, error) {
	return p.writer, nil
}

type failingWriterPlugin struct{}

func (p *failingWriterPlugin) Name() string             { return "failing" }
func (p *failingWriterPlugin) Description() string      { return "sink that refuses to start" }
func (p *failingWriterPlugin) RequiredScopes() []string { return nil }
func (p *failingWriterPlugin) NewWriter(*http.Client, json.RawMessage, *slog.Logger) (api.Writer, error) {
	return failingWriter{}, nil
}

type failingWriter struct{}

func (failingWriter) Write(context.Context, <-chan *api.Transaction, chan<- string) error {
	return errors.New("sink unavailable")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunPipesTransactionsToWriter(t *testing.T) {
	sink := &collectingWriter{got: make(chan *api.Transaction, 100)}

	registry := plugins.NewRegistry()
	if err := registry.RegisterReader(&stubReaderPlugin{count: 5}); err != nil {
		t.Fatalf("RegisterReader error: %v", err)
	}
	if err := registry.RegisterWriter(&collectingWriterPlugin{writer: sink}); err != nil {
		t.Fatalf("RegisterWriter error: %v", err)
	}

	r := New(registry, nil, discardLogger())
	cfg := config.Config{Reader: "stub", Writer: "collect"}

	if err := r.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	close(sink.got)
	written := 0
	for range sink.got {
		written++
	}
	if written != 5 {
		t.Errorf("writer received %d transactions, want 5", written)
	}
	if r.Ledger().Len() != 5 {
		t.Errorf("ledger holds %d transactions, want 5", r.Ledger().Len())
	}
}

func TestRunCompletesWhenWriterFailsEarly(t *testing.T) {
	registry := plugins.NewRegistry()
	// Well past the channel buffering, so a stalled tee would block.
	if err := registry.RegisterReader(&stubReaderPlugin{count: 500}); err != nil {
		t.Fatalf("RegisterReader error: %v", err)
	}
	if err := registry.RegisterWriter(&failingWriterPlugin{}); err != nil {
		t.Fatalf("RegisterWriter error: %v", err)
	}

	r := New(registry, nil, discardLogger())
	cfg := config.Config{Reader: "stub", Writer: "failing"}

	done := make(chan error, 1)
	go func() {
		done <- r.Run(context.Background(), cfg)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not complete after writer failure")
	}

	if r.Ledger().Len() != 500 {
		t.Errorf("ledger holds %d transactions, want all 500", r.Ledger().Len())
	}
}
