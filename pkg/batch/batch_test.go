package batch

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/pkg/api"
)

func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    Schema
	}{
		{
			name:    "standard export",
			columns: []string{"Sl", "Message Body", "Timestamp", "From"},
			want:    Schema{Text: 1, Date: 2, Sender: 3},
		},
		{
			name:    "text only",
			columns: []string{"sms"},
			want:    Schema{Text: 0, Date: -1, Sender: -1},
		},
		{
			name:    "first match wins per role",
			columns: []string{"content", "text", "date", "timestamp"},
			want:    Schema{Text: 0, Date: 2, Sender: -1},
		},
		{
			name:    "case insensitive",
			columns: []string{"SENDER", "TEXT", "DATE"},
			want:    Schema{Text: 1, Date: 2, Sender: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSchema(tt.columns)
			if err != nil {
				t.Fatalf("ResolveSchema(%v) error: %v", tt.columns, err)
			}
			if got != tt.want {
				t.Errorf("ResolveSchema(%v) = %+v, want %+v", tt.columns, got, tt.want)
			}
		})
	}
}

func TestResolveSchemaNoTextColumn(t *testing.T) {
	_, err := ResolveSchema([]string{"foo", "bar"})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if !strings.Contains(schemaErr.Error(), "no text-bearing column") {
		t.Errorf("unexpected error message: %q", schemaErr.Error())
	}
}

func TestProcessEpochCoercion(t *testing.T) {
	p := New(nil)
	table := Table{
		Columns: []string{"text", "date"},
		Rows: [][]string{
			{"Rs 500 debited at Cafe Coffee Day", "1700000000"},
			{"Rs 500 debited at Cafe Coffee Day", "1700000000000"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	// Seconds and milliseconds spellings of the same instant must agree.
	if !txns[0].Date.Equal(txns[1].Date) {
		t.Errorf("dates differ: %v vs %v", txns[0].Date, txns[1].Date)
	}
	if !txns[0].Date.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("date = %v, want %v", txns[0].Date, time.Unix(1700000000, 0))
	}
}

func TestProcessDateFallbackToClock(t *testing.T) {
	fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	p := New(nil).WithClock(func() time.Time { return fixed })

	table := Table{
		Columns: []string{"text", "date"},
		Rows: [][]string{
			{"Rs 500 debited at Cafe Coffee Day", "not-a-number"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if !txns[0].Date.Equal(fixed) {
		t.Errorf("date = %v, want injected clock %v", txns[0].Date, fixed)
	}
}

func TestProcessDropsRowsWithoutAmount(t *testing.T) {
	p := New(nil)
	table := Table{
		Columns: []string{"text"},
		Rows: [][]string{
			{"Rs 100 debited at Cafe A"},
			{"Your OTP is 482910"},
			{"Rs 200 debited at Cafe B"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	// Input order is preserved for the rows that survive.
	if txns[0].Description != "Cafe A" || txns[1].Description != "Cafe B" {
		t.Errorf("order not preserved: %q, %q", txns[0].Description, txns[1].Description)
	}
}

func TestProcessDefaults(t *testing.T) {
	p := New(nil)
	table := Table{
		Columns: []string{"text", "sender"},
		Rows: [][]string{
			{"Rs 500 debited at Cafe Coffee Day", ""},
			{"Rs 500 debited at Cafe Coffee Day", "VM-HDFCBK"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txns))
	}

	if txns[0].Sender != api.UnknownSender {
		t.Errorf("empty sender = %q, want %q", txns[0].Sender, api.UnknownSender)
	}
	if txns[1].Sender != "VM-HDFCBK" {
		t.Errorf("sender = %q, want VM-HDFCBK", txns[1].Sender)
	}
	if txns[0].Currency != api.DefaultCurrency {
		t.Errorf("currency = %q, want %q", txns[0].Currency, api.DefaultCurrency)
	}
}

func TestProcessRoundTrip(t *testing.T) {
	p := New(nil)
	table := Table{
		Columns: []string{"text", "date", "sender"},
		Rows: [][]string{
			{"Rs 500 debited at Cafe Coffee Day on 12/05", "1700000000", "VM-HDFCBK"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}

	txn := txns[0]
	if !txn.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("amount = %s, want 500", txn.Amount)
	}
	if txn.Direction != api.DirectionDebit {
		t.Errorf("direction = %q, want %q", txn.Direction, api.DirectionDebit)
	}
	if txn.Description != "Cafe Coffee Day" {
		t.Errorf("description = %q, want %q", txn.Description, "Cafe Coffee Day")
	}
	if txn.Category != "Food & Dining" {
		t.Errorf("category = %q, want %q", txn.Category, "Food & Dining")
	}
	if txn.ID == "" {
		t.Error("transaction ID not assigned")
	}
	if txn.RawMessage != table.Rows[0][0] {
		t.Errorf("raw message not retained: %q", txn.RawMessage)
	}
}

func TestProcessRaggedRowDropped(t *testing.T) {
	p := New(nil)
	table := Table{
		Columns: []string{"id", "text"},
		Rows: [][]string{
			{"1"},
			{"2", "Rs 75 debited at Cafe Coffee Day"},
		},
	}

	txns, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
}
