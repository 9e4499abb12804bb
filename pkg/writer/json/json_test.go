package json

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smsledger/smsledger/pkg/api"
)

func TestFlushWritesFullArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")

	w, err := New(Config{FilePath: path}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := w.flushBatch([]*api.Transaction{{ID: "t1"}, {ID: "t2"}}); err != nil {
		t.Fatalf("flushBatch error: %v", err)
	}
	if err := w.flushBatch([]*api.Transaction{{ID: "t3"}}); err != nil {
		t.Fatalf("flushBatch error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var got []*api.Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling output: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}
	if got[2].ID != "t3" {
		t.Errorf("last transaction = %q, want t3", got[2].ID)
	}
}

func TestLoadsExistingTransactions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")

	w, err := New(Config{FilePath: path}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := w.flushBatch([]*api.Transaction{{ID: "t1"}}); err != nil {
		t.Fatalf("flushBatch error: %v", err)
	}

	// A new writer over the same file picks up where the old one left off.
	w2, err := New(Config{FilePath: path}, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if w2.TransactionCount() != 1 {
		t.Fatalf("TransactionCount = %d, want 1", w2.TransactionCount())
	}

	if err := w2.flushBatch([]*api.Transaction{{ID: "t2"}}); err != nil {
		t.Fatalf("flushBatch error: %v", err)
	}
	if w2.TransactionCount() != 2 {
		t.Errorf("TransactionCount = %d, want 2", w2.TransactionCount())
	}
}
