// Package ledger keeps the in-memory transaction history accumulated over a
// run. It is the source recurrence detection reads from.
package ledger

import (
	"sync"

	"github.com/smsledger/smsledger/pkg/api"
)

// Ledger is an append-only, concurrency-safe transaction log.
type Ledger struct {
	mu           sync.Mutex
	transactions []api.Transaction
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records transactions in arrival order.
func (l *Ledger) Append(txns ...api.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, txns...)
}

// History returns a copy of the recorded transactions.
func (l *Ledger) History() []api.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Len reports how many transactions have been recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transactions)
}
