// Package api defines the core interfaces and data structures for smsledger.
package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction direction relative to the account the SMS concerns.
const (
	DirectionDebit   = "debit"
	DirectionCredit  = "credit"
	DirectionUnknown = "unknown"
)

// Payment channel (rail) a transaction went over.
const (
	ChannelUPI        = "UPI"
	ChannelNetBanking = "NetBanking"
	ChannelCreditCard = "CreditCard"
	ChannelAutoDebit  = "AutoDebit"
	ChannelUnknown    = "unknown"
)

// Account type the SMS refers to.
const (
	AccountBank       = "bank"
	AccountCreditCard = "credit_card"
	AccountLoan       = "loan"
	AccountWallet     = "wallet"
	AccountInvestment = "investment"
	AccountUnknown    = "unknown"
)

// Sentinels and defaults used when a field cannot be resolved from the message.
const (
	DefaultCurrency = "INR"
	Uncategorized   = "Uncategorized"
	CategoryOthers  = "Others"
	UnknownSender   = "Unknown"
)

// Transaction is the canonical record produced from one SMS notification.
// It is immutable once created; the historical set is append-only.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"type"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Channel     string          `json:"channel"`
	AccountType string          `json:"account_type"`

	// ReferenceNumber and CounterpartyID are empty when no pattern matched.
	ReferenceNumber string `json:"reference_number,omitempty"`
	CounterpartyID  string `json:"counterparty_id,omitempty"`

	Sender string `json:"sender"`
	// RawMessage retains the original SMS text verbatim for auditability.
	RawMessage string `json:"raw_message"`
}

// NewID returns a fresh transaction identifier.
func NewID() string {
	return uuid.NewString()
}

// Reader reads transactions from a source and sends them to the provided channel.
// Implementations close the channel when done or on error.
// The ackChan carries IDs of transactions that were successfully written.
type Reader interface {
	Read(ctx context.Context, out chan<- *Transaction, ackChan <-chan string) error
}

// Writer consumes transactions from a channel and writes them to a destination.
// Successfully written transaction IDs are sent to the ackChan.
type Writer interface {
	Write(ctx context.Context, in <-chan *Transaction, ackChan chan<- string) error
}
