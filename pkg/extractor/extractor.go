// Package extractor pulls structured fields out of a single raw SMS message.
//
// Extraction never fails: every field that cannot be resolved is returned as
// its documented sentinel (zero amount, empty string) so that one malformed
// message never aborts a batch.
package extractor

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/smsledger/smsledger/pkg/patterns"
)

// ExtractedFields holds the per-message fields the pattern registry can
// resolve. Unmatched fields carry their sentinel values.
type ExtractedFields struct {
	// Amount is zero when no amount cue matched or the literal failed to
	// parse.
	Amount decimal.Decimal
	// Currency is the matched whitelist code, upper-cased; empty when the
	// message names no foreign currency.
	Currency string
	// CounterpartyID is a UPI-handle-shaped identifier, e.g. "name@bank".
	CounterpartyID string
	// TimeFragment is an HH:MM[:SS] [am|pm] substring, unresolved.
	TimeFragment string
	// Reference is the token following a reference-labeling keyword.
	Reference string
}

// literalCleaner strips thousands separators (ASCII and full-width) and
// stray spaces from a captured amount literal before numeric parsing.
var literalCleaner = strings.NewReplacer(",", "", "，", "", " ", "")

// Extract resolves all fields from one raw message. Input is normalized to
// NFC first so that vernacular-script cues match regardless of source
// encoding quirks.
func Extract(message string) ExtractedFields {
	msg := norm.NFC.String(message)

	fields := ExtractedFields{Amount: extractAmount(msg)}

	if m := patterns.Currency.FindStringSubmatch(msg); len(m) > 1 {
		fields.Currency = strings.ToUpper(m[1])
	}
	if m := patterns.CounterpartyID.FindStringSubmatch(msg); len(m) > 1 {
		fields.CounterpartyID = m[1]
	}
	if m := patterns.TimeFragment.FindStringSubmatch(msg); len(m) > 1 {
		fields.TimeFragment = strings.TrimSpace(m[1])
	}
	for _, re := range patterns.Reference {
		if m := re.FindStringSubmatch(msg); len(m) > 1 {
			fields.Reference = m[1]
			break
		}
	}

	return fields
}

func extractAmount(msg string) decimal.Decimal {
	for _, re := range patterns.Amount {
		m := re.FindStringSubmatch(msg)
		if len(m) < 2 {
			continue
		}

		// First matching rule wins; a literal that fails to parse yields
		// zero rather than falling through to later rules.
		amount, err := decimal.NewFromString(literalCleaner.Replace(m[1]))
		if err != nil || amount.IsNegative() {
			return decimal.Zero
		}
		return amount
	}
	return decimal.Zero
}
