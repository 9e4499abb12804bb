// Package classifier assigns a transaction's direction, channel, account
// type and spending category from the raw SMS text. Each axis is evaluated
// independently against its own ordered rule list; no match resolves to the
// axis default rather than an error.
package classifier

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/smsledger/smsledger/pkg/api"
	"github.com/smsledger/smsledger/pkg/patterns"
)

// Classification is the result of classifying one message on all axes.
type Classification struct {
	Direction   string
	Channel     string
	AccountType string
	Category    string
	Description string
}

// Classify evaluates every axis for the given message. The spending
// category is matched against the extracted description when one exists,
// falling back to the whole message otherwise.
func Classify(message string) Classification {
	msg := norm.NFC.String(message)
	desc := ExtractDescription(msg)

	return Classification{
		Direction:   patterns.Direction.Classify(msg),
		Channel:     patterns.Channel.Classify(msg),
		AccountType: patterns.AccountType.Classify(msg),
		Category:    Categorize(desc, msg),
		Description: desc,
	}
}

// ExtractDescription returns the counterparty/purpose string captured by the
// first matching preposition-anchored pattern, trimmed. No match yields the
// "Uncategorized" sentinel.
func ExtractDescription(message string) string {
	for _, re := range patterns.Description {
		if m := re.FindStringSubmatch(message); len(m) > 1 {
			if desc := strings.TrimSpace(m[1]); desc != "" {
				return desc
			}
		}
	}
	return api.Uncategorized
}

// Categorize resolves the spending category for a transaction. The
// description drives the match when available; the raw message is the
// fallback subject. The category table is evaluated in its fixed order and
// the first match wins; nothing matching resolves to "Others".
func Categorize(description, raw string) string {
	subject := description
	if subject == "" || subject == api.Uncategorized {
		subject = raw
	}

	for _, cat := range patterns.Categories {
		for _, re := range cat.Patterns {
			if re.MatchString(subject) {
				return cat.Name
			}
		}
	}
	return api.CategoryOthers
}
