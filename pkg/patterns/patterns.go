// Package patterns holds the static extraction and classification rule
// tables used across smsledger. All tables are compiled once at startup and
// read-only afterwards. Every list is ordered: evaluation is top to bottom
// and the first match wins, so higher-priority cues come first.
package patterns

import (
	"regexp"

	"github.com/smsledger/smsledger/pkg/api"
)

// Amount is the ordered list of amount extraction rules. Each rule captures
// the numeric literal following a currency symbol, ISO code, or a common
// textual variant (including vernacular-script forms and punctuation noise).
// The literal may carry thousands separators (ASCII or full-width comma) and
// up to two decimal places.
var Amount = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:rs\s*[.:]\s*|rs|inr\.?|i@nr|₹|रु\.?|mrp|\$|£)[\s.()]*([\d,，]+(?:\.\d{1,2})?|\.\d{1,2})`),
}

// Currency matches a fixed whitelist of 3-letter codes as whole words. The
// domestic currency (INR) is not listed; it is the default when nothing
// matches.
var Currency = regexp.MustCompile(`(?i)\b(aed|aud|bdt|bhd|brl|cad|eur|gbp|hkd|huf|idr|usd|myr|sar|kwd|cny|thb|sgd|qar|omr|npr|mvr|lkr|jod|amd)\b`)

// CounterpartyID matches UPI-handle-shaped identifiers (local-part@domain,
// tolerating hyphen, underscore and dot in the local part).
var CounterpartyID = regexp.MustCompile(`(?i)([-a-z\d_]+(?:\.[-a-z\d_]+)*@[a-z]+)`)

// TimeFragment matches HH:MM[:SS] [am|pm] shaped substrings. The fragment is
// informational only; canonical dates come from the timestamp column.
var TimeFragment = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}(?::\d{2})?\s?(?:am|pm)?)`)

// Reference is the ordered list of reference-number rules: a labeling
// keyword followed by an alphanumeric token.
var Reference = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\butr\s*(?:no\.?|number)?\s*[:#-]?\s*([a-z0-9]+)`),
	regexp.MustCompile(`(?i)\brrn\.?\s*[:#-]?\s*([a-z0-9]+)`),
	regexp.MustCompile(`(?i)\bref(?:erence)?\.?\s*(?:no\.?|number)?\s*[:#-]?\s*([a-z0-9]+)`),
	regexp.MustCompile(`(?i)\bpayment\s*of\s*(?:amount\s*)?([a-z0-9]+)`),
}

// Description is the ordered list of preposition-anchored description rules.
// The capture runs greedily up to a trailing " on" or end of message.
var Description = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat\s+([a-z0-9\s]+)(?:\s+on\b|$)`),
	regexp.MustCompile(`(?i)\bto\s+([a-z0-9\s]+)(?:\s+on\b|$)`),
	regexp.MustCompile(`(?i)\bfrom\s+([a-z0-9\s]+)(?:\s+on\b|$)`),
	regexp.MustCompile(`(?i)\bfor\s+([a-z0-9\s]+)(?:\s+on\b|$)`),
}

// Direction classifies money movement. The debit rule is checked strictly
// before the credit rule: a message matching both keyword sets resolves to
// debit. This ordering is part of the contract.
var Direction = NewRuleset(api.DirectionUnknown,
	mustRule(api.DirectionDebit, `debited|debit|paid|withdrawn|spent`),
	mustRule(api.DirectionCredit, `credited|credit|received|deposited|refund`),
)

// Channel classifies the payment rail. Textual rails with longer cues come
// before UPI, whose "@" cue would otherwise shadow them.
var Channel = NewRuleset(api.ChannelUnknown,
	mustRule(api.ChannelNetBanking, `mobile\s*banking|internet\s*banking|net\s*-?\s*banking|e\s*-\s*banking|एनईएफटी|\bneft\b|\brtgs\b|\bimps\b|mob\s*bk`),
	mustRule(api.ChannelAutoDebit, `standing\s*instructions?|auto\s*-?\s*debit(?:ed)?|auto\s*-?\s*payment|e-mandate|autopay|mandate|enach|\bnach\b|\becs\b|cheque`),
	mustRule(api.ChannelCreditCard, `credit\s*card|\bcc\b`),
	mustRule(api.ChannelUPI, `\bupi\b|\bvpa\b|@`),
)

// AccountType classifies which kind of account the SMS concerns.
var AccountType = NewRuleset(api.AccountUnknown,
	mustRule(api.AccountBank, `savings|current|account|acct|a/c|\bbank\b`),
	mustRule(api.AccountCreditCard, `credit\s*card|\bcc\b|card\s*ending|card\s*no`),
	mustRule(api.AccountLoan, `\bloan\b|\bemi\b|mortgage|housing`),
	mustRule(api.AccountWallet, `wallet|\bupi\b|paytm|phonepe`),
	mustRule(api.AccountInvestment, `mutual\s*fund|stock|demat|trading|investment`),
)

// CategoryRule binds a spending category to its keyword patterns.
type CategoryRule struct {
	Name     string
	Patterns []*regexp.Regexp
}

func category(name string, exprs ...string) CategoryRule {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+expr))
	}
	return CategoryRule{Name: name, Patterns: compiled}
}

// Categories is the fixed, ordered spending-category table. A description
// matching several categories resolves to the one listed first here.
var Categories = []CategoryRule{
	category("Food & Dining",
		`restaurant|food|cafe|coffee|dinner|lunch|breakfast|swiggy|zomato|uber\s*eats`,
		`pizza|burger|groceries|supermarket`),
	category("Transportation",
		`uber|ola|lyft|taxi|cab|metro|bus|train|fuel|petrol|diesel|parking`,
		`transport|travel|railway`),
	category("Shopping",
		`amazon|flipkart|walmart|target|shop|store|market|mall|retail`,
		`purchase|buy|shopping`),
	category("Bills & Utilities",
		`electricity|water|gas|internet|wifi|broadband|phone|mobile|bill`,
		`recharge|utility|subscription|netflix|prime|spotify`),
	category("Investments",
		`mutual\s*fund|stock|share|equity|dividend|interest|investment`,
		`trading|broker|securities|demat|portfolio`),
	category("Healthcare",
		`hospital|doctor|medical|pharmacy|medicine|health|clinic|lab|test`,
		`healthcare|dental|optical`),
	category("Education",
		`school|college|university|course|class|training|education|tuition`,
		`book|study|learning`),
	category("Entertainment",
		`movie|theatre|concert|show|game|entertainment|sport|event`,
		`ticket|booking|party`),
	category("Salary",
		`salary|payment|wage|income|earnings|payroll`,
		`credited|deposit`),
	category("Insurance",
		`insurance|policy|premium|life|health|vehicle|car`,
		`coverage|protect`),
}
