// Package recurring detects repeating payment patterns in transaction
// history and projects upcoming obligations from them. Grouping is by exact
// description string; fuzzier clustering is deliberately out of scope.
package recurring

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/pkg/api"
)

// Recognized recurrence frequencies.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// DefaultHorizonDays is the obligation lookahead window used when the caller
// does not supply a positive horizon.
const DefaultHorizonDays = 7

// intervalDays maps each frequency to its fixed prediction offset. The
// offset is a flat day count, not a calendar-aware month/quarter/year step.
var intervalDays = map[string]int{
	FrequencyMonthly:   30,
	FrequencyQuarterly: 90,
	FrequencyYearly:    365,
}

// Group is one detected recurring payment series.
type Group struct {
	Description string
	Dates       []time.Time
	MeanAmount  decimal.Decimal
	Frequency   string
}

// Obligation is a projected upcoming payment derived from a recurring group.
type Obligation struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	DaysLeft    int    `json:"days_left"`
}

// DetectRecurring groups history by description and keeps the groups whose
// mean gap between consecutive occurrences lands in one of the recognized
// frequency bands. Groups need at least two distinct transaction dates to
// qualify. Output is sorted by description so repeated calls over the same
// history are deterministic.
func DetectRecurring(history []api.Transaction) []Group {
	byDescription := make(map[string][]api.Transaction)
	for _, txn := range history {
		byDescription[txn.Description] = append(byDescription[txn.Description], txn)
	}

	groups := make([]Group, 0, len(byDescription))
	for desc, txns := range byDescription {
		group, ok := classifyGroup(desc, txns)
		if !ok {
			continue
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Description < groups[j].Description
	})
	return groups
}

func classifyGroup(desc string, txns []api.Transaction) (Group, bool) {
	dates := make([]time.Time, 0, len(txns))
	sum := decimal.Zero
	for _, txn := range txns {
		dates = append(dates, txn.Date)
		sum = sum.Add(txn.Amount)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if countDistinct(dates) < 2 {
		return Group{}, false
	}

	freq, ok := classifyGap(meanGapDays(dates))
	if !ok {
		return Group{}, false
	}

	return Group{
		Description: desc,
		Dates:       dates,
		MeanAmount:  sum.Div(decimal.NewFromInt(int64(len(txns)))),
		Frequency:   freq,
	}, true
}

func countDistinct(dates []time.Time) int {
	seen := make(map[int64]struct{}, len(dates))
	for _, d := range dates {
		seen[d.UnixNano()] = struct{}{}
	}
	return len(seen)
}

// meanGapDays averages the whole-day gaps between consecutive sorted dates.
// Each gap is truncated to whole days before averaging; the mean itself is
// not truncated, so a series straddling a band edge stays outside the band.
func meanGapDays(dates []time.Time) float64 {
	total := 0
	for i := 1; i < len(dates); i++ {
		total += int(dates[i].Sub(dates[i-1]).Hours() / 24)
	}
	return float64(total) / float64(len(dates)-1)
}

// classifyGap maps a mean gap to a frequency via inclusive tolerance bands.
// Gaps outside every band mean the series is not recurring.
func classifyGap(days float64) (string, bool) {
	switch {
	case days >= 25 && days <= 35:
		return FrequencyMonthly, true
	case days >= 85 && days <= 95:
		return FrequencyQuarterly, true
	case days >= 350 && days <= 380:
		return FrequencyYearly, true
	default:
		return "", false
	}
}

// Upcoming projects the next due date of every recurring group and returns
// the obligations falling within horizonDays of now, overdue ones included
// (negative days left). Results are sorted by days left, most urgent first.
func Upcoming(history []api.Transaction, horizonDays int, now time.Time) []Obligation {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	var obligations []Obligation
	for _, group := range DetectRecurring(history) {
		last := group.Dates[len(group.Dates)-1]
		due := last.AddDate(0, 0, intervalDays[group.Frequency])
		daysLeft := int(math.Floor(due.Sub(now).Hours() / 24))
		if daysLeft > horizonDays {
			continue
		}
		obligations = append(obligations, Obligation{
			Description: group.Description,
			Amount:      group.MeanAmount.StringFixed(2),
			DueDate:     due.Format(time.DateOnly),
			DaysLeft:    daysLeft,
		})
	}

	sort.SliceStable(obligations, func(i, j int) bool {
		return obligations[i].DaysLeft < obligations[j].DaysLeft
	})
	return obligations
}
