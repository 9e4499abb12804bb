package extractor

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "rs with dot and thousands separator",
			message: "Rs. 1,234.50 debited from your account",
			want:    "1234.5",
		},
		{
			name:    "rs without punctuation",
			message: "Rs 500 debited at Cafe Coffee Day on 12/05",
			want:    "500",
		},
		{
			name:    "inr code with indian grouping",
			message: "INR 12,34,567.89 credited to A/c XX1234",
			want:    "1234567.89",
		},
		{
			name:    "rupee symbol",
			message: "₹250.75 paid to merchant@okicici",
			want:    "250.75",
		},
		{
			name:    "dollar symbol",
			message: "$99.99 spent on your card",
			want:    "99.99",
		},
		{
			name:    "pound symbol",
			message: "£15 paid for subscription",
			want:    "15",
		},
		{
			name:    "rs with colon",
			message: "Rs:820 debited via UPI",
			want:    "820",
		},
		{
			name:    "no currency cue",
			message: "Your OTP is 482910, valid for 10 minutes",
			want:    "0",
		},
		{
			name:    "bare number without cue",
			message: "You spent 300 at the store",
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.message)
			want, err := decimal.NewFromString(tt.want)
			if err != nil {
				t.Fatalf("bad want value %q: %v", tt.want, err)
			}
			if !got.Amount.Equal(want) {
				t.Errorf("Extract(%q).Amount = %s, want %s", tt.message, got.Amount, want)
			}
		})
	}
}

func TestExtractCurrency(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"foreign currency code", "USD 100 spent on your card", "USD"},
		{"lowercase code", "charged eur 45.50 at checkout", "EUR"},
		{"domestic currency not whitelisted", "INR 500 debited", ""},
		{"code inside a word ignored", "STATUSDONE for your request", ""},
		{"no currency", "Rs 500 debited", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.message)
			if got.Currency != tt.want {
				t.Errorf("Extract(%q).Currency = %q, want %q", tt.message, got.Currency, tt.want)
			}
		})
	}
}

func TestExtractCounterpartyID(t *testing.T) {
	got := Extract("Rs 120 paid to merchant@okicici via UPI")
	if got.CounterpartyID != "merchant@okicici" {
		t.Errorf("CounterpartyID = %q, want %q", got.CounterpartyID, "merchant@okicici")
	}

	got = Extract("Rs 120 debited from your account")
	if got.CounterpartyID != "" {
		t.Errorf("CounterpartyID = %q, want empty", got.CounterpartyID)
	}
}

func TestExtractTimeFragment(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Rs 500 debited at 14:35:22 from A/c", "14:35:22"},
		{"Rs 500 debited at 9:05 am", "9:05 am"},
		{"Rs 500 debited on 12/05", ""},
	}

	for _, tt := range tests {
		got := Extract(tt.message)
		if got.TimeFragment != tt.want {
			t.Errorf("Extract(%q).TimeFragment = %q, want %q", tt.message, got.TimeFragment, tt.want)
		}
	}
}

func TestExtractReference(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"utr keyword", "Rs 500 debited, UTR No. 1234ABCD", "1234ABCD"},
		{"rrn keyword", "Rs 500 via UPI RRN: 987654321", "987654321"},
		{"ref keyword", "Rs 500 paid, Ref no 555777", "555777"},
		{"reference spelled out", "Reference number 42XYZ for your payment", "42XYZ"},
		{"no reference", "Rs 500 debited from your account", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.message)
			if got.Reference != tt.want {
				t.Errorf("Extract(%q).Reference = %q, want %q", tt.message, got.Reference, tt.want)
			}
		})
	}
}
