package patterns

import "testing"

func TestRulesetFirstMatchWins(t *testing.T) {
	rs := NewRuleset("none",
		mustRule("first", `alpha`),
		mustRule("second", `alpha|beta`),
	)

	tests := []struct {
		message string
		want    string
	}{
		{"alpha and beta here", "first"},
		{"only beta here", "second"},
		{"nothing relevant", "none"},
	}

	for _, tt := range tests {
		if got := rs.Classify(tt.message); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestRulesetCaseInsensitive(t *testing.T) {
	rs := NewRuleset("none", mustRule("hit", `debited`))

	if got := rs.Classify("Amount DEBITED from account"); got != "hit" {
		t.Errorf("Classify = %q, want hit", got)
	}
}

func TestDirectionOrdering(t *testing.T) {
	// A message carrying both debit and credit cues must classify as debit.
	if got := Direction.Classify("amount debited, will be credited back"); got != "debit" {
		t.Errorf("Direction.Classify = %q, want debit", got)
	}
}
