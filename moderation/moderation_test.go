package moderation

import "testing"

func TestContactLeakPolicy(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		allowed bool
	}{
		{"plain question", "Is it still available?", true},
		{"phone number run", "call me 08012345678", false},
		{"digit run embedded", "ring0801234567890 now", false},
		{"email address", "reach me at tunde@example.com", false},
		{"email no spaces", "tunde@mail.ng works", false},
		{"nine digits ok", "order ref 123456789", true},
		{"spaced digits slip through", "555 123 4567", true},
		{"obfuscated email slips through", "tunde at example dot com", true},
		{"price mention ok", "Rent is 1.8m per year", true},
		{"at sign without domain ok", "meet @ the gate", true},
	}

	p := ContactLeakPolicy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Evaluate(tt.text)
			if got.Allowed != tt.allowed {
				t.Fatalf("Evaluate(%q).Allowed = %v, want %v", tt.text, got.Allowed, tt.allowed)
			}
			if !tt.allowed && got.Reason != ReasonContactInfo {
				t.Fatalf("Evaluate(%q).Reason = %q, want %q", tt.text, got.Reason, ReasonContactInfo)
			}
			if tt.allowed && got.Reason != "" {
				t.Fatalf("Evaluate(%q).Reason = %q, want empty for allowed message", tt.text, got.Reason)
			}
		})
	}
}

func TestContactLeakPolicyIsPure(t *testing.T) {
	p := ContactLeakPolicy{}
	in := "call me 08012345678"
	first := p.Evaluate(in)
	second := p.Evaluate(in)
	if first != second {
		t.Fatalf("repeated Evaluate gave different verdicts: %+v then %+v", first, second)
	}
}
