package utils

import "testing"

func TestIsValidExternalID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"PROP1001", true},
		{"PROP99999", true},
		{"PROP999", false},
		{"PROP", false},
		{"PROPabc", false},
		{"1001", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidExternalID(tt.id); got != tt.valid {
			t.Errorf("IsValidExternalID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestGenerateQueryCacheKeyIsOrderIndependent(t *testing.T) {
	a := GenerateQueryCacheKey("listings:landlord", map[string]string{"search": "lekki", "status": "active"})
	b := GenerateQueryCacheKey("listings:landlord", map[string]string{"status": "active", "search": "lekki"})
	if a != b {
		t.Fatalf("equivalent params hashed differently: %s vs %s", a, b)
	}

	c := GenerateQueryCacheKey("listings:landlord", map[string]string{"search": "ibadan"})
	if a == c {
		t.Fatalf("different params collided on %s", a)
	}
}
