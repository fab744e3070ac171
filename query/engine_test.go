package query

import (
	"testing"
	"time"

	"github.com/Kingezdev/GreenGrass/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// testCatalog mirrors the landlord dashboard fixtures: three Lagos/Ibadan
// listings with distinct prices, dates and metrics.
func testCatalog() []models.Property {
	return []models.Property{
		{
			ExternalID: "PROP1001",
			Title:      "Modern 3-Bedroom Apartment",
			Location:   "Lekki Phase 1, Lagos",
			Price:      1800000,
			Status:     models.StatusActive,
			Views:      128,
			Inquiries:  15,
			CreatedAt:  day("2023-10-15"),
		},
		{
			ExternalID: "PROP1002",
			Title:      "Cozy 2-Bedroom Flat",
			Location:   "GRA, Ibadan",
			Price:      850000,
			Status:     models.StatusPending,
			Views:      45,
			Inquiries:  8,
			CreatedAt:  day("2023-11-20"),
		},
		{
			ExternalID: "PROP1003",
			Title:      "Luxury Villa VI",
			Location:   "Victoria Island, Lagos",
			Price:      3500000,
			Status:     models.StatusRented,
			Views:      256,
			Inquiries:  32,
			CreatedAt:  day("2023-09-05"),
		},
	}
}

func ids(rows []models.Property) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ExternalID
	}
	return out
}

func assertOrder(t *testing.T, got []models.Property, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d %v", len(got), ids(got), len(want), want)
	}
	for i, id := range want {
		if got[i].ExternalID != id {
			t.Fatalf("position %d = %s, want %s (full order %v)", i, got[i].ExternalID, id, ids(got))
		}
	}
}

func TestApplyEmptySpecPreservesCatalogOrder(t *testing.T) {
	got := Apply(testCatalog(), Spec{})
	assertOrder(t, got, "PROP1001", "PROP1002", "PROP1003")
}

func TestApplyIsIdempotent(t *testing.T) {
	spec := Spec{SearchTerm: "lagos", SortBy: SortPriceLow}
	catalog := testCatalog()
	first := Apply(catalog, spec)
	second := Apply(catalog, spec)
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ExternalID != second[i].ExternalID {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i].ExternalID, second[i].ExternalID)
		}
	}
}

func TestApplyDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	Apply(catalog, Spec{SortBy: SortPriceHigh})
	assertOrder(t, catalog, "PROP1001", "PROP1002", "PROP1003")
}

func TestApplySearchMatchesTitleOrLocation(t *testing.T) {
	// "lekki" hits location of PROP1001; "villa" hits title of PROP1003.
	assertOrder(t, Apply(testCatalog(), Spec{SearchTerm: "LEKKI"}), "PROP1001")
	assertOrder(t, Apply(testCatalog(), Spec{SearchTerm: "villa"}), "PROP1003")
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	got := Apply(testCatalog(), Spec{SearchTerm: "lagos", Status: models.StatusActive})
	assertOrder(t, got, "PROP1001")
}

func TestApplyWhitespaceSearchTermIsNoConstraint(t *testing.T) {
	got := Apply(testCatalog(), Spec{SearchTerm: "   "})
	assertOrder(t, got, "PROP1001", "PROP1002", "PROP1003")
}

func TestApplyUnknownStatusIsNoConstraint(t *testing.T) {
	got := Apply(testCatalog(), Spec{Status: "sublet"})
	assertOrder(t, got, "PROP1001", "PROP1002", "PROP1003")
}

func TestApplySorts(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []string
	}{
		{SortNewest, []string{"PROP1002", "PROP1001", "PROP1003"}},
		{SortOldest, []string{"PROP1003", "PROP1001", "PROP1002"}},
		{SortPriceHigh, []string{"PROP1003", "PROP1001", "PROP1002"}},
		{SortPriceLow, []string{"PROP1002", "PROP1001", "PROP1003"}},
		{SortViews, []string{"PROP1003", "PROP1001", "PROP1002"}},
		{SortInquiries, []string{"PROP1003", "PROP1001", "PROP1002"}},
		{"cheapest-first", []string{"PROP1001", "PROP1002", "PROP1003"}}, // unknown -> catalog order
		{"", []string{"PROP1001", "PROP1002", "PROP1003"}},
	}
	for _, tt := range tests {
		t.Run("sortBy="+tt.sortBy, func(t *testing.T) {
			assertOrder(t, Apply(testCatalog(), Spec{SortBy: tt.sortBy}), tt.want...)
		})
	}
}

func TestApplySortIsStable(t *testing.T) {
	catalog := []models.Property{
		{ExternalID: "A", Price: 850000},
		{ExternalID: "B", Price: 850000},
		{ExternalID: "C", Price: 500000},
		{ExternalID: "D", Price: 850000},
	}
	got := Apply(catalog, Spec{SortBy: SortPriceLow})
	assertOrder(t, got, "C", "A", "B", "D")
}

func TestApplyEmptyCatalog(t *testing.T) {
	got := Apply(nil, Spec{SearchTerm: "lekki", SortBy: SortNewest})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
	if got == nil {
		t.Fatalf("expected empty non-nil slice, got nil")
	}
}
