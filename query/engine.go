// Package query evaluates a filter/sort specification against a listing
// catalog, producing an ordered subset. It never mutates the catalog and
// holds no state between calls: each invocation recomputes the full view,
// which keeps the engine free of stale-cache bugs at catalog sizes of
// tens to low hundreds of records.
package query

import (
	"sort"
	"strings"

	"github.com/Kingezdev/GreenGrass/models"
)

// Sort orders. Views and inquiries only make sense on landlord catalogs;
// the engine still honors them on any catalog that carries the metrics.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceHigh = "price-high"
	SortPriceLow  = "price-low"
	SortViews     = "views"
	SortInquiries = "inquiries"
)

// Spec is one search/filter/sort request. A zero field means no
// constraint on that dimension. Specs are treated as immutable inputs.
type Spec struct {
	SearchTerm string `query:"search" json:"searchTerm"`
	Status     string `query:"status" json:"status"`
	SortBy     string `query:"sortBy" json:"sortBy"`
}

// Apply returns the ordered subset of catalog matching every present
// constraint in spec. Filtering is conjunctive; the search term matches
// case-insensitively against title or location (either suffices).
// Unrecognized status or sortBy values degrade to "no constraint" rather
// than erroring. Ties between equal sort keys keep catalog order.
func Apply(catalog []models.Property, spec Spec) []models.Property {
	term := strings.ToLower(strings.TrimSpace(spec.SearchTerm))
	status := spec.Status
	if !models.ValidStatus(status) {
		status = ""
	}

	out := make([]models.Property, 0, len(catalog))
	for _, p := range catalog {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}

	sortListings(out, spec.SortBy)
	return out
}

func matchesTerm(p models.Property, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Location), term)
}

// sortListings orders rows in place. The stable sort preserves relative
// catalog order between records with equal keys, and an unknown sort
// name leaves the catalog order untouched.
func sortListings(rows []models.Property, sortBy string) {
	switch sortBy {
	case SortNewest:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	case SortPriceHigh:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Price > rows[j].Price })
	case SortPriceLow:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Price < rows[j].Price })
	case SortViews:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Views > rows[j].Views })
	case SortInquiries:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Inquiries > rows[j].Inquiries })
	}
}
