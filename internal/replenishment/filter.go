package replenishment

import (
	"strings"

	"github.com/andresuchdata/autoorder/internal/domain"
)

// Matches reports whether a product passes every dimension of the criteria.
func Matches(p domain.Product, criteria domain.FilterCriteria) bool {
	c := criteria.Normalize()

	if c.Category != domain.AllFilterValue && p.Category != c.Category {
		return false
	}
	if c.Supplier != domain.AllFilterValue && p.Supplier != c.Supplier {
		return false
	}

	return matchesSearch(p, c.SearchText)
}

// Filter returns the products matching the criteria in catalog order.
func Filter(catalog []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if Matches(p, criteria) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}

	query := strings.ToLower(search)
	for _, field := range []string{p.ID, p.Name, p.Category, p.Supplier} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
