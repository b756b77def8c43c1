package replenishment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/autoorder/internal/domain"
)

func product(id, category, supplier string, stock, reorder, par float64, price string, auto bool) domain.Product {
	return domain.Product{
		ID:               id,
		Name:             "Item " + id,
		Category:         category,
		Supplier:         supplier,
		CurrentStock:     stock,
		ReorderPoint:     reorder,
		ParLevel:         par,
		UnitPrice:        decimal.RequireFromString(price),
		UnitOfMeasure:    "each",
		AutoOrderEnabled: auto,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		stock   float64
		reorder float64
		par     float64
		want    domain.StockStatus
	}{
		{"below reorder point", 15, 20, 50, domain.StockStatusBelowPar},
		{"between reorder point and par", 45, 30, 100, domain.StockStatusAtPar},
		{"exactly at reorder point", 20, 20, 50, domain.StockStatusAtPar},
		{"exactly at par", 50, 20, 50, domain.StockStatusAbovePar},
		{"above par", 75, 20, 50, domain.StockStatusAbovePar},
		{"negative stock", -5, 0, 10, domain.StockStatusBelowPar},
		{"reorder point above par", 12, 15, 10, domain.StockStatusBelowPar},
		{"all zero", 0, 0, 0, domain.StockStatusAbovePar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := product("p", "c", "s", tt.stock, tt.reorder, tt.par, "1", true)
			assert.Equal(t, tt.want, Classify(p))
		})
	}
}

func TestSelectEligible(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Office", "Staples", 15, 20, 50, "4.99", true),
		product("b", "Office", "Staples", 45, 30, 100, "0.99", true),
		product("c", "Medical", "McKesson", 2, 3, 10, "79.99", true),
		product("d", "Medical", "McKesson", 1, 3, 10, "12.00", false),
		product("e", "Medical", "Henry Schein", 3, 3, 10, "5.00", true),
	}

	eligible := SelectEligible(catalog)

	ids := make([]string, 0, len(eligible))
	for _, p := range eligible {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids, "catalog order preserved, disabled and stocked products excluded")
}

func TestReorderPointBoundaryDivergence(t *testing.T) {
	p := product("edge", "Office", "Staples", 20, 20, 50, "2.50", true)

	assert.Equal(t, domain.StockStatusAtPar, Classify(p))
	assert.True(t, IsEligible(p))
	assert.Len(t, SelectEligible([]domain.Product{p}), 1)
}

func TestComputeOrderExamples(t *testing.T) {
	t.Run("example 1", func(t *testing.T) {
		p := product("1", "Office", "Staples", 15, 20, 50, "4.99", true)
		assert.Equal(t, domain.StockStatusBelowPar, Classify(p))
		require.True(t, IsEligible(p))

		order := ComputeOrder(p)
		assert.Equal(t, 35.0, order.OrderQuantity)
		assert.Equal(t, "174.65", order.EstimatedCost.String())
	})

	t.Run("example 2", func(t *testing.T) {
		p := product("2", "Office", "Staples", 45, 30, 100, "0.99", true)
		assert.Equal(t, domain.StockStatusAtPar, Classify(p))
		assert.False(t, IsEligible(p))
	})

	t.Run("example 3", func(t *testing.T) {
		p := product("3", "Medical", "McKesson", 2, 3, 10, "79.99", true)
		assert.Equal(t, domain.StockStatusBelowPar, Classify(p))
		require.True(t, IsEligible(p))

		order := ComputeOrder(p)
		assert.Equal(t, 8.0, order.OrderQuantity)
		assert.Equal(t, "639.92", order.EstimatedCost.String())
	})
}

func TestComputeOrderPropagatesNegativeQuantity(t *testing.T) {
	p := product("bad", "Office", "Staples", 12, 15, 10, "3.00", true)
	require.True(t, IsEligible(p))

	order := ComputeOrder(p)
	assert.Equal(t, -2.0, order.OrderQuantity)
	assert.Equal(t, "-6", order.EstimatedCost.String())

	p.CurrentStock = 10
	order = ComputeOrder(p)
	assert.Equal(t, 0.0, order.OrderQuantity)
	assert.True(t, order.EstimatedCost.IsZero())
}

func TestBuildCategorySummary(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Paper", "Staples", 1, 5, 10, "1", true),
		product("b", "Gloves", "McKesson", 7, 5, 10, "1", true),
		product("c", "Paper", "Staples", 5, 5, 10, "1", true),
		product("d", "Paper", "Staples", 12, 5, 10, "1", true),
		product("e", "Gloves", "McKesson", 20, 5, 10, "1", true),
		product("f", "Ink", "Staples", 0, 5, 10, "1", true),
	}

	summaries := BuildCategorySummary(catalog)

	require.Len(t, summaries, 3)
	assert.Equal(t, domain.CategorySummary{Category: "Paper", BelowPar: 1, AtPar: 1, AbovePar: 1}, summaries[0])
	assert.Equal(t, domain.CategorySummary{Category: "Gloves", BelowPar: 0, AtPar: 1, AbovePar: 1}, summaries[1])
	assert.Equal(t, domain.CategorySummary{Category: "Ink", BelowPar: 1, AtPar: 0, AbovePar: 0}, summaries[2])

	counts := map[string]int{}
	for _, p := range catalog {
		counts[p.Category]++
	}
	for _, s := range summaries {
		assert.Equal(t, counts[s.Category], s.Total(), "category %s", s.Category)
	}
}

func TestBuildSupplierSummary(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Paper", "Staples", 15, 20, 50, "4.99", true),
		product("b", "Gloves", "McKesson", 2, 3, 10, "79.99", true),
		product("c", "Paper", "Staples", 1, 20, 50, "1.00", false),
		product("d", "Ink", "staples", 0, 5, 10, "2.00", true),
		product("e", "Paper", "Staples", 10, 20, 50, "0.50", true),
	}

	summaries := BuildSupplierSummary(catalog, SelectEligible(catalog))

	require.Len(t, summaries, 3)

	staples := summaries[0]
	assert.Equal(t, "Staples", staples.Supplier)
	assert.Equal(t, 3, staples.ProductCount)
	assert.Equal(t, 2, staples.AutoOrderEnabled)
	assert.Equal(t, 2, staples.PendingOrders)
	assert.Equal(t, "194.65", staples.EstimatedOrderValue.String())

	assert.Equal(t, "McKesson", summaries[1].Supplier)
	assert.Equal(t, 1, summaries[1].PendingOrders)
	assert.Equal(t, "639.92", summaries[1].EstimatedOrderValue.String())

	// no case folding on supplier keys
	assert.Equal(t, "staples", summaries[2].Supplier)
	assert.Equal(t, 1, summaries[2].ProductCount)
	assert.Equal(t, "20", summaries[2].EstimatedOrderValue.String())
}

func TestBuildSupplierSummaryAppendsEligibleOnlySuppliers(t *testing.T) {
	catalog := []domain.Product{product("a", "Paper", "Staples", 40, 20, 50, "1", true)}
	eligible := []domain.Product{product("x", "Paper", "Uline", 0, 5, 10, "1", true)}

	summaries := BuildSupplierSummary(catalog, eligible)

	require.Len(t, summaries, 2)
	assert.Equal(t, "Staples", summaries[0].Supplier)
	assert.Equal(t, 0, summaries[0].PendingOrders)
	assert.True(t, summaries[0].EstimatedOrderValue.IsZero())
	assert.Equal(t, "Uline", summaries[1].Supplier)
	assert.Equal(t, 0, summaries[1].ProductCount)
	assert.Equal(t, 1, summaries[1].PendingOrders)
}

func TestFilter(t *testing.T) {
	catalog := []domain.Product{
		{ID: "OFF-001", Name: "Copy Paper", Category: "Office Supplies", Supplier: "Staples"},
		{ID: "OFF-002", Name: "Toner Cartridge", Category: "Office Supplies", Supplier: "Staples"},
		{ID: "MED-001", Name: "Nitrile Gloves", Category: "Medical Supplies", Supplier: "McKesson"},
	}

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{"zero criteria keeps everything", domain.FilterCriteria{}, []string{"OFF-001", "OFF-002", "MED-001"}},
		{"all keeps everything", domain.FilterCriteria{Category: "all", Supplier: "all"}, []string{"OFF-001", "OFF-002", "MED-001"}},
		{"supplier exact match", domain.FilterCriteria{Supplier: "Staples"}, []string{"OFF-001", "OFF-002"}},
		{"supplier match is case sensitive", domain.FilterCriteria{Supplier: "staples"}, []string{}},
		{"category exact match", domain.FilterCriteria{Category: "Medical Supplies"}, []string{"MED-001"}},
		{"search on name ignores case", domain.FilterCriteria{SearchText: "TONER"}, []string{"OFF-002"}},
		{"search on id", domain.FilterCriteria{SearchText: "med-"}, []string{"MED-001"}},
		{"search on supplier", domain.FilterCriteria{SearchText: "kess"}, []string{"MED-001"}},
		{"search on category", domain.FilterCriteria{SearchText: "office"}, []string{"OFF-001", "OFF-002"}},
		{"criteria combine with and", domain.FilterCriteria{Supplier: "Staples", SearchText: "paper"}, []string{"OFF-001"}},
		{"no match", domain.FilterCriteria{Category: "Office Supplies", Supplier: "McKesson"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(catalog, tt.criteria)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterThenSupplierSummary(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Paper", "Staples", 15, 20, 50, "4.99", true),
		product("b", "Gloves", "McKesson", 2, 3, 10, "79.99", true),
		product("c", "Ink", "Staples", 45, 30, 100, "0.99", true),
	}

	filtered := Filter(catalog, domain.FilterCriteria{Supplier: "Staples"})
	require.Len(t, filtered, 2)

	summaries := BuildSupplierSummary(filtered, SelectEligible(filtered))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Staples", summaries[0].Supplier)
	assert.Equal(t, len(filtered), summaries[0].ProductCount)
	assert.Equal(t, 1, summaries[0].PendingOrders)
}

func TestEmptyCatalog(t *testing.T) {
	assert.NotNil(t, BuildCategorySummary(nil))
	assert.Empty(t, BuildCategorySummary(nil))
	assert.NotNil(t, BuildSupplierSummary(nil, nil))
	assert.Empty(t, BuildSupplierSummary(nil, nil))
	assert.Empty(t, SelectEligible(nil))
	assert.Empty(t, Filter(nil, domain.FilterCriteria{}))

	report := Evaluate(nil, domain.FilterCriteria{})
	assert.Empty(t, report.Categories)
	assert.Empty(t, report.Suppliers)
	assert.Empty(t, report.Candidates)
	assert.Equal(t, 0, report.Totals.Products)
	assert.Equal(t, 0.0, report.Totals.BelowParRatio)
	assert.Equal(t, 0.0, report.Totals.PendingRatio)
	assert.True(t, report.Totals.EstimatedOrderValue.IsZero())
}

func TestEvaluate(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Paper", "Staples", 15, 20, 50, "4.99", true),
		product("b", "Paper", "Staples", 45, 30, 100, "0.99", true),
		product("c", "Gloves", "McKesson", 2, 3, 10, "79.99", true),
		product("d", "Gloves", "McKesson", 200, 30, 100, "9.99", false),
	}

	report := Evaluate(catalog, domain.FilterCriteria{})

	assert.Equal(t, domain.FilterCriteria{Category: "all", Supplier: "all"}, report.Criteria)
	assert.Equal(t, map[string]domain.StockStatus{
		"a": domain.StockStatusBelowPar,
		"b": domain.StockStatusAtPar,
		"c": domain.StockStatusBelowPar,
		"d": domain.StockStatusAbovePar,
	}, report.Statuses)
	require.Len(t, report.Products, 4)
	assert.Equal(t, domain.StockStatusAtPar, report.Products[1].Status)

	require.Len(t, report.Candidates, 2)
	assert.Equal(t, "a", report.Candidates[0].Product.ID)
	assert.Equal(t, "c", report.Candidates[1].Product.ID)

	assert.Equal(t, 4, report.Totals.Products)
	assert.Equal(t, 2, report.Totals.ByStatus[domain.StockStatusBelowPar])
	assert.Equal(t, 1, report.Totals.ByStatus[domain.StockStatusAtPar])
	assert.Equal(t, 1, report.Totals.ByStatus[domain.StockStatusAbovePar])
	assert.Equal(t, 2, report.Totals.PendingOrders)
	assert.Equal(t, "814.57", report.Totals.EstimatedOrderValue.String())
	assert.InDelta(t, 0.5, report.Totals.BelowParRatio, 1e-9)
	assert.InDelta(t, 0.5, report.Totals.PendingRatio, 1e-9)

	filtered := Evaluate(catalog, domain.FilterCriteria{Category: "Gloves"})
	assert.Equal(t, 2, filtered.Totals.Products)
	assert.Equal(t, 1, filtered.Totals.PendingOrders)
	require.Len(t, filtered.Categories, 1)
	assert.Equal(t, "Gloves", filtered.Categories[0].Category)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	catalog := []domain.Product{
		product("a", "Paper", "Staples", 15, 20, 50, "4.99", true),
		product("b", "Gloves", "McKesson", 2, 3, 10, "79.99", true),
		product("c", "Ink", "Staples", 45, 30, 100, "0.99", false),
	}
	criteria := domain.FilterCriteria{SearchText: "a"}

	first := Evaluate(catalog, criteria)
	second := Evaluate(catalog, criteria)

	assert.Equal(t, first, second)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(0, 0))
	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 0.25, Ratio(1, 4))
}
