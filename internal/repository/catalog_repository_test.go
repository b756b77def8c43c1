package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/repository/postgres"
)

func createTestRepository(t *testing.T) (CatalogRepository, func()) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// a second connection would open a different in-memory database
	db.SetMaxOpenConns(1)

	repo := NewCatalogRepository(postgres.New(db, 1))
	require.NoError(t, repo.EnsureSchema(context.Background()))

	return repo, func() { db.Close() }
}

func testProducts() []domain.Product {
	ordered := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "SKU-2", Name: "Pens", Category: "Office", Supplier: "Staples",
			CurrentStock: 45, ParLevel: 100, ReorderPoint: 30, UnitPrice: decimal.RequireFromString("0.99"),
			UnitOfMeasure: "pack", AutoOrderEnabled: true},
		{ID: "SKU-1", Name: "Paper", Category: "Office", Supplier: "Staples",
			CurrentStock: 15, ParLevel: 50, ReorderPoint: 20, UnitPrice: decimal.RequireFromString("4.99"),
			UnitOfMeasure: "ream", AutoOrderEnabled: true, LastOrderDate: &ordered},
		{ID: "SKU-3", Name: "Gloves", Category: "Medical", Supplier: "McKesson",
			CurrentStock: 2, ParLevel: 10, ReorderPoint: 3, UnitPrice: decimal.RequireFromString("79.99"),
			UnitOfMeasure: "box", AutoOrderEnabled: false},
	}
}

func TestCatalogRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	// ordered by id
	assert.Equal(t, "SKU-1", products[0].ID)
	assert.Equal(t, "SKU-2", products[1].ID)
	assert.Equal(t, "SKU-3", products[2].ID)

	paper := products[0]
	assert.Equal(t, "Paper", paper.Name)
	assert.Equal(t, 15.0, paper.CurrentStock)
	assert.Equal(t, 50.0, paper.ParLevel)
	assert.Equal(t, 20.0, paper.ReorderPoint)
	assert.True(t, decimal.RequireFromString("4.99").Equal(paper.UnitPrice), paper.UnitPrice.String())
	assert.Equal(t, "ream", paper.UnitOfMeasure)
	assert.True(t, paper.AutoOrderEnabled)
	require.NotNil(t, paper.LastOrderDate)
	assert.Equal(t, "2024-01-10", paper.LastOrderDate.UTC().Format("2006-01-02"))

	assert.Nil(t, products[1].LastOrderDate)
	assert.False(t, products[2].AutoOrderEnabled)
}

func TestCatalogRepositoryUpsertUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()))

	updated := testProducts()[1]
	updated.CurrentStock = 48
	updated.Supplier = "Office Depot"
	require.NoError(t, repo.UpsertProducts(ctx, []domain.Product{updated}))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, 48.0, products[0].CurrentStock)
	assert.Equal(t, "Office Depot", products[0].Supplier)
}

func TestCatalogRepositoryEmpty(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, nil))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogRepositoryDistinctValues(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()))

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medical", "Office"}, categories)

	suppliers, err := repo.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"McKesson", "Staples"}, suppliers)
}

func TestCatalogRepositorySetAutoOrder(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()))

	require.NoError(t, repo.SetAutoOrder(ctx, "SKU-3", true))
	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.True(t, products[2].AutoOrderEnabled)

	err = repo.SetAutoOrder(ctx, "SKU-404", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestCatalogRepositoryGetProduct(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()))

	p, err := repo.GetProduct(ctx, "SKU-3")
	require.NoError(t, err)
	assert.Equal(t, "Gloves", p.Name)
	assert.Equal(t, "McKesson", p.Supplier)

	_, err = repo.GetProduct(ctx, "SKU-404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogRepositoryUpsertRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	require.NoError(t, repo.UpsertProducts(ctx, testProducts()[:1]))

	ctx, cancel := context.WithCancel(ctx)
	cancel()

	err := repo.UpsertProducts(ctx, testProducts())
	require.Error(t, err)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogRepositoryKeepsPricePrecision(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := createTestRepository(t)
	defer cleanup()

	p := testProducts()[0]
	p.UnitPrice = decimal.RequireFromString("0.125")
	require.NoError(t, repo.UpsertProducts(ctx, []domain.Product{p}))

	stored, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.125").Equal(stored.UnitPrice), stored.UnitPrice.String())
}
