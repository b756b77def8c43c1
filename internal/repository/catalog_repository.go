// internal/repository/catalog_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/repository/postgres"
)

type CatalogRepository interface {
	EnsureSchema(ctx context.Context) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSuppliers(ctx context.Context) ([]string, error)
	UpsertProducts(ctx context.Context, products []domain.Product) error
	SetAutoOrder(ctx context.Context, productID string, enabled bool) error
}

// Statements are written with ? placeholders and rebound for the driver in use.
const (
	productsSchema = `
		CREATE TABLE IF NOT EXISTS products (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			category           TEXT NOT NULL,
			supplier           TEXT NOT NULL,
			current_stock      DOUBLE PRECISION NOT NULL DEFAULT 0,
			par_level          DOUBLE PRECISION NOT NULL DEFAULT 0,
			reorder_point      DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_price         NUMERIC NOT NULL DEFAULT 0,
			unit_of_measure    TEXT NOT NULL DEFAULT '',
			auto_order_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			last_order_date    TIMESTAMP NULL,
			updated_at         TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	productsCategoryIndex = `CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`
	productsSupplierIndex = `CREATE INDEX IF NOT EXISTS idx_products_supplier ON products (supplier)`

	productColumns = `
		id, name, category, supplier, current_stock, par_level, reorder_point,
		unit_price, unit_of_measure, auto_order_enabled, last_order_date`

	upsertProduct = `
		INSERT INTO products (` + productColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			supplier = EXCLUDED.supplier,
			current_stock = EXCLUDED.current_stock,
			par_level = EXCLUDED.par_level,
			reorder_point = EXCLUDED.reorder_point,
			unit_price = EXCLUDED.unit_price,
			unit_of_measure = EXCLUDED.unit_of_measure,
			auto_order_enabled = EXCLUDED.auto_order_enabled,
			last_order_date = EXCLUDED.last_order_date,
			updated_at = CURRENT_TIMESTAMP`
)

type catalogRepository struct {
	db *postgres.DB
}

func NewCatalogRepository(db *postgres.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{productsSchema, productsCategoryIndex, productsSupplierIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error ensuring products schema: %w", err)
		}
	}
	return nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)

	var p domain.Product
	if err := r.db.GetContext(ctx, &p, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("error getting product %s: %w", productID, err)
	}
	return &p, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *catalogRepository) ListSuppliers(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "supplier")
}

// distinct is only called with fixed column names.
func (r *catalogRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM products ORDER BY %[1]s`, column)

	values := make([]string, 0)
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		return nil, fmt.Errorf("error listing %s values: %w", column, err)
	}
	return values, nil
}

func (r *catalogRepository) UpsertProducts(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := r.db.Rebind(upsertProduct)
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("error preparing product upsert: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			_, err := stmt.ExecContext(ctx,
				p.ID, p.Name, p.Category, p.Supplier,
				p.CurrentStock, p.ParLevel, p.ReorderPoint,
				p.UnitPrice, p.UnitOfMeasure, p.AutoOrderEnabled, p.LastOrderDate,
			)
			if err != nil {
				return fmt.Errorf("error upserting product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *catalogRepository) SetAutoOrder(ctx context.Context, productID string, enabled bool) error {
	query := r.db.Rebind(`
		UPDATE products
		SET auto_order_enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)

	res, err := r.db.ExecContext(ctx, query, enabled, productID)
	if err != nil {
		return fmt.Errorf("error updating auto order for %s: %w", productID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return nil
}
