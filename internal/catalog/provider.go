// Package catalog supplies product catalog snapshots to the replenishment service.
//
// The engine never loads data itself; a Provider is injected into the service and
// each call to Products returns a fresh, caller-owned snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/autoorder/internal/domain"
)

// ErrUnsupportedFormat is returned for catalog files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Provider loads the current catalog snapshot.
type Provider interface {
	Name() string
	Products(ctx context.Context) ([]domain.Product, error)
}

// AutoOrderUpdater is implemented by providers backed by a writable store.
type AutoOrderUpdater interface {
	SetAutoOrder(ctx context.Context, productID string, enabled bool) error
}

// ProductGetter is implemented by providers that can look up a single product.
type ProductGetter interface {
	Product(ctx context.Context, productID string) (*domain.Product, error)
}

// OptionsLister is implemented by providers that can list filter values
// without loading the catalog.
type OptionsLister interface {
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	Label string
	Fn    func(ctx context.Context) ([]domain.Product, error)
}

func (f ProviderFunc) Name() string {
	if f.Label == "" {
		return "func"
	}
	return f.Label
}

func (f ProviderFunc) Products(ctx context.Context) ([]domain.Product, error) {
	return f.Fn(ctx)
}

// StaticProvider serves a fixed in-memory catalog.
type StaticProvider struct {
	name     string
	products []domain.Product
}

// NewStaticProvider copies products so later changes by the caller are not observed.
func NewStaticProvider(name string, products []domain.Product) *StaticProvider {
	if name == "" {
		name = "static"
	}
	return &StaticProvider{name: name, products: append([]domain.Product(nil), products...)}
}

func (p *StaticProvider) Name() string { return p.name }

func (p *StaticProvider) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), p.products...), nil
}

// MultiProvider concatenates the catalogs of several providers in order.
type MultiProvider struct {
	providers []Provider
}

func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

func (m *MultiProvider) Name() string {
	names := make([]string, 0, len(m.providers))
	for _, p := range m.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, "+")
}

func (m *MultiProvider) Products(ctx context.Context) ([]domain.Product, error) {
	return LoadAll(ctx, m.providers...)
}

// LoadAll loads every provider concurrently and concatenates the results in
// provider order. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, providers ...Provider) ([]domain.Product, error) {
	results := make([][]domain.Product, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			products, err := p.Products(gctx)
			if err != nil {
				return fmt.Errorf("load catalog %s: %w", p.Name(), err)
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]domain.Product, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
