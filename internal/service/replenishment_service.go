package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/autoorder/internal/cache"
	"github.com/andresuchdata/autoorder/internal/catalog"
	"github.com/andresuchdata/autoorder/internal/domain"
	"github.com/andresuchdata/autoorder/internal/replenishment"
)

// ErrReadOnlyCatalog is returned when the configured catalog cannot persist changes.
var ErrReadOnlyCatalog = errors.New("catalog source is read-only")

type ReplenishmentService struct {
	provider catalog.Provider
	cache    cache.ReportCache
}

func NewReplenishmentService(provider catalog.Provider, cacheImpl cache.ReportCache) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReplenishmentService{provider: provider, cache: cacheImpl}
}

// Source names the catalog provider backing the service.
func (s *ReplenishmentService) Source() string {
	return s.provider.Name()
}

func (s *ReplenishmentService) GetReport(ctx context.Context, criteria domain.FilterCriteria) (*domain.ReplenishmentReport, error) {
	criteria = criteria.Normalize()
	source := s.provider.Name()

	if report, ok, err := s.cache.GetReport(ctx, source, criteria); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("replenishment: cache get report failed")
	}

	products, err := s.provider.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	report := replenishment.Evaluate(products, criteria)

	if err := s.cache.SetReport(ctx, source, criteria, &report); err != nil {
		log.Warn().Err(err).Str("source", source).Msg("replenishment: cache set report failed")
	}

	log.Debug().
		Str("source", source).
		Int("products", report.Totals.Products).
		Int("pending_orders", report.Totals.PendingOrders).
		Msg("replenishment: report evaluated")

	return &report, nil
}

// GetProducts returns the filtered products with their status, optionally
// restricted to one status.
func (s *ReplenishmentService) GetProducts(ctx context.Context, criteria domain.FilterCriteria, status *domain.StockStatus) ([]domain.ProductStatus, error) {
	report, err := s.GetReport(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return report.Products, nil
	}

	rows := make([]domain.ProductStatus, 0, len(report.Products))
	for _, row := range report.Products {
		if row.Status == *status {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *ReplenishmentService) GetCandidates(ctx context.Context, criteria domain.FilterCriteria) ([]domain.OrderCandidate, error) {
	report, err := s.GetReport(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.Candidates, nil
}

func (s *ReplenishmentService) GetCategorySummary(ctx context.Context, criteria domain.FilterCriteria) ([]domain.CategorySummary, error) {
	report, err := s.GetReport(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.Categories, nil
}

func (s *ReplenishmentService) GetSupplierSummary(ctx context.Context, criteria domain.FilterCriteria) ([]domain.SupplierSummary, error) {
	report, err := s.GetReport(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.Suppliers, nil
}

// GetProduct returns one product with its current status.
func (s *ReplenishmentService) GetProduct(ctx context.Context, productID string) (*domain.ProductStatus, error) {
	if getter, ok := s.provider.(catalog.ProductGetter); ok {
		p, err := getter.Product(ctx, productID)
		if err != nil {
			return nil, err
		}
		return &domain.ProductStatus{Product: *p, Status: replenishment.Classify(*p)}, nil
	}

	products, err := s.provider.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, p := range products {
		if p.ID == productID {
			return &domain.ProductStatus{Product: p, Status: replenishment.Classify(p)}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
}

// GetFilterOptions lists the distinct categories and suppliers of the whole
// catalog. Providers that can list them directly are asked for them; otherwise
// they are collected from the catalog in first-seen order.
func (s *ReplenishmentService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	if lister, ok := s.provider.(catalog.OptionsLister); ok {
		return lister.FilterOptions(ctx)
	}

	products, err := s.provider.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	opts := &domain.FilterOptions{
		Categories: make([]string, 0),
		Suppliers:  make([]string, 0),
	}
	seenCategory := make(map[string]struct{})
	seenSupplier := make(map[string]struct{})
	for _, p := range products {
		if _, ok := seenCategory[p.Category]; !ok {
			seenCategory[p.Category] = struct{}{}
			opts.Categories = append(opts.Categories, p.Category)
		}
		if _, ok := seenSupplier[p.Supplier]; !ok {
			seenSupplier[p.Supplier] = struct{}{}
			opts.Suppliers = append(opts.Suppliers, p.Supplier)
		}
	}
	return opts, nil
}

// SetAutoOrder toggles auto ordering for one product and drops cached reports.
func (s *ReplenishmentService) SetAutoOrder(ctx context.Context, productID string, enabled bool) error {
	updater, ok := s.provider.(catalog.AutoOrderUpdater)
	if !ok {
		return fmt.Errorf("%w: %s", ErrReadOnlyCatalog, s.provider.Name())
	}

	if err := updater.SetAutoOrder(ctx, productID, enabled); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("replenishment: cache invalidate failed")
	}

	log.Info().
		Str("product_id", productID).
		Bool("enabled", enabled).
		Msg("replenishment: auto order updated")
	return nil
}
