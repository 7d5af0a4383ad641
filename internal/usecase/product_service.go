package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	Scan              ScanConfig
	StoreBaseURL      string // storefront used for single product links
	CatalogBaseURL    string // storefront used for catalog search links
	ProductPath       string
	DetailConcurrency int
}

// ProductService answers catalog questions against the remote platform.
// Every call rescans the catalog; nothing is kept between requests.
type ProductService struct {
	source        domain.CatalogSource
	scanner       *CatalogScanner
	searchResults *Materializer
	linkResults   *Materializer
	locales       []string
	logger        logrus.FieldLogger
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	source domain.CatalogSource,
	config ProductServiceConfig,
	logger logrus.FieldLogger,
) *ProductService {
	scanner := NewCatalogScanner(source, config.Scan, logger)
	locales := scanner.cfg.Locales

	catalogBase := config.CatalogBaseURL
	if catalogBase == "" {
		catalogBase = config.StoreBaseURL
	}

	return &ProductService{
		source:  source,
		scanner: scanner,
		searchResults: NewMaterializer(
			source,
			NewLinkBuilder(catalogBase, config.ProductPath),
			locales,
			config.DetailConcurrency,
			logger,
		),
		linkResults: NewMaterializer(
			source,
			NewLinkBuilder(config.StoreBaseURL, config.ProductPath),
			locales,
			1,
			logger,
		),
		locales: locales,
		logger:  logger,
	}
}

// SearchProducts returns up to limit enriched products ordered by relevance.
// An empty query browses the catalog in source order.
func (s *ProductService) SearchProducts(ctx context.Context, q string, limit int) ([]domain.ProductSummary, error) {
	if limit < 1 {
		limit = 1
	}

	query := NewQuery(q)
	candidates, err := s.scanner.Collect(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.ProductSummary{}, nil
	}

	return s.searchResults.Summaries(ctx, candidates, limit)
}

// FindProductLink resolves a free-text query to the single best product and
// its buy link.
func (s *ProductService) FindProductLink(ctx context.Context, q string) (*domain.ProductLink, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.ErrMissingQuery
	}

	query := NewQuery(q)
	if query.IsEmpty() {
		// nothing searchable left after normalization, e.g. "???"
		return nil, domain.ErrProductNotFound
	}

	best, err := s.scanner.FindBest(ctx, query)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"query":      query.Text(),
		"product_id": best.Item.ID,
		"score":      best.Score,
	}).Debug("best match")

	return s.linkResults.Link(ctx, *best)
}

// GetProductDocument returns the platform's product detail as served.
func (s *ProductService) GetProductDocument(ctx context.Context, id string) (json.RawMessage, error) {
	doc, err := s.source.GetProductDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return doc, nil
}

// ListVariants returns the stock view of a product's variants.
func (s *ProductService) ListVariants(ctx context.Context, productID string) ([]domain.VariantStock, error) {
	variants, err := s.source.ListVariants(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants of product %s: %w", productID, err)
	}

	out := make([]domain.VariantStock, 0, len(variants))
	for _, v := range variants {
		out = append(out, domain.VariantStock{
			ID:        v.ID,
			SKU:       v.SKU,
			Options:   v.Values,
			Price:     NormalizePrice(v.Price, s.locales),
			Available: v.Available,
			Stock:     v.Stock,
		})
	}
	return out, nil
}
