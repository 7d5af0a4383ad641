package usecase

import (
	"context"
	"fmt"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Materializer turns scan candidates into response objects by fetching each
// candidate's detail record, which is the only view that reliably carries
// price and permalink.
type Materializer struct {
	source      domain.CatalogSource
	links       LinkBuilder
	locales     []string
	concurrency int
	logger      logrus.FieldLogger
}

// NewMaterializer creates a materializer. concurrency bounds the parallel
// detail fetches; 1 fetches one at a time in selection order.
func NewMaterializer(
	source domain.CatalogSource,
	links LinkBuilder,
	locales []string,
	concurrency int,
	logger logrus.FieldLogger,
) *Materializer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Materializer{
		source:      source,
		links:       links,
		locales:     locales,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Summaries enriches candidates in order and returns at most limit results.
// A candidate whose detail fetch gets an upstream error status is skipped.
func (m *Materializer) Summaries(ctx context.Context, candidates []ScoredCandidate, limit int) ([]domain.ProductSummary, error) {
	limit = max(limit, 0)
	results := make([]*domain.ProductSummary, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			detail, err := m.source.GetProduct(gctx, candidate.Item.ID)
			if err != nil {
				if upstream, ok := domain.AsUpstreamError(err); ok {
					m.logger.WithFields(logrus.Fields{
						"product_id": candidate.Item.ID,
						"status":     upstream.StatusCode,
					}).Warn("skipping product, detail fetch failed")
					return nil
				}
				return fmt.Errorf("fetch product %d: %w", candidate.Item.ID, err)
			}

			summary := m.summarize(detail, candidate.Score)
			results[i] = &summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.ProductSummary, 0, min(limit, len(results)))
	for _, summary := range results {
		if summary == nil {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, *summary)
	}

	return out, nil
}

// Link enriches the single best candidate. Any detail failure is reported as
// domain.ErrDetailUnavailable.
func (m *Materializer) Link(ctx context.Context, candidate ScoredCandidate) (*domain.ProductLink, error) {
	detail, err := m.source.GetProduct(ctx, candidate.Item.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %d: %v", domain.ErrDetailUnavailable, candidate.Item.ID, err)
	}

	handle, _ := detail.Handle.Resolve(m.locales)
	permalink, _ := detail.Permalink.Resolve(m.locales)

	return &domain.ProductLink{
		ID:     detail.ID,
		Name:   m.displayName(detail),
		BuyURL: m.links.ForItem(permalink, handle),
	}, nil
}

func (m *Materializer) summarize(detail *domain.CatalogItem, score int) domain.ProductSummary {
	handle, _ := detail.Handle.Resolve(m.locales)
	permalink, _ := detail.Permalink.Resolve(m.locales)

	price := NormalizePrice(detail.Price, m.locales)
	if price.IsAbsent() && len(detail.Variants) > 0 {
		price = NormalizePrice(detail.Variants[0].Price, m.locales)
	}

	return domain.ProductSummary{
		ID:           detail.ID,
		Name:         m.displayName(detail),
		Handle:       handle,
		SKU:          firstSKU(detail.Variants),
		Price:        price,
		ComparePrice: NormalizePrice(detail.CompareAtPrice, m.locales),
		BuyURL:       m.links.ForItem(permalink, handle),
		Available:    detail.Published,
		Description:  optionalText(detail.Description, m.locales),
		Image:        firstImage(detail.Images),
		Score:        score,
	}
}

func optionalText(text domain.LocalizedText, locales []string) *string {
	if v, ok := text.Resolve(locales); ok {
		return &v
	}
	return nil
}

// displayName resolves the name in locale order, then falls back to the handle.
func (m *Materializer) displayName(item *domain.CatalogItem) string {
	if name, ok := item.Name.Resolve(m.locales); ok {
		return name
	}
	handle, _ := item.Handle.Resolve(m.locales)
	return handle
}

func firstSKU(variants []domain.Variant) *string {
	if len(variants) == 0 || variants[0].SKU == nil || *variants[0].SKU == "" {
		return nil
	}
	sku := *variants[0].SKU
	return &sku
}

func firstImage(images []domain.Image) *string {
	if len(images) == 0 || images[0].Src == "" {
		return nil
	}
	src := images[0].Src
	return &src
}
