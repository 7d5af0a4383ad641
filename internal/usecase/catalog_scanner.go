package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
)

// ScanConfig holds the pagination and threshold policy of catalog scans.
//
// MaxPages and LinkMaxPages are safety valves against a platform that never
// serves an empty page; the empty page is the real end-of-catalog signal.
type ScanConfig struct {
	PageSize       int
	MaxPages       int // multi-result scans
	LinkMaxPages   int // single-best scans
	OverCollect    int // candidate count that ends a multi-result scan
	EnrichFloor    int // minimum number of candidates handed to enrichment
	EarlyExitScore int // single-best scans stop after a page once this is reached
	MinAcceptScore int // single-best results below this are not found
	Locales        []string
}

// DefaultScanConfig returns the reference scan policy.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		PageSize:       200,
		MaxPages:       30,
		LinkMaxPages:   20,
		OverCollect:    100,
		EnrichFloor:    5,
		EarlyExitScore: 10,
		MinAcceptScore: 3,
		Locales:        []string{"es", "pt", "en"},
	}
}

func (c ScanConfig) withDefaults() ScanConfig {
	d := DefaultScanConfig()
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.MaxPages <= 0 {
		c.MaxPages = d.MaxPages
	}
	if c.LinkMaxPages <= 0 {
		c.LinkMaxPages = d.LinkMaxPages
	}
	if c.OverCollect <= 0 {
		c.OverCollect = d.OverCollect
	}
	if c.EnrichFloor <= 0 {
		c.EnrichFloor = d.EnrichFloor
	}
	if c.EarlyExitScore <= 0 {
		c.EarlyExitScore = d.EarlyExitScore
	}
	if c.MinAcceptScore <= 0 {
		c.MinAcceptScore = d.MinAcceptScore
	}
	if len(c.Locales) == 0 {
		c.Locales = d.Locales
	}
	return c
}

// ScoredCandidate is a catalog item that cleared the score bar during a scan.
// Position is its index in traversal order.
type ScoredCandidate struct {
	Score    int
	Position int
	Item     domain.CatalogItem
}

// CatalogScanner pages through the catalog and ranks items against a query.
type CatalogScanner struct {
	source domain.CatalogSource
	cfg    ScanConfig
	logger logrus.FieldLogger
}

// NewCatalogScanner creates a scanner over source
func NewCatalogScanner(source domain.CatalogSource, cfg ScanConfig, logger logrus.FieldLogger) *CatalogScanner {
	return &CatalogScanner{
		source: source,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// EnrichCount is the number of candidates a multi-result scan hands to
// enrichment for the given result limit.
func (s *CatalogScanner) EnrichCount(limit int) int {
	return max(limit, s.cfg.EnrichFloor)
}

// Collect runs a multi-result scan and returns up to EnrichCount(limit)
// candidates ordered by descending score, ties in traversal order.
func (s *CatalogScanner) Collect(ctx context.Context, query Query, limit int) ([]ScoredCandidate, error) {
	enrichCount := s.EnrichCount(limit)
	bound := max(s.cfg.OverCollect, enrichCount)

	var candidates []ScoredCandidate
	position := 0
	pages := 0

scan:
	for page := 1; page <= s.cfg.MaxPages; page++ {
		items, err := s.source.ListProducts(ctx, page, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list products page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}
		pages++

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			score := s.score(query, item)
			position++
			if score <= 0 {
				continue
			}
			candidates = append(candidates, ScoredCandidate{Score: score, Position: position - 1, Item: item})

			// Browse mode ties every item at 1, so later pages cannot outrank what we hold
			if query.IsEmpty() && len(candidates) >= enrichCount {
				break scan
			}
			if len(candidates) > bound {
				break scan
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	s.logger.WithFields(logrus.Fields{
		"query":      query.Text(),
		"pages":      pages,
		"scanned":    position,
		"candidates": len(candidates),
	}).Debug("catalog scan finished")

	if len(candidates) > enrichCount {
		candidates = candidates[:enrichCount]
	}
	return candidates, nil
}

// FindBest runs a single-best scan. The earliest item wins ties. Returns
// domain.ErrProductNotFound when nothing reaches MinAcceptScore.
func (s *CatalogScanner) FindBest(ctx context.Context, query Query) (*ScoredCandidate, error) {
	var best *ScoredCandidate
	highestScore := -1 // so the first item is held even at score 0
	position := 0

	for page := 1; page <= s.cfg.LinkMaxPages; page++ {
		items, err := s.source.ListProducts(ctx, page, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list products page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			score := s.score(query, item)
			if score > highestScore {
				highestScore = score
				best = &ScoredCandidate{Score: score, Position: position, Item: item}
			}
			position++
		}

		if highestScore >= s.cfg.EarlyExitScore {
			break
		}
	}

	if best == nil || highestScore < s.cfg.MinAcceptScore {
		s.logger.WithFields(logrus.Fields{
			"query":      query.Text(),
			"scanned":    position,
			"best_score": highestScore,
		}).Debug("no acceptable match")
		return nil, domain.ErrProductNotFound
	}

	return best, nil
}

func (s *CatalogScanner) score(query Query, item domain.CatalogItem) int {
	if query.IsEmpty() {
		return browseScore
	}
	name, _ := item.Name.Resolve(s.cfg.Locales)
	handle, _ := item.Handle.Resolve(s.cfg.Locales)
	return query.Score(Normalize(name), Normalize(handle))
}
