package domain

import (
	"context"
	"encoding/json"
)

// CatalogSource defines the interface for reading the remote product catalog.
// Non-success responses are returned as *UpstreamError.
type CatalogSource interface {
	// ListProducts returns one listing page. An empty slice marks the end of the catalog.
	ListProducts(ctx context.Context, page, pageSize int) ([]CatalogItem, error)
	GetProduct(ctx context.Context, id int64) (*CatalogItem, error)
	// GetProductDocument returns the detail record exactly as served.
	GetProductDocument(ctx context.Context, id string) (json.RawMessage, error)
	ListVariants(ctx context.Context, productID string) ([]Variant, error)
	HasPromotionalProducts(ctx context.Context) (bool, error)
}

// OrderSource defines the interface for reading orders from the platform.
type OrderSource interface {
	GetOrder(ctx context.Context, id string) (json.RawMessage, error)
	FindOrdersByNumber(ctx context.Context, number string, limit int) ([]json.RawMessage, error)
}
