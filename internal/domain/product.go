package domain

import "encoding/json"

// RawValue is an upstream JSON value relayed or normalized later.
type RawValue = json.RawMessage

// CatalogItem is a product as served by the catalog platform, either from the
// listing endpoint or the richer detail endpoint.
type CatalogItem struct {
	ID             int64         `json:"id"`
	Name           LocalizedText `json:"name"`
	Handle         LocalizedText `json:"handle"`
	Permalink      LocalizedText `json:"permalink"`
	Description    LocalizedText `json:"description"`
	Price          RawValue      `json:"price"`
	CompareAtPrice RawValue      `json:"compare_at_price"`
	Published      *bool         `json:"published"`
	Images         []Image       `json:"images"`
	Variants       []Variant     `json:"variants"`
}

// Image is a product picture.
type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// Variant is a purchasable option of a product (size, color...).
type Variant struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	SKU       *string  `json:"sku"`
	Price     RawValue `json:"price"`
	Stock     *int64   `json:"stock"`
	Available *bool    `json:"available"`
	Values    RawValue `json:"values"`
}

// ProductSummary is the compact product shape returned by catalog searches.
type ProductSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Handle       string  `json:"handle"`
	SKU          *string `json:"sku"`
	Price        Price   `json:"price"`
	ComparePrice Price   `json:"compare_price"`
	BuyURL       *string `json:"buy_url"`
	Available    *bool   `json:"available"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	Score        int     `json:"score"`
}

// ProductLink is the single best match for a free-text query.
type ProductLink struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	BuyURL *string `json:"buy_url"`
}

// VariantStock is the stock view of a product variant.
type VariantStock struct {
	ID        int64    `json:"id"`
	SKU       *string  `json:"sku"`
	Options   RawValue `json:"options"`
	Price     Price    `json:"price"`
	Available *bool    `json:"available"`
	Stock     *int64   `json:"stock"`
}
