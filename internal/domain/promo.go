package domain

// Coupon is a standing discount code.
type Coupon struct {
	Code      string `json:"code"`
	Discount  string `json:"discount"`
	AppliesTo string `json:"applies_to"`
}

// PromotionalHint tells whether any product is on a promotional price right
// now. HasAny is nil when the platform could not be asked.
type PromotionalHint struct {
	HasAny *bool `json:"has_any"`
}

// Promos is the promotion policy payload.
type Promos struct {
	Policy                  string          `json:"policy"`
	Message                 string          `json:"message"`
	FirstPurchaseCoupon     Coupon          `json:"first_purchase_coupon"`
	Instagram               string          `json:"instagram"`
	PromotionalProductsHint PromotionalHint `json:"promotional_products_hint"`
	FetchedAt               string          `json:"fetched_at"`
}
