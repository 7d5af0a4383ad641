package domain

// OrderSummary is the compact order status returned to the assistant.
type OrderSummary struct {
	ID              RawValue `json:"id"`
	Number          RawValue `json:"number"`
	Status          RawValue `json:"status"`
	ShippingCompany RawValue `json:"shipping_company"`
	Tracking        RawValue `json:"tracking"`
	ShippingStatus  RawValue `json:"shipping_status"`
	CreatedAt       RawValue `json:"created_at"`
	UpdatedAt       RawValue `json:"updated_at"`
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ProductID RawValue `json:"product_id"`
	VariantID RawValue `json:"variant_id"`
	Name      RawValue `json:"name"`
	SKU       RawValue `json:"sku"`
	Quantity  RawValue `json:"quantity"`
	Price     RawValue `json:"price"`
	Total     RawValue `json:"total"`
}

// ShippingAddress is the delivery address of an order.
type ShippingAddress struct {
	Line1    string   `json:"line1"`
	Line2    RawValue `json:"line2"`
	City     RawValue `json:"city"`
	Province RawValue `json:"province"`
	Zip      RawValue `json:"zip"`
	Country  RawValue `json:"country"`
}

// ShippingInfo is the recipient and carrier view of an order.
type ShippingInfo struct {
	Name            *string         `json:"name"`
	Email           RawValue        `json:"email"`
	Phone           RawValue        `json:"phone"`
	Address         ShippingAddress `json:"address"`
	ShippingCompany RawValue        `json:"shipping_company"`
	Tracking        RawValue        `json:"tracking"`
	Status          RawValue        `json:"status"`
}
