package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// OrderService reshapes platform orders into the compact views the assistant uses.
type OrderService struct {
	source domain.OrderSource
	logger logrus.FieldLogger
}

// NewOrderService creates a new order service
func NewOrderService(source domain.OrderSource, logger logrus.FieldLogger) *OrderService {
	return &OrderService{source: source, logger: logger}
}

// GetOrderSummary looks the order up by internal id and, when the platform
// does not know that id, by the order number the customer sees.
func (s *OrderService) GetOrderSummary(ctx context.Context, id string) (*domain.OrderSummary, error) {
	doc, err := s.source.GetOrder(ctx, id)
	if err != nil {
		upstream, ok := domain.AsUpstreamError(err)
		if !ok || upstream.StatusCode != http.StatusNotFound {
			return nil, fmt.Errorf("get order %s: %w", id, err)
		}

		s.logger.WithField("order", id).Debug("order id unknown, trying visible number")
		doc, err = s.findByNumber(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return summarizeOrder(gjson.ParseBytes(doc)), nil
}

// GetOrderItems returns the purchased lines of an order.
func (s *OrderService) GetOrderItems(ctx context.Context, id string) ([]domain.OrderItem, error) {
	doc, err := s.source.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items := []domain.OrderItem{}
	gjson.GetBytes(doc, "products").ForEach(func(_, p gjson.Result) bool {
		items = append(items, domain.OrderItem{
			ProductID: relay(p.Get("product_id")),
			VariantID: relay(p.Get("variant_id")),
			Name:      relay(p.Get("name")),
			SKU:       relay(p.Get("sku")),
			Quantity:  relay(p.Get("quantity")),
			Price:     relay(p.Get("price")),
			Total:     relay(p.Get("total")),
		})
		return true
	})
	return items, nil
}

// GetOrderShipping returns the recipient, address and carrier of an order.
func (s *OrderService) GetOrderShipping(ctx context.Context, id string) (*domain.ShippingInfo, error) {
	doc, err := s.source.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	order := gjson.ParseBytes(doc)
	addr := order.Get("shipping_address")
	customer := order.Get("customer")

	var name *string
	fullName := strings.TrimSpace(textOf(addr.Get("first_name")) + " " + textOf(addr.Get("last_name")))
	if fullName == "" && truthy(customer.Get("name")) {
		fullName = customer.Get("name").String()
	}
	if fullName != "" {
		name = &fullName
	}

	var line1 []string
	for _, part := range []gjson.Result{addr.Get("address"), addr.Get("number")} {
		if truthy(part) {
			line1 = append(line1, part.String())
		}
	}

	return &domain.ShippingInfo{
		Name:  name,
		Email: firstTruthy(customer.Get("email")),
		Phone: firstTruthy(addr.Get("phone"), customer.Get("phone")),
		Address: domain.ShippingAddress{
			Line1:    strings.Join(line1, " "),
			Line2:    firstTruthy(addr.Get("floor"), addr.Get("comment")),
			City:     firstTruthy(addr.Get("city")),
			Province: firstTruthy(addr.Get("province")),
			Zip:      firstTruthy(addr.Get("zipcode")),
			Country:  firstTruthy(addr.Get("country")),
		},
		ShippingCompany: shippingCompany(order),
		Tracking:        trackingNumber(order),
		Status:          shippingStatus(order),
	}, nil
}

func (s *OrderService) findByNumber(ctx context.Context, number string) (json.RawMessage, error) {
	orders, err := s.source.FindOrdersByNumber(ctx, number, 1)
	if err != nil {
		return nil, fmt.Errorf("find order number %s: %w", number, err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

func summarizeOrder(order gjson.Result) *domain.OrderSummary {
	return &domain.OrderSummary{
		ID:              relay(order.Get("id")),
		Number:          relay(order.Get("number")),
		Status:          relay(order.Get("status")),
		ShippingCompany: shippingCompany(order),
		Tracking:        trackingNumber(order),
		ShippingStatus:  shippingStatus(order),
		CreatedAt:       relay(order.Get("created_at")),
		UpdatedAt:       relay(order.Get("updated_at")),
	}
}

// The platform has moved carrier fields between the order root and a nested
// "shipping" object; both places are checked, root first.

func shippingCompany(order gjson.Result) domain.RawValue {
	return firstTruthy(order.Get("shipping_company"), order.Get("shipping.shipping_company"))
}

func trackingNumber(order gjson.Result) domain.RawValue {
	return firstTruthy(order.Get("shipping_tracking_number"), order.Get("shipping.tracking_number"))
}

func shippingStatus(order gjson.Result) domain.RawValue {
	return firstTruthy(order.Get("shipping_status"), order.Get("shipping.status"))
}

// relay passes a value through as served, nil (JSON null) when missing.
func relay(r gjson.Result) domain.RawValue {
	if !r.Exists() {
		return nil
	}
	return domain.RawValue(r.Raw)
}

// firstTruthy returns the first value that is present and not null, false,
// zero or an empty string.
func firstTruthy(results ...gjson.Result) domain.RawValue {
	for _, r := range results {
		if truthy(r) {
			return domain.RawValue(r.Raw)
		}
	}
	return nil
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

func textOf(r gjson.Result) string {
	if !truthy(r) {
		return ""
	}
	return r.String()
}
