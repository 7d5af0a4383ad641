package tiendanube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// Options configures a Client
type Options struct {
	BaseURL     string
	StoreID     string
	AccessToken string
	UserAgent   string
	Timeout     time.Duration
	RateLimit   float64 // requests per second
	RateBurst   int
}

var (
	_ domain.CatalogSource = (*Client)(nil)
	_ domain.OrderSource   = (*Client)(nil)
)

// Client handles communication with the Tiendanube REST API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	storeID     string
	accessToken string
	userAgent   string
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
}

// NewClient creates a new Tiendanube API client
func NewClient(opts Options, logger logrus.FieldLogger) *Client {
	// Tiendanube's leaky bucket drains 2 requests per second with room for 40
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 40
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		storeID:     opts.StoreID,
		accessToken: opts.AccessToken,
		userAgent:   opts.UserAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		logger:      logger.WithField("component", "tiendanube"),
	}
}

// get performs an authenticated GET against the store and returns the body of
// a 2xx response. Any other status is returned as *domain.UpstreamError.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s", c.baseURL, c.storeID, path)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authentication", "bearer "+c.accessToken)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	log := c.logger.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("upstream error")
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	log.Debug("upstream call")

	return body, nil
}

// ListProducts fetches one page of the product listing
func (c *Client) ListProducts(ctx context.Context, page, pageSize int) ([]domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, "products", params)
	if err != nil {
		if isPastLastPage(err, page) {
			return []domain.CatalogItem{}, nil
		}
		return nil, err
	}

	if !gjson.ParseBytes(body).IsArray() {
		c.logger.WithField("page", page).Debug("listing page is not an array, treating as end of catalog")
		return []domain.CatalogItem{}, nil
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode products page %d: %w", page, err)
	}
	return items, nil
}

// GetProduct fetches the detail record of a product
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	body, err := c.get(ctx, "products/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var item domain.CatalogItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("failed to decode product %d: %w", id, err)
	}
	return &item, nil
}

// GetProductDocument fetches the detail record of a product without decoding it
func (c *Client) GetProductDocument(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.get(ctx, "products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// ListVariants fetches the variants of a product
func (c *Client) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	body, err := c.get(ctx, "products/"+url.PathEscape(productID)+"/variants", nil)
	if err != nil {
		return nil, err
	}

	var variants []domain.Variant
	if err := json.Unmarshal(body, &variants); err != nil {
		return nil, fmt.Errorf("failed to decode variants of product %s: %w", productID, err)
	}
	return variants, nil
}

// HasPromotionalProducts reports whether at least one product has a promotional price
func (c *Client) HasPromotionalProducts(ctx context.Context) (bool, error) {
	params := url.Values{}
	params.Set("has_promotional_price", "true")
	params.Set("limit", "1")
	params.Set("page", "1")

	body, err := c.get(ctx, "products", params)
	if err != nil {
		return false, err
	}

	listing := gjson.ParseBytes(body)
	return listing.IsArray() && len(listing.Array()) > 0, nil
}

// GetOrder fetches an order by its internal id
func (c *Client) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.get(ctx, "orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// FindOrdersByNumber searches orders by the number shown to the customer
func (c *Client) FindOrdersByNumber(ctx context.Context, number string, limit int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("number", number)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "orders", params)
	if err != nil {
		return nil, err
	}

	orders := []json.RawMessage{}
	listing := gjson.ParseBytes(body)
	if !listing.IsArray() {
		return orders, nil
	}
	listing.ForEach(func(_, order gjson.Result) bool {
		if order.IsObject() {
			orders = append(orders, json.RawMessage(order.Raw))
		}
		return true
	})
	return orders, nil
}

// isPastLastPage recognizes the 404 the platform answers when paging beyond
// the last listing page.
func isPastLastPage(err error, page int) bool {
	upstream, ok := domain.AsUpstreamError(err)
	if !ok || page <= 1 || upstream.StatusCode != http.StatusNotFound {
		return false
	}
	return strings.Contains(gjson.GetBytes(upstream.Body, "description").String(), "Last page")
}
