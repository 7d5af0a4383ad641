package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/boticario/catalog-proxy/config"
	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/boticario/catalog-proxy/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const jsonContentType = "application/json; charset=utf-8"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
	orders   *usecase.OrderService
	promos   *usecase.PromoService
	limits   config.SearchConfig
	logger   logrus.FieldLogger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	orders *usecase.OrderService,
	promos *usecase.PromoService,
	limits config.SearchConfig,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		promos:   promos,
		limits:   limits,
		logger:   logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SearchProducts handles GET /api/products?q=&limit=
func (h *Handler) SearchProducts(c *gin.Context) {
	limit := h.parseLimit(c.Query("limit"))

	results, err := h.products.SearchProducts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ProductLink handles GET /api/product-link?q=
func (h *Handler) ProductLink(c *gin.Context) {
	link, err := h.products.FindProductLink(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// GetProduct handles GET /api/products/:id and relays the platform record as is
func (h *Handler) GetProduct(c *gin.Context) {
	doc, err := h.products.GetProductDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, jsonContentType, doc)
}

// ListVariants handles GET /api/products/:id/variants
func (h *Handler) ListVariants(c *gin.Context) {
	variants, err := h.products.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, variants)
}

// GetOrder handles GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	summary, err := h.orders.GetOrderSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetOrderItems handles GET /api/orders/:id/items
func (h *Handler) GetOrderItems(c *gin.Context) {
	items, err := h.orders.GetOrderItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetOrderShipping handles GET /api/orders/:id/shipping
func (h *Handler) GetOrderShipping(c *gin.Context) {
	shipping, err := h.orders.GetOrderShipping(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, shipping)
}

// Promos handles GET /api/promos
func (h *Handler) Promos(c *gin.Context) {
	c.JSON(http.StatusOK, h.promos.GetPromos(c.Request.Context()))
}

// NotFound answers routes that do not exist
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
}

// parseLimit reads the limit parameter, falling back to the default when it
// is missing or not a number, and clamps it to the configured range. Numbers
// too large for an int saturate and clamp like any other out-of-range value.
func (h *Handler) parseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		limit = h.limits.DefaultLimit
	}
	return min(max(limit, h.limits.MinLimit), h.limits.MaxLimit)
}

// writeError maps a service error to its HTTP response. Order matters: a
// failed single-product detail wraps an upstream error but is reported as a
// proxy failure.
func (h *Handler) writeError(c *gin.Context, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrDetailUnavailable):
		h.proxyError(c, err)
	case errors.As(err, &upstream):
		c.Data(upstream.StatusCode, jsonContentType, upstream.Body)
	case errors.Is(err, domain.ErrMissingQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_q"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":        http.StatusNotFound,
			"message":     "Not Found",
			"description": "Order not found",
		})
	default:
		h.proxyError(c, err)
	}
}

func (h *Handler) proxyError(c *gin.Context, err error) {
	h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "proxy_error", "detail": err.Error()})
}
