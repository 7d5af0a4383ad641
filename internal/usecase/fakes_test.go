package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
)

var testLocales = []string{"es", "pt", "en"}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func catalogItem(id int64, name, handle string) domain.CatalogItem {
	item := domain.CatalogItem{ID: id}
	if name != "" {
		item.Name = domain.LocalizedText{"es": name}
	}
	if handle != "" {
		item.Handle = domain.LocalizedText{"es": handle}
	}
	return item
}

// fakeCatalog is an in-memory domain.CatalogSource
type fakeCatalog struct {
	mu sync.Mutex

	pages      [][]domain.CatalogItem
	endless    bool // serve the last page forever instead of an empty page
	listErr    error
	listErrAt  int // page that fails; 0 means every page
	details    map[int64]*domain.CatalogItem
	detailErrs map[int64]error
	documents  map[string]json.RawMessage
	variants   map[string][]domain.Variant
	promoAny   bool
	promoErr   error

	listCalls   []int
	detailCalls []int64
}

func (f *fakeCatalog) ListProducts(ctx context.Context, page, pageSize int) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, page)

	if f.listErr != nil && (f.listErrAt == 0 || f.listErrAt == page) {
		return nil, f.listErr
	}
	if page-1 < len(f.pages) {
		return f.pages[page-1], nil
	}
	if f.endless && len(f.pages) > 0 {
		return f.pages[len(f.pages)-1], nil
	}
	return []domain.CatalogItem{}, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.detailErrs[id]; ok {
		return nil, err
	}
	if detail, ok := f.details[id]; ok {
		copied := *detail
		return &copied, nil
	}
	for _, page := range f.pages {
		for _, item := range page {
			if item.ID == id {
				copied := item
				return &copied, nil
			}
		}
	}
	return nil, &domain.UpstreamError{StatusCode: http.StatusNotFound, Body: []byte(`{"code":404}`)}
}

func (f *fakeCatalog) GetProductDocument(ctx context.Context, id string) (json.RawMessage, error) {
	if doc, ok := f.documents[id]; ok {
		return doc, nil
	}
	return nil, &domain.UpstreamError{StatusCode: http.StatusNotFound, Body: []byte(`{"code":404}`)}
}

func (f *fakeCatalog) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	if variants, ok := f.variants[productID]; ok {
		return variants, nil
	}
	return nil, &domain.UpstreamError{StatusCode: http.StatusNotFound, Body: []byte(`{"code":404}`)}
}

func (f *fakeCatalog) HasPromotionalProducts(ctx context.Context) (bool, error) {
	return f.promoAny, f.promoErr
}

func (f *fakeCatalog) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

// fakeOrders is an in-memory domain.OrderSource
type fakeOrders struct {
	byID     map[string]json.RawMessage
	byNumber map[string]json.RawMessage
	getErr   error
	findErr  error

	findCalls []string
}

func (f *fakeOrders) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if doc, ok := f.byID[id]; ok {
		return doc, nil
	}
	return nil, &domain.UpstreamError{StatusCode: http.StatusNotFound, Body: []byte(`{"code":404,"message":"Not Found"}`)}
}

func (f *fakeOrders) FindOrdersByNumber(ctx context.Context, number string, limit int) ([]json.RawMessage, error) {
	f.findCalls = append(f.findCalls, number)
	if f.findErr != nil {
		return nil, f.findErr
	}
	if doc, ok := f.byNumber[number]; ok {
		return []json.RawMessage{doc}, nil
	}
	return []json.RawMessage{}, nil
}
