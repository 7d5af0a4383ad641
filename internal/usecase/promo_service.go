package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/sirupsen/logrus"
)

// PromoPolicy is the brand-controlled promotion text. Message may use the
// placeholders {discount}, {code} and {instagram}.
type PromoPolicy struct {
	Policy    string
	Message   string
	Code      string
	Discount  string
	AppliesTo string
	Instagram string
}

// PromoService assembles the promotion payload.
type PromoService struct {
	source domain.CatalogSource
	policy PromoPolicy
	now    func() time.Time
	logger logrus.FieldLogger
}

// NewPromoService creates a new promo service
func NewPromoService(source domain.CatalogSource, policy PromoPolicy, logger logrus.FieldLogger) *PromoService {
	return &PromoService{
		source: source,
		policy: policy,
		now:    time.Now,
		logger: logger,
	}
}

// GetPromos returns the fixed policy plus a best-effort hint telling whether
// any product currently has a promotional price. The hint is null when the
// platform cannot be asked; it never fails the request.
func (s *PromoService) GetPromos(ctx context.Context) domain.Promos {
	hint := domain.PromotionalHint{}
	hasAny, err := s.source.HasPromotionalProducts(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("promotional products hint unavailable")
	} else {
		hint.HasAny = &hasAny
	}

	message := strings.NewReplacer(
		"{discount}", s.policy.Discount,
		"{code}", s.policy.Code,
		"{instagram}", s.policy.Instagram,
	).Replace(s.policy.Message)

	return domain.Promos{
		Policy:  s.policy.Policy,
		Message: message,
		FirstPurchaseCoupon: domain.Coupon{
			Code:      s.policy.Code,
			Discount:  s.policy.Discount,
			AppliesTo: s.policy.AppliesTo,
		},
		Instagram:               s.policy.Instagram,
		PromotionalProductsHint: hint,
		FetchedAt:               s.now().UTC().Format(time.RFC3339),
	}
}
