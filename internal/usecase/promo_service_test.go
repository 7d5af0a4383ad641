package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var testPolicy = PromoPolicy{
	Policy:    "first_purchase_only",
	Message:   "{discount} off your first purchase with {code}. Follow {instagram}",
	Code:      "BIENVENIDA",
	Discount:  "10%",
	AppliesTo: "first_purchase",
	Instagram: "@store",
}

func TestPromoService_GetPromos(t *testing.T) {
	service := NewPromoService(&fakeCatalog{promoAny: true}, testPolicy, discardLogger())
	service.now = func() time.Time {
		return time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("ART", -3*60*60))
	}

	got := service.GetPromos(context.Background())

	if got.Message != "10% off your first purchase with BIENVENIDA. Follow @store" {
		t.Errorf("message = %q", got.Message)
	}
	if got.FirstPurchaseCoupon.Code != "BIENVENIDA" || got.FirstPurchaseCoupon.AppliesTo != "first_purchase" {
		t.Errorf("coupon = %+v", got.FirstPurchaseCoupon)
	}
	if got.PromotionalProductsHint.HasAny == nil || !*got.PromotionalProductsHint.HasAny {
		t.Error("expected has_any true")
	}
	if got.FetchedAt != "2024-05-01T12:30:00Z" {
		t.Errorf("fetched_at = %q", got.FetchedAt)
	}
}

func TestPromoService_HintUnavailable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	service := NewPromoService(&fakeCatalog{promoErr: errors.New("timeout")}, testPolicy, logger)

	got := service.GetPromos(context.Background())

	if got.PromotionalProductsHint.HasAny != nil {
		t.Error("expected null hint")
	}
	if got.Policy != "first_purchase_only" {
		t.Errorf("policy = %q", got.Policy)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
		t.Error("expected a warning")
	}
}
