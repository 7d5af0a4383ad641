package usecase

import (
	"github.com/boticario/catalog-proxy/internal/domain"
	"github.com/tidwall/gjson"
)

// NormalizePrice reads any price shape the platform serves (number, decimal
// text, per-locale object, null or missing) into a domain.Price.
func NormalizePrice(raw domain.RawValue, locales []string) domain.Price {
	if len(raw) == 0 {
		return domain.Price{}
	}

	result := gjson.ParseBytes(raw)
	if result.IsObject() {
		for _, locale := range locales {
			if price := scalarPrice(result.Get(locale)); !price.IsAbsent() {
				return price
			}
		}
		return domain.Price{}
	}
	return scalarPrice(result)
}

func scalarPrice(r gjson.Result) domain.Price {
	switch r.Type {
	case gjson.Number:
		return domain.NumberPrice(r.Num)
	case gjson.String:
		return domain.ParsePriceText(r.Str)
	default:
		return domain.Price{}
	}
}
