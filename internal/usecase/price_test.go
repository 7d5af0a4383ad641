package usecase

import (
	"testing"

	"github.com/boticario/catalog-proxy/internal/domain"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind domain.PriceKind
		wantNum  float64
		wantRaw  string
	}{
		{name: "missing", raw: "", wantKind: domain.PriceAbsent},
		{name: "null", raw: `null`, wantKind: domain.PriceAbsent},
		{name: "number", raw: `12.5`, wantKind: domain.PriceNumber, wantNum: 12.5},
		{name: "decimal text", raw: `"129.90"`, wantKind: domain.PriceNumber, wantNum: 129.9},
		{name: "comma decimal text", raw: `"1.234,50"`, wantKind: domain.PriceNumber, wantNum: 1234.5},
		{name: "unparsable text", raw: `"consultar"`, wantKind: domain.PriceUnparsed, wantRaw: "consultar"},
		{name: "blank text", raw: `"  "`, wantKind: domain.PriceAbsent},
		{name: "locale object", raw: `{"pt":"10.00","es":"12.00"}`, wantKind: domain.PriceNumber, wantNum: 12},
		{name: "locale object fallback", raw: `{"en":7}`, wantKind: domain.PriceNumber, wantNum: 7},
		{name: "locale object unknown locale", raw: `{"fr":"5.00"}`, wantKind: domain.PriceAbsent},
		{name: "boolean", raw: `true`, wantKind: domain.PriceAbsent},
		{name: "array", raw: `[1,2]`, wantKind: domain.PriceAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrice(domain.RawValue(tt.raw), testLocales)

			if got.Kind() != tt.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind(), tt.wantKind)
			}
			if n, ok := got.Number(); ok && n != tt.wantNum {
				t.Errorf("number = %v, want %v", n, tt.wantNum)
			}
			if tt.wantKind == domain.PriceUnparsed && got.Raw() != tt.wantRaw {
				t.Errorf("raw = %q, want %q", got.Raw(), tt.wantRaw)
			}
		})
	}
}
