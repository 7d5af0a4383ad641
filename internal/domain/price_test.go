package domain

import (
	"encoding/json"
	"testing"
)

func TestParsePriceText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind PriceKind
		wantNum  float64
		wantRaw  string
	}{
		{name: "comma decimal", input: "12,50", wantKind: PriceNumber, wantNum: 12.5},
		{name: "dot decimal", input: "12.50", wantKind: PriceNumber, wantNum: 12.5},
		{name: "integer", input: "1500", wantKind: PriceNumber, wantNum: 1500},
		{name: "thousands dot, decimal comma", input: "1.234,50", wantKind: PriceNumber, wantNum: 1234.5},
		{name: "thousands comma, decimal dot", input: "1,234.50", wantKind: PriceNumber, wantNum: 1234.5},
		{name: "surrounding spaces", input: " 99.90 ", wantKind: PriceNumber, wantNum: 99.9},
		{name: "non-numeric passes through", input: "consultar", wantKind: PriceUnparsed, wantRaw: "consultar"},
		{name: "currency symbol passes through", input: "$ 12,50", wantKind: PriceUnparsed, wantRaw: "$ 12,50"},
		{name: "NaN is not a number", input: "NaN", wantKind: PriceUnparsed, wantRaw: "NaN"},
		{name: "two commas are ambiguous", input: "1,234,567", wantKind: PriceUnparsed, wantRaw: "1,234,567"},
		{name: "blank is absent", input: "   ", wantKind: PriceAbsent},
		{name: "empty is absent", input: "", wantKind: PriceAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceText(tt.input)
			if got.Kind() != tt.wantKind {
				t.Fatalf("Kind() = %v, want %v", got.Kind(), tt.wantKind)
			}
			if n, ok := got.Number(); ok && n != tt.wantNum {
				t.Errorf("Number() = %v, want %v", n, tt.wantNum)
			}
			if got.Raw() != tt.wantRaw {
				t.Errorf("Raw() = %q, want %q", got.Raw(), tt.wantRaw)
			}
		})
	}
}

func TestPriceMarshalJSON(t *testing.T) {
	payload := struct {
		A Price `json:"a"`
		B Price `json:"b"`
		C Price `json:"c"`
	}{
		A: NumberPrice(12.5),
		B: UnparsedPrice("consultar"),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"a":12.5,"b":"consultar","c":null}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
