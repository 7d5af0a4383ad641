package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceKind tags the variant held by a Price.
type PriceKind int

const (
	PriceAbsent PriceKind = iota
	PriceNumber
	PriceUnparsed
)

// Price is a catalog price after normalization. The zero value is absent and
// encodes as JSON null.
type Price struct {
	kind   PriceKind
	number float64
	raw    string
}

// NumberPrice returns a numeric price.
func NumberPrice(v float64) Price {
	return Price{kind: PriceNumber, number: v}
}

// UnparsedPrice returns a price whose text could not be read as a number.
func UnparsedPrice(s string) Price {
	return Price{kind: PriceUnparsed, raw: s}
}

func (p Price) Kind() PriceKind { return p.kind }

func (p Price) IsAbsent() bool { return p.kind == PriceAbsent }

// Number returns the numeric value when the price is numeric.
func (p Price) Number() (float64, bool) {
	return p.number, p.kind == PriceNumber
}

// Raw returns the unparsed text of an Unparsed price.
func (p Price) Raw() string { return p.raw }

func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PriceNumber:
		return json.Marshal(p.number)
	case PriceUnparsed:
		return json.Marshal(p.raw)
	default:
		return []byte("null"), nil
	}
}

// ParsePriceText reads a textual decimal such as "12.50", "12,50" or
// "1.234,50". Blank text is absent; anything else that is not a number is
// kept verbatim.
func ParsePriceText(s string) Price {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Price{}
	}
	if v, ok := parseDecimal(trimmed); ok {
		return NumberPrice(v)
	}
	return UnparsedPrice(s)
}

func parseDecimal(s string) (float64, bool) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// whichever separator comes last is the decimal one
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, false
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
