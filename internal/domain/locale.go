package domain

import "encoding/json"

// LocaleDefault keys a value that the platform sent as a plain string instead
// of a per-locale object.
const LocaleDefault = ""

// LocalizedText is a per-locale string as served by the catalog platform,
// e.g. {"es": "Crema", "pt": "Creme"}.
type LocalizedText map[string]string

// UnmarshalJSON accepts a plain string or a locale object. Any other shape
// decodes to an empty value instead of failing the whole record.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	*t = nil

	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		if plain != "" {
			*t = LocalizedText{LocaleDefault: plain}
		}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	values := make(LocalizedText, len(raw))
	for locale, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil && s != "" {
			values[locale] = s
		}
	}
	if len(values) > 0 {
		*t = values
	}
	return nil
}

// Resolve returns the first non-empty value in locale order, falling back to
// a value sent as a plain string.
func (t LocalizedText) Resolve(order []string) (string, bool) {
	if v, ok := ResolveLocale(t, order); ok {
		return v, true
	}
	if v := t[LocaleDefault]; v != "" {
		return v, true
	}
	return "", false
}

// ResolveLocale picks the first locale in order that has a non-empty value.
func ResolveLocale(values map[string]string, order []string) (string, bool) {
	for _, locale := range order {
		if v := values[locale]; v != "" {
			return v, true
		}
	}
	return "", false
}
