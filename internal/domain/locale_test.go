package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLocales = []string{"es", "pt", "en"}

func TestLocalizedTextUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LocalizedText
	}{
		{name: "locale object", input: `{"es":"Crema","en":"Cream"}`, want: LocalizedText{"es": "Crema", "en": "Cream"}},
		{name: "plain string", input: `"Crema"`, want: LocalizedText{LocaleDefault: "Crema"}},
		{name: "empty values dropped", input: `{"es":"","pt":"Creme"}`, want: LocalizedText{"pt": "Creme"}},
		{name: "non-string values dropped", input: `{"es":12,"pt":"Creme"}`, want: LocalizedText{"pt": "Creme"}},
		{name: "null", input: `null`, want: nil},
		{name: "number", input: `42`, want: nil},
		{name: "array", input: `["a"]`, want: nil},
		{name: "empty string", input: `""`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LocalizedText
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogItemTolerantDecode(t *testing.T) {
	body := `{"id":7,"name":{"es":"Sérum"},"handle":"serum","permalink":12,"published":true,
		"price":"12,50","images":[{"id":1,"src":"https://cdn.test/1.jpg"}]}`

	var item CatalogItem
	require.NoError(t, json.Unmarshal([]byte(body), &item))

	assert.Equal(t, int64(7), item.ID)
	assert.Nil(t, item.Permalink)
	name, ok := item.Name.Resolve(testLocales)
	assert.True(t, ok)
	assert.Equal(t, "Sérum", name)
	handle, ok := item.Handle.Resolve(testLocales)
	assert.True(t, ok)
	assert.Equal(t, "serum", handle)
	assert.JSONEq(t, `"12,50"`, string(item.Price))
}

func TestResolveLocale(t *testing.T) {
	t.Run("respects preference order", func(t *testing.T) {
		got, ok := ResolveLocale(map[string]string{"en": "Cream", "pt": "Creme"}, testLocales)
		assert.True(t, ok)
		assert.Equal(t, "Creme", got)
	})

	t.Run("absent when no preferred locale present", func(t *testing.T) {
		_, ok := ResolveLocale(map[string]string{"fr": "Crème"}, testLocales)
		assert.False(t, ok)
	})

	t.Run("plain string used after locales", func(t *testing.T) {
		got, ok := LocalizedText{LocaleDefault: "Crema"}.Resolve(testLocales)
		assert.True(t, ok)
		assert.Equal(t, "Crema", got)
	})

	t.Run("nil text is absent", func(t *testing.T) {
		_, ok := LocalizedText(nil).Resolve(testLocales)
		assert.False(t, ok)
	})
}
