package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceCountInference(t *testing.T) {
	cases := []struct {
		name  string
		attrs TechnicalAttributes
		want  int
	}{
		{"turkish key with unit suffix", TechnicalAttributes{"dilim_sayisi": "12 adet"}, 12},
		{"empty bag defaults to one", TechnicalAttributes{}, 1},
		{"nil bag defaults to one", nil, 1},
		{"numeric value", TechnicalAttributes{"sliceCount": 8.0}, 8},
		{"case insensitive key match", TechnicalAttributes{"Porsiyon": "6"}, 6},
		{"german spelling", TechnicalAttributes{"stueck_pro_kiste": "24"}, 24},
		{"zero never returned", TechnicalAttributes{"dilim": "0"}, 1},
		{"malformed value ignored", TechnicalAttributes{"dilim": "keine Angabe"}, 1},
		{"unrelated keys ignored", TechnicalAttributes{"weight": "100g"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.attrs.SliceCount())
		})
	}
}

func TestBoxUnitCount(t *testing.T) {
	n, ok := TechnicalAttributes{"kutu_adedi": "24"}.BoxUnitCount()
	assert.True(t, ok)
	assert.Equal(t, 24, n)

	_, ok = TechnicalAttributes{"weight": "100g"}.BoxUnitCount()
	assert.False(t, ok)
}

func TestFlagStrictlyBoolean(t *testing.T) {
	attrs := TechnicalAttributes{
		"vegan":       true,
		"vegetarian":  "true", // string, not a real flag
		"gluten_free": false,
		"organic":     1.0,
	}
	assert.True(t, attrs.Flag("vegan"))
	assert.False(t, attrs.Flag("vegetarian"))
	assert.False(t, attrs.Flag("gluten_free"))
	assert.False(t, attrs.Flag("organic"))
	assert.False(t, attrs.Flag("lactose_free"))
}

func TestHasFlavor(t *testing.T) {
	assert.True(t, TechnicalAttributes{"flavor": "schokolade"}.HasFlavor("schokolade"))
	assert.False(t, TechnicalAttributes{"flavor": "vanille"}.HasFlavor("schokolade"))
	assert.True(t, TechnicalAttributes{"flavor": []any{"vanille", "schokolade"}}.HasFlavor("schokolade"))
	assert.False(t, TechnicalAttributes{"flavor": []any{"vanille"}}.HasFlavor("schokolade"))
	assert.False(t, TechnicalAttributes{}.HasFlavor("schokolade"))
}

func TestLocalizedTextResolve(t *testing.T) {
	name := LocalizedText{"de": "Trüffel", "en": "Truffle"}
	assert.Equal(t, "Trüffel", name.Resolve([]string{"de", "en"}))
	assert.Equal(t, "Truffle", name.Resolve([]string{"fr", "en"}))
	// none of the preferred locales: deterministic fallback
	assert.Equal(t, "Trüffel", name.Resolve([]string{"it"}))
	assert.Equal(t, "", LocalizedText{}.Resolve([]string{"de"}))
}
