package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billscan/internal/textnorm"
)

func newIndex() *textnorm.StemIndex {
	return textnorm.NewStemIndex(textnorm.New())
}

func TestStem_KnownSurfaceForms(t *testing.T) {
	idx := newIndex()

	cases := map[string]string{
		"számla":     "szamla",
		"számlázási": "szamla",
		"fizetendő":  "fizet",
		"befizetés":  "fizet",
		"összeget":   "osszeg",
		"határidőre": "hatarido",
		"díjat":      "dij",
		"hátralék":   "tartozas",
	}
	for surface, want := range cases {
		got, ok := idx.Stem(surface)
		assert.True(t, ok, "expected a stem for %q", surface)
		assert.Equal(t, want, got, "surface %q", surface)
	}
}

func TestStem_PrefixFallback(t *testing.T) {
	idx := newIndex()
	// Unlisted suffix form resolves through the prefix heuristic.
	got, ok := idx.Stem("számlákat")
	assert.True(t, ok)
	assert.Equal(t, "szamla", got)
}

func TestStem_Unknown(t *testing.T) {
	idx := newIndex()
	_, ok := idx.Stem("qwertz")
	assert.False(t, ok)
	_, ok = idx.Stem("")
	assert.False(t, ok)
}

func TestContainsStem(t *testing.T) {
	idx := newIndex()
	assert.True(t, idx.ContainsStem("Fizetendő összeg: 45 Ft", "fizet"))
	assert.True(t, idx.ContainsStem("Fizetendő összeg: 45 Ft", "osszeg"))
	assert.False(t, idx.ContainsStem("hello world", "fizet"))
}

func TestMatchScore(t *testing.T) {
	idx := newIndex()
	required := []string{"szamla", "fizet", "osszeg", "hatarido"}

	text := "Számla fizetendő összeg: 45.000 Ft, határidő: 2026-09-15"
	assert.Equal(t, 1.0, idx.MatchScore(text, required))

	half := "Számla összeg: 45 Ft"
	assert.Equal(t, 0.5, idx.MatchScore(half, required))

	assert.Equal(t, 0.0, idx.MatchScore("hello world", required))
	assert.Equal(t, 0.0, idx.MatchScore(text, nil))
}

func TestStems_CoversCanonicalSet(t *testing.T) {
	idx := newIndex()
	stems := idx.Stems()
	assert.Contains(t, stems, "szamla")
	assert.Contains(t, stems, "fizet")
	assert.Contains(t, stems, "hatarido")
	assert.Len(t, stems, 10)
}
