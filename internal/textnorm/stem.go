package textnorm

import "strings"

// hungarianStems maps canonical stems to known surface-form variations.
// All entries are stored accent-folded; lookups go through the Normalizer.
// The table is static configuration, never mutated at runtime.
var hungarianStems = map[string][]string{
	"szamla": {
		"szamla", "szamlat", "szamlaja", "szamlajat", "szamlazas",
		"szamlazasi", "szamlaszam", "reszszamla", "vegszamla", "dijbekero",
	},
	"fizet": {
		"fizet", "fizetes", "fizetesi", "fizetendo", "befizetes",
		"befizetendo", "kifizetes", "megfizetni", "fizessen",
	},
	"osszeg": {
		"osszeg", "osszege", "osszeget", "vegosszeg", "bruttoosszeg",
		"osszesen",
	},
	"hatarido": {
		"hatarido", "hataridore", "hataridoig", "hataridot",
		"fizetesihatarido",
	},
	"esedekes": {
		"esedekes", "esedekesseg", "esedekessegi",
	},
	"dij": {
		"dij", "dijat", "dija", "alapdij", "havidij", "szolgaltatasidij",
		"rendszerhasznalatidij",
	},
	"tartozas": {
		"tartozas", "tartozasa", "tartozast", "hatralek",
	},
	"egyenleg": {
		"egyenleg", "egyenlege", "egyenleget",
	},
	"ugyfel": {
		"ugyfel", "ugyfelszam", "ugyfelazonosito", "ugyfelkod",
	},
	"szolgaltato": {
		"szolgaltato", "szolgaltatas", "szolgaltatasi", "kibocsato",
	},
}

// StemIndex resolves surface word forms to canonical stems for one language
// and scores fuzzy "does this text contain these concepts" queries. The
// surface-form cache is inverted once at construction and never mutated,
// so the index is safe for concurrent use.
type StemIndex struct {
	norm       *Normalizer
	variations map[string][]string
	surface    map[string]string
}

// NewStemIndex builds the Hungarian stem index over the given normalizer.
func NewStemIndex(norm *Normalizer) *StemIndex {
	idx := &StemIndex{
		norm:       norm,
		variations: hungarianStems,
		surface:    make(map[string]string),
	}
	for stem, forms := range hungarianStems {
		for _, f := range forms {
			idx.surface[f] = stem
		}
	}
	return idx
}

// Stem maps a surface token to its canonical stem. Unknown forms fall back
// to a prefix/containment heuristic against all known variations before
// giving up.
func (s *StemIndex) Stem(token string) (string, bool) {
	token = s.norm.CollapseRepeats(s.norm.Normalize(token))
	if token == "" {
		return "", false
	}
	if stem, ok := s.surface[token]; ok {
		return stem, true
	}
	for stem, forms := range s.variations {
		for _, f := range forms {
			if strings.HasPrefix(token, f) || strings.HasPrefix(f, token) {
				return stem, true
			}
		}
	}
	return "", false
}

// ContainsStem reports whether any token of text resolves to stem.
func (s *StemIndex) ContainsStem(text, stem string) bool {
	for _, tok := range s.norm.Tokens(text) {
		if got, ok := s.Stem(tok); ok && got == stem {
			return true
		}
	}
	return false
}

// MatchScore returns |found stems| / |required stems| for the given text.
// A score of 1.0 means every required concept appears.
func (s *StemIndex) MatchScore(text string, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	found := make(map[string]bool, len(required))
	for _, tok := range s.norm.Tokens(text) {
		if stem, ok := s.Stem(tok); ok {
			found[stem] = true
		}
	}
	hits := 0
	for _, r := range required {
		if found[r] {
			hits++
		}
	}
	return float64(hits) / float64(len(required))
}

// Stems returns the canonical stems known to the index.
func (s *StemIndex) Stems() []string {
	out := make([]string, 0, len(s.variations))
	for stem := range s.variations {
		out = append(out, stem)
	}
	return out
}
