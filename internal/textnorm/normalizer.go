package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain strips combining marks: NFD decompose, drop marks, recompose.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// mojibakeReplacer repairs the common UTF-8-decoded-as-Latin-1 sequences seen
// in Hungarian billing mail.
var mojibakeReplacer = strings.NewReplacer(
	"Ã¡", "á", "Ã©", "é", "Ã­", "í", "Ã³", "ó", "Ã¶", "ö",
	"Å‘", "ő", "Ãº", "ú", "Ã¼", "ü", "Å±", "ű",
	"Ã", "Á", "Ã‰", "É", "Ã“", "Ó", "Ã–", "Ö", "Ãš", "Ú",
)

// Normalizer performs locale-aware text cleanup. It is read-only after
// construction and safe for concurrent use.
type Normalizer struct {
	whitespace *regexp.Regexp
}

// New creates a Normalizer with its patterns compiled.
func New() *Normalizer {
	return &Normalizer{
		whitespace: regexp.MustCompile(`[\s\p{Zs}]+`),
	}
}

// Normalize lowercases, folds accents, repairs encoding damage, and
// collapses whitespace. This is the canonical form used for keyword,
// stem, and label matching.
func (n *Normalizer) Normalize(s string) string {
	s = mojibakeReplacer.Replace(s)
	s = strings.ToLower(s)
	s = n.FoldAccents(s)
	s = n.whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldAccents removes diacritic marks (á→a, ő→o, ü→u).
func (n *Normalizer) FoldAccents(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseRepeats reduces runs of 3+ identical characters to 2, tolerating
// keyboard-repeat typos ("fizeteeendo" → "fizeteendo").
func (n *Normalizer) CollapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokens splits normalized text into word tokens.
func (n *Normalizer) Tokens(s string) []string {
	return strings.FieldsFunc(n.Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Lines splits raw text into trimmed, non-empty lines, preserving order.
func (n *Normalizer) Lines(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
