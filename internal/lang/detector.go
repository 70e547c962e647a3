// Package lang classifies free text into the closed language set used by
// the pattern registry. Pure keyword and character-set heuristics, no
// external calls, always returns a value.
package lang

import (
	"strings"
	"unicode"

	"billscan/internal/domain"
)

// matchThreshold is the minimum keyword ratio a language must reach before
// it can win over the default.
const matchThreshold = 0.15

// profile is one language's keyword list plus characters that only occur in
// that language's orthography within the supported set.
type profile struct {
	language domain.Language
	keywords []string
	markers  []rune
}

var profiles = []profile{
	{
		language: domain.LangHungarian,
		keywords: []string{
			"számla", "fizetendő", "összeg", "határidő", "esedékes",
			"díj", "befizetés", "egyenleg", "tartozás", "ügyfélszám",
			"forint", "ft",
		},
		markers: []rune{'ő', 'ű'},
	},
	{
		language: domain.LangGerman,
		keywords: []string{
			"rechnung", "betrag", "zahlung", "fällig", "gesamtbetrag",
			"mwst", "zahlbar", "überweisung", "kundennummer", "konto",
		},
		markers: []rune{'ß'},
	},
	{
		language: domain.LangEnglish,
		keywords: []string{
			"invoice", "bill", "payment", "amount", "due", "total",
			"account", "balance", "statement", "payable",
		},
	},
}

// Detector classifies text into en, hu, or de.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the language whose keyword ratio exceeds the threshold and
// strictly beats every other language, or the default language otherwise.
func (d *Detector) Detect(text string) domain.Language {
	if strings.TrimSpace(text) == "" {
		return domain.DefaultLanguage
	}

	lower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, t := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		tokens[t] = true
	}

	best := domain.DefaultLanguage
	bestRatio := 0.0
	tied := false

	for _, p := range profiles {
		hits := 0
		for _, kw := range p.keywords {
			if tokens[kw] {
				hits++
			}
		}
		for _, m := range p.markers {
			if strings.ContainsRune(lower, m) {
				hits++
			}
		}
		ratio := float64(hits) / float64(len(p.keywords)+len(p.markers))
		if ratio == bestRatio {
			tied = true
		}
		if ratio > bestRatio {
			bestRatio = ratio
			best = p.language
			tied = false
		}
	}

	// The winner must cross the threshold and be a strict maximum.
	if bestRatio <= matchThreshold || tied {
		return domain.DefaultLanguage
	}
	return best
}
