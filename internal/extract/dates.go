package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"billscan/internal/domain"
)

// dateNormRe collapses the spacing Hungarian bills put after date dots
// ("2024. 01. 15." → "2024.01.15").
var dateNormRe = regexp.MustCompile(`\.\s+`)

// isoFirst are layouts tried for every language; localized layouts follow
// based on the detected language, since "01/02/2025" is ambiguous between
// MDY and DMY.
var isoFirst = []string{
	"2006.01.02", "2006-01-02", "2006/01/02",
}

var layoutsByLanguage = map[domain.Language][]string{
	domain.LangHungarian: {"2006.1.2"},
	domain.LangGerman:    {"2.1.2006", "02.01.2006", "2.1.06"},
	domain.LangEnglish: {
		"1/2/2006", "01/02/2006", "1/2/06",
		"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006",
	},
}

// ParseDate parses a date string in the shapes the pattern tables capture.
// Returns ErrUnparsableDate when no layout fits.
func ParseDate(raw string, lang domain.Language) (time.Time, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".")
	s = dateNormRe.ReplaceAllString(s, ".")
	if s == "" {
		return time.Time{}, domain.ErrUnparsableDate
	}
	for _, layout := range isoFirst {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range layoutsByLanguage[lang] {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Last resort: every localized layout, in declaration order.
	for _, l := range domain.SupportedLanguages {
		if l == lang {
			continue
		}
		for _, layout := range layoutsByLanguage[l] {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparsableDate, raw)
}

// WithinDays reports whether two dates lie at most days apart.
func WithinDays(a, b time.Time, days int) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(days)*24*time.Hour
}
