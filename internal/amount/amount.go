// Package amount converts free-form numeric strings in mixed European and
// US separator conventions into normalized amounts, and detects currency
// markers around them.
package amount

import (
	"regexp"
	"strconv"
	"strings"

	"billscan/internal/domain"
)

var (
	keepRe = regexp.MustCompile(`[^0-9., ]+`)
	// A dot directly before a 3-digit group is a thousands separator.
	dotThousandsRe = regexp.MustCompile(`\.([0-9]{3})([.,]|$)`)
	// A trailing comma followed by 1-2 digits is a decimal separator.
	decimalCommaRe = regexp.MustCompile(`,([0-9]{1,2})$`)
)

// Parse converts a raw numeric string into an amount. It resolves the
// ambiguous separator conventions deterministically: "175.945" → 175945
// (Hungarian thousands dot), "175,95" → 175.95 (decimal comma),
// "175 945,95" → 175945.95, "1,234.56" → 1234.56. Returns 0 on any
// failure; callers treat 0 as "no amount extracted", never as a valid
// zero-amount bill.
func Parse(raw string) float64 {
	s := keepRe.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	// Thousands dots first. Replace until fixpoint so chained groups
	// ("1.234.567") collapse fully.
	for {
		next := dotThousandsRe.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}

	// Then the decimal comma, then any stray thousands commas.
	s = decimalCommaRe.ReplaceAllString(s, ".$1")
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// currencyMarkers maps ISO codes to the markers that imply them. Symbol
// markers are matched as substrings; word markers as whole tokens.
var currencySymbols = map[string]string{
	"€": "EUR", "$": "USD", "£": "GBP", "₹": "INR",
}

var currencyWords = map[string]string{
	"ft": "HUF", "huf": "HUF", "forint": "HUF",
	"eur": "EUR", "euro": "EUR",
	"usd": "USD", "dollar": "USD",
	"gbp": "GBP",
}

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

// DetectCurrency scans text for a currency marker and falls back to the
// language's default currency so a candidate never carries an empty
// currency.
func DetectCurrency(text string, lang domain.Language) string {
	for sym, code := range currencySymbols {
		if strings.Contains(text, sym) {
			return code
		}
	}
	lower := strings.ToLower(text)
	for _, w := range wordRe.FindAllString(lower, -1) {
		if code, ok := currencyWords[w]; ok {
			return code
		}
	}
	if def, ok := domain.DefaultCurrency[lang]; ok {
		return def
	}
	return domain.DefaultCurrency[domain.DefaultLanguage]
}

// WithinRelative reports whether two non-zero amounts agree within the
// given relative tolerance (e.g. 0.01 for 1%).
func WithinRelative(a, b, tolerance float64) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	larger := a
	if b > larger {
		larger = b
	}
	return diff/larger <= tolerance
}

// DecimalPrecision counts the fractional digits a raw amount string
// carries, used by merge resolution to prefer the more precise value.
func DecimalPrecision(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
