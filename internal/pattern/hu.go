package pattern

import (
	"regexp"

	"billscan/internal/domain"
)

// hungarianPattern is the reference-domain rule set. Patterns run against
// raw (non-folded) text, so the literals carry their accents; the stem
// groups are matched through the accent-folded stem index instead.
var hungarianPattern = BillPattern{
	ID:       "hu-generic",
	Language: domain.LangHungarian,
	IdentifierPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)számla`),
		regexp.MustCompile(`(?i)díjbekérő`),
		regexp.MustCompile(`(?i)fizetendő`),
	},
	RequiredStems: []string{"szamla", "fizet", "osszeg", "hatarido", "dij"},
	Fields: []FieldRule{
		{
			Field: domain.FieldAmount,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)fizetendő\s+(?:vég)?összeg\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`(?i)(?:végösszeg|bruttó\s+összeg|összesen)\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`(?i)fizetendő\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])\s*(?:ft|huf|forint)`),
				regexp.MustCompile(`(?i)([0-9][0-9 .,]*[0-9]|[0-9])\s*(?:ft|huf|forint)\b`),
			},
			StemGroup:   []string{"fizet", "osszeg"},
			Label:       "összeg",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldDueDate,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)fizetési\s+határidő\s*:?\s*([0-9]{4}[.\-/ ]\s*[0-9]{1,2}[.\-/ ]\s*[0-9]{1,2}\.?)`),
				regexp.MustCompile(`(?i)esedékesség(?:i\s+dátum)?\s*:?\s*([0-9]{4}[.\-/ ]\s*[0-9]{1,2}[.\-/ ]\s*[0-9]{1,2}\.?)`),
				regexp.MustCompile(`(?i)határidő\s*:?\s*([0-9]{4}[.\-/ ]\s*[0-9]{1,2}[.\-/ ]\s*[0-9]{1,2}\.?)`),
			},
			StemGroup:   []string{"hatarido", "esedekes"},
			Label:       "határidő",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldInvoiceNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)számla\s*sorszáma?\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
				regexp.MustCompile(`(?i)számlaszám\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
				regexp.MustCompile(`(?i)bizonylatszám\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
			},
			StemGroup:   []string{"szamla"},
			Label:       "számlaszám",
			PostProcess: stripSpaces,
			MinLen:      4,
		},
		{
			Field: domain.FieldAccountNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)ügyfél(?:azonosító|szám|kód)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
				regexp.MustCompile(`(?i)vevő(?:kód|azonosító)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
				regexp.MustCompile(`(?i)szerződésszám\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
			},
			StemGroup:   []string{"ugyfel"},
			Label:       "ügyfélszám",
			PostProcess: stripSpaces,
			MinLen:      3,
		},
		{
			Field: domain.FieldVendor,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)szolgáltató\s*(?:neve)?\s*:?\s*(\S[^\n]{1,60})`),
				regexp.MustCompile(`(?i)kibocsátó\s*:?\s*(\S[^\n]{1,60})`),
				regexp.MustCompile(`(?i)eladó\s*(?:neve)?\s*:?\s*(\S[^\n]{1,60})`),
			},
			StemGroup:   []string{"szolgaltato"},
			Label:       "szolgáltató",
			PostProcess: trimValue,
		},
	},
}
