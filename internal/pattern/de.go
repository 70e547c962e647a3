package pattern

import (
	"regexp"

	"billscan/internal/domain"
)

var germanPattern = BillPattern{
	ID:       "de-generic",
	Language: domain.LangGerman,
	IdentifierPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)rechnung`),
		regexp.MustCompile(`(?i)zahlbar`),
	},
	Fields: []FieldRule{
		{
			Field: domain.FieldAmount,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:gesamt|rechnungs)betrag\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])\s*(?:€|eur)?`),
				regexp.MustCompile(`(?i)zu\s+zahlen(?:der\s+betrag)?\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`(?i)([0-9][0-9 .,]*[0-9]|[0-9])\s*(?:€|eur)\b`),
			},
			Label:       "betrag",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldDueDate,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)fällig(?:keitsdatum|\s+am|\s+bis)?\s*:?\s*([0-9]{1,2}\.[0-9]{1,2}\.[0-9]{2,4}|[0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`),
				regexp.MustCompile(`(?i)zahlbar\s+bis\s*:?\s*([0-9]{1,2}\.[0-9]{1,2}\.[0-9]{2,4}|[0-9]{4}-[0-9]{1,2}-[0-9]{1,2})`),
			},
			Label:       "fällig am",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldInvoiceNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)rechnungs(?:nummer|nr\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
			},
			Label:       "rechnungsnummer",
			PostProcess: stripSpaces,
			MinLen:      4,
		},
		{
			Field: domain.FieldAccountNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)kunden(?:nummer|nr\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
				regexp.MustCompile(`(?i)vertrags(?:nummer|nr\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
			},
			Label:       "kundennummer",
			PostProcess: stripSpaces,
			MinLen:      3,
		},
		{
			Field: domain.FieldVendor,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:anbieter|aussteller|verkäufer)\s*:?\s*(\S[^\n]{1,60})`),
			},
			Label:       "anbieter",
			PostProcess: trimValue,
		},
	},
}
