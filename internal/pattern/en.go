package pattern

import (
	"regexp"

	"billscan/internal/domain"
)

var englishPattern = BillPattern{
	ID:       "en-generic",
	Language: domain.LangEnglish,
	IdentifierPatterns: []*regexp.Regexp{
		regexp.MustCompile(`(?i)\binvoice\b`),
		regexp.MustCompile(`(?i)\bbill\b`),
		regexp.MustCompile(`(?i)\b(?:amount|total)\s+due\b`),
	},
	Fields: []FieldRule{
		{
			Field: domain.FieldAmount,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:total|amount)\s+due\s*:?\s*[$€£]?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`(?i)(?:grand\s+)?total\s*:?\s*[$€£]?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`(?i)balance\s+due\s*:?\s*[$€£]?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				regexp.MustCompile(`[$€£]\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
			},
			Label:       "amount",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldDueDate,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)due\s+(?:date|by|on)\s*:?\s*([0-9]{4}-[0-9]{1,2}-[0-9]{1,2}|[0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})`),
				regexp.MustCompile(`(?i)payment\s+due\s*:?\s*([0-9]{4}-[0-9]{1,2}-[0-9]{1,2}|[0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})`),
				regexp.MustCompile(`(?i)due\s+(?:date|by|on)\s*:?\s*([A-Za-z]+\s+[0-9]{1,2},?\s+[0-9]{4})`),
			},
			Label:       "due date",
			PostProcess: trimValue,
		},
		{
			Field: domain.FieldInvoiceNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)invoice\s*(?:no\.?|number|#)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
				regexp.MustCompile(`(?i)reference\s*(?:no\.?|number)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/_-]{3,})`),
			},
			Label:       "invoice number",
			PostProcess: stripSpaces,
			MinLen:      4,
		},
		{
			Field: domain.FieldAccountNumber,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)account\s*(?:no\.?|number|#)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
				regexp.MustCompile(`(?i)customer\s*(?:id|number)\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`),
			},
			Label:       "account number",
			PostProcess: stripSpaces,
			MinLen:      3,
		},
		{
			Field: domain.FieldVendor,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:billed\s+by|from|issued\s+by|vendor)\s*:?\s*(\S[^\n]{1,60})`),
			},
			Label:       "vendor",
			PostProcess: trimValue,
		},
	},
}
