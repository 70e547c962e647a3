package pattern

import (
	"regexp"

	"billscan/internal/domain"
)

// companyPatterns are issuer-specific overrides for billers whose layouts
// the generic language tables handle poorly. When a company identifier
// matches the text, these rules are tried before the language rules.
var companyPatterns = []BillPattern{
	{
		ID:       "hu-eon",
		Language: domain.LangHungarian,
		IdentifierPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)e\.?on\s+(?:energia|áramszolgáltató|hungária)`),
		},
		Fields: []FieldRule{
			{
				Field: domain.FieldAmount,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)fizetendő\s+összeg\s+összesen\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
				},
				PostProcess: trimValue,
			},
			{
				Field: domain.FieldAccountNumber,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)felhasználási\s+hely\s+azonosító\s*:?\s*([0-9-]{3,})`),
				},
				PostProcess: stripSpaces,
				MinLen:      3,
			},
			{
				Field: domain.FieldVendor,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)(e\.?on\s+\S[^\n]{1,40})`),
				},
				PostProcess: trimValue,
			},
		},
	},
	{
		ID:       "hu-telekom",
		Language: domain.LangHungarian,
		IdentifierPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)magyar\s+telekom`),
		},
		Fields: []FieldRule{
			{
				Field: domain.FieldAmount,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)havi\s+díj\s+összesen\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])`),
					regexp.MustCompile(`(?i)fizetendő\s*:?\s*([0-9][0-9 .,]*[0-9]|[0-9])\s*ft`),
				},
				PostProcess: trimValue,
			},
			{
				Field: domain.FieldVendor,
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)(magyar\s+telekom(?:\s+nyrt\.?)?)`),
				},
				PostProcess: trimValue,
			},
		},
	},
}
