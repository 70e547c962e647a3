// Package pattern holds the per-language field-extraction rule tables.
// All tables are read-only configuration, compiled once at registry
// construction and never mutated at runtime.
package pattern

import (
	"regexp"
	"strings"

	"billscan/internal/domain"
)

// RuleKind tags the extraction technique a rule represents. The field
// extractor dispatches kinds in a fixed, explicit order: company-specific
// patterns first, then exact patterns, then stem fallback, then label
// fallback.
type RuleKind string

const (
	KindExactPattern  RuleKind = "exact_pattern"
	KindStemFallback  RuleKind = "stem_fallback"
	KindLabelFallback RuleKind = "label_fallback"
	KindCompany       RuleKind = "company_pattern"
)

// FieldRule is the full cascade for one target field: ordered exact
// patterns, an optional stem-group fallback, and a generic label fallback.
type FieldRule struct {
	Field       domain.FieldName
	Patterns    []*regexp.Regexp
	StemGroup   []string
	Label       string
	PostProcess func(string) string
	MinLen      int
}

// BillPattern is one language's (or one issuer's) ordered rule set.
type BillPattern struct {
	ID                 string
	Language           domain.Language
	IdentifierPatterns []*regexp.Regexp
	Fields             []FieldRule
	RequiredStems      []string
}

// FieldOrder returns the rules in extraction priority order: amount first
// (the only required field), then the optional fields.
func (p BillPattern) FieldOrder() []FieldRule {
	ordered := make([]FieldRule, 0, len(p.Fields))
	for _, want := range []domain.FieldName{
		domain.FieldAmount, domain.FieldDueDate, domain.FieldInvoiceNumber,
		domain.FieldAccountNumber, domain.FieldVendor,
	} {
		for _, r := range p.Fields {
			if r.Field == want {
				ordered = append(ordered, r)
			}
		}
	}
	return ordered
}

// garbageTokens are values an account-number rule must never accept: label
// fragments and filler that commonly land in the capture group.
var garbageTokens = map[string]bool{
	"szam": true, "szám": true, "number": true, "nummer": true,
	"n/a": true, "none": true, "xxx": true,
}

// ValidValue applies the rule's length/shape constraint to a captured value.
func (r FieldRule) ValidValue(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if r.MinLen > 0 && len(v) < r.MinLen {
		return false
	}
	if r.Field == domain.FieldAccountNumber && garbageTokens[strings.ToLower(v)] {
		return false
	}
	return true
}

// Registry holds the compiled pattern tables per language plus
// company-specific overrides keyed by issuer marker.
type Registry struct {
	byLanguage map[domain.Language][]BillPattern
	companies  []BillPattern
}

// NewRegistry compiles every language table and company override.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage: map[domain.Language][]BillPattern{
			domain.LangHungarian: {hungarianPattern},
			domain.LangEnglish:   {englishPattern},
			domain.LangGerman:    {germanPattern},
		},
		companies: companyPatterns,
	}
}

// ForLanguage returns the ordered pattern list for a language. Languages
// without a table fall back to the default language's table.
func (r *Registry) ForLanguage(lang domain.Language) []BillPattern {
	if ps, ok := r.byLanguage[lang]; ok {
		return ps
	}
	return r.byLanguage[domain.DefaultLanguage]
}

// MatchCompany returns the first company pattern set whose identifier
// matches the text, if any. Company patterns take priority over the
// language tables for the fields they cover.
func (r *Registry) MatchCompany(text string) (BillPattern, bool) {
	for _, c := range r.companies {
		for _, id := range c.IdentifierPatterns {
			if id.MatchString(text) {
				return c, true
			}
		}
	}
	return BillPattern{}, false
}

// stripSpaces is the standard post-processing step for identifier values.
func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// trimValue is the standard post-processing step for free-text values.
func trimValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,;:")
}
