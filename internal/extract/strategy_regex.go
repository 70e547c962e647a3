package extract

import (
	"fmt"
	"regexp"
	"strings"

	"billscan/internal/amount"
	"billscan/internal/domain"
	"billscan/internal/textnorm"
)

// billKeywords gates the regex-heuristic strategy: text must contain at
// least two of these (accent-folded) before it is treated as a bill, unless
// the source is pre-trusted. Covers all supported languages.
var billKeywords = []string{
	"invoice", "bill", "payment", "due", "total", "amount", "balance",
	"szamla", "fizetendo", "osszeg", "hatarido", "esedekes", "dij",
	"rechnung", "betrag", "zahlung", "fallig",
}

const minKeywordHits = 2

var (
	currencyAmountRe = regexp.MustCompile(`(?i)([0-9][0-9 .,]*[0-9]|[0-9])\s*(?:ft|huf|forint|eur|usd|gbp|€|\$|£)`)
	symbolAmountRe   = regexp.MustCompile(`[$€£]\s*([0-9][0-9 .,]*[0-9]|[0-9])`)
	genericAccountRe = regexp.MustCompile(`(?i)(?:account|customer|ügyfél|kunden|vevő)[a-záéíóöőúüű]*\s*(?:no\.?|number|#|szám[a-z]*|nummer)?\s*:?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`)
	shortLineRe      = regexp.MustCompile(`^[\p{L}0-9][\p{L}0-9 .&'-]{2,50}$`)
)

// RegexHeuristicStrategy is the lowest-priority catch-all: best-effort
// regex extraction with no language-specific pattern tables. Used when no
// structured patterns produced a result.
type RegexHeuristicStrategy struct {
	norm   *textnorm.Normalizer
	policy ConfidencePolicy
}

// NewRegexHeuristicStrategy creates the bare-regex strategy.
func NewRegexHeuristicStrategy(norm *textnorm.Normalizer, policy ConfidencePolicy) *RegexHeuristicStrategy {
	return &RegexHeuristicStrategy{norm: norm, policy: policy}
}

func (s *RegexHeuristicStrategy) Name() string { return "regex_heuristic" }

func (s *RegexHeuristicStrategy) Extract(in domain.ExtractionInput, language domain.Language) (*domain.ExtractionResult, error) {
	text := in.Text()
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	if !in.Trusted() {
		if hits := s.keywordHits(text); hits < minKeywordHits {
			return nil, fmt.Errorf("%w: %d bill keywords found", domain.ErrNotABillDocument, hits)
		}
	}

	fields := make(Fields)
	if v, ok := s.findAmount(text); ok {
		fields[domain.FieldAmount] = domain.ExtractedField{
			Value:        v,
			Confidence:   s.policy.FieldConfidence(domain.MethodLabelFallback),
			Method:       domain.MethodLabelFallback,
			SemanticType: domain.FieldAmount,
		}
	} else {
		return nil, domain.ErrMissingRequiredField
	}
	if v := dateShapeRe.FindString(text); v != "" {
		fields[domain.FieldDueDate] = domain.ExtractedField{
			Value: v, Method: domain.MethodLabelFallback,
			Confidence:   s.policy.FieldConfidence(domain.MethodLabelFallback),
			SemanticType: domain.FieldDueDate,
		}
	}
	if v := s.findVendor(in); v != "" {
		fields[domain.FieldVendor] = domain.ExtractedField{
			Value: v, Method: domain.MethodLabelFallback,
			Confidence:   s.policy.FieldConfidence(domain.MethodLabelFallback),
			SemanticType: domain.FieldVendor,
		}
	}
	if m := genericAccountRe.FindStringSubmatch(text); len(m) > 1 {
		fields[domain.FieldAccountNumber] = domain.ExtractedField{
			Value: m[1], Method: domain.MethodLabelFallback,
			Confidence:   s.policy.FieldConfidence(domain.MethodLabelFallback),
			SemanticType: domain.FieldAccountNumber,
		}
	}

	bill, err := buildCandidate(in, fields, language, s.policy.RegexBase, s.policy)
	if err != nil {
		return nil, err
	}
	return successResult(bill), nil
}

func (s *RegexHeuristicStrategy) keywordHits(text string) int {
	normalized := s.norm.Normalize(text)
	tokens := make(map[string]bool)
	for _, t := range strings.Fields(normalized) {
		tokens[strings.Trim(t, ".,:;!?")] = true
	}
	hits := 0
	for _, kw := range billKeywords {
		if tokens[kw] {
			hits++
		}
	}
	return hits
}

// findAmount prefers a number adjacent to a currency marker, then any
// number on a line mentioning a money keyword.
func (s *RegexHeuristicStrategy) findAmount(text string) (string, bool) {
	if m := currencyAmountRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1], true
	}
	if m := symbolAmountRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1], true
	}
	for _, line := range s.norm.Lines(text) {
		normLine := s.norm.Normalize(line)
		for _, kw := range []string{"total", "amount", "osszeg", "fizetendo", "betrag"} {
			if strings.Contains(normLine, kw) {
				if v := amountShapeRe.FindString(line); v != "" && amount.Parse(v) > 0 {
					return v, true
				}
			}
		}
	}
	return "", false
}

// findVendor derives a vendor from the sender domain for emails, or from
// the first short header-looking line for documents.
func (s *RegexHeuristicStrategy) findVendor(in domain.ExtractionInput) string {
	if in.Email != nil {
		return vendorFromSender(in.Email.SenderAddress)
	}
	for _, line := range s.norm.Lines(in.Text()) {
		if shortLineRe.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
