package extract

import (
	"regexp"
	"strings"

	"billscan/internal/domain"
	"billscan/internal/pattern"
	"billscan/internal/textnorm"
)

// Value-shape patterns used by the stem fallback to pull a typed value out
// of a line once the line's stem score has accepted it.
var (
	amountShapeRe = regexp.MustCompile(`[0-9][0-9 .,]*[0-9]|[0-9]`)
	dateShapeRe   = regexp.MustCompile(`[0-9]{4}[.\-/ ]\s*[0-9]{1,2}[.\-/ ]\s*[0-9]{1,2}\.?|[0-9]{1,2}[./-][0-9]{1,2}[./-][0-9]{2,4}`)
	identShapeRe  = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9/_-]{2,}`)
)

// FieldExtractor runs the pattern registry's rule cascades over text. The
// precedence per field is explicit: company-specific pattern → exact
// pattern → stem-group fallback → generic label fallback.
type FieldExtractor struct {
	norm   *textnorm.Normalizer
	stems  *textnorm.StemIndex
	reg    *pattern.Registry
	policy ConfidencePolicy
}

// NewFieldExtractor wires the extractor's collaborators. All of them are
// read-only after construction, so the extractor is safe for concurrent use.
func NewFieldExtractor(norm *textnorm.Normalizer, stems *textnorm.StemIndex, reg *pattern.Registry, policy ConfidencePolicy) *FieldExtractor {
	return &FieldExtractor{norm: norm, stems: stems, reg: reg, policy: policy}
}

// Fields is the per-field output of one extraction pass.
type Fields map[domain.FieldName]domain.ExtractedField

// Extract runs every applicable pattern for the language and returns the
// fields of the first pattern that yields an amount. A pattern attempt that
// produces no amount is abandoned, since amount is the one required field.
func (fe *FieldExtractor) Extract(text string, language domain.Language) (Fields, error) {
	company, hasCompany := fe.reg.MatchCompany(text)

	for _, bp := range fe.reg.ForLanguage(language) {
		fields := fe.extractWithPattern(text, bp, company, hasCompany)
		if _, ok := fields[domain.FieldAmount]; ok {
			return fields, nil
		}
	}
	return nil, domain.ErrMissingRequiredField
}

// ExtractPatternOnly runs the exact-pattern and label tiers without the
// stem fallback, for the plain pattern strategy.
func (fe *FieldExtractor) ExtractPatternOnly(text string, language domain.Language) (Fields, error) {
	company, hasCompany := fe.reg.MatchCompany(text)

	for _, bp := range fe.reg.ForLanguage(language) {
		fields := make(Fields)
		for _, rule := range bp.FieldOrder() {
			if hasCompany {
				if f, ok := fe.tryCompanyRule(text, company, rule.Field); ok {
					fields[rule.Field] = f
					continue
				}
			}
			if f, ok := fe.tryExactPatterns(text, rule); ok {
				fields[rule.Field] = f
				continue
			}
			if f, ok := fe.tryLabelFallback(text, rule); ok {
				fields[rule.Field] = f
			}
		}
		if _, ok := fields[domain.FieldAmount]; ok {
			return fields, nil
		}
	}
	return nil, domain.ErrMissingRequiredField
}

// StemScore computes the aggregate stem score of the whole text against a
// pattern's required stems. Used by the stem-fusion strategy as its
// "is this a bill at all" gate.
func (fe *FieldExtractor) StemScore(text string, bp pattern.BillPattern) float64 {
	if len(bp.RequiredStems) == 0 {
		return 0
	}
	return fe.stems.MatchScore(text, bp.RequiredStems)
}

// Patterns exposes the registry's pattern list for a language.
func (fe *FieldExtractor) Patterns(language domain.Language) []pattern.BillPattern {
	return fe.reg.ForLanguage(language)
}

func (fe *FieldExtractor) extractWithPattern(text string, bp, company pattern.BillPattern, hasCompany bool) Fields {
	fields := make(Fields)
	for _, rule := range bp.FieldOrder() {
		if hasCompany {
			if f, ok := fe.tryCompanyRule(text, company, rule.Field); ok {
				fields[rule.Field] = f
				continue
			}
		}
		if f, ok := fe.tryExactPatterns(text, rule); ok {
			fields[rule.Field] = f
			continue
		}
		if f, ok := fe.tryStemFallback(text, rule); ok {
			fields[rule.Field] = f
			continue
		}
		if f, ok := fe.tryLabelFallback(text, rule); ok {
			fields[rule.Field] = f
		}
	}
	return fields
}

// tryCompanyRule runs the issuer-specific rule for the field, if one exists.
func (fe *FieldExtractor) tryCompanyRule(text string, company pattern.BillPattern, field domain.FieldName) (domain.ExtractedField, bool) {
	for _, rule := range company.Fields {
		if rule.Field != field {
			continue
		}
		if f, ok := fe.tryExactPatterns(text, rule); ok {
			f.Method = domain.MethodCompanySpecific
			f.Confidence = fe.policy.FieldConfidence(domain.MethodCompanySpecific)
			return f, true
		}
	}
	return domain.ExtractedField{}, false
}

// tryExactPatterns walks the rule's pattern list in order; the first match
// that survives post-processing and validation wins.
func (fe *FieldExtractor) tryExactPatterns(text string, rule pattern.FieldRule) (domain.ExtractedField, bool) {
	for _, re := range rule.Patterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := m[1]
		if rule.PostProcess != nil {
			v = rule.PostProcess(v)
		}
		if !rule.ValidValue(v) {
			continue
		}
		return domain.ExtractedField{
			Value:        v,
			Confidence:   fe.policy.FieldConfidence(domain.MethodExactPattern),
			Method:       domain.MethodExactPattern,
			SemanticType: rule.Field,
		}, true
	}
	return domain.ExtractedField{}, false
}

// tryStemFallback scores every line against the rule's stem group, takes
// the best line above the threshold, and pulls a value of the field's
// shape out of it.
func (fe *FieldExtractor) tryStemFallback(text string, rule pattern.FieldRule) (domain.ExtractedField, bool) {
	if len(rule.StemGroup) == 0 {
		return domain.ExtractedField{}, false
	}
	bestLine := ""
	bestScore := 0.0
	for _, line := range fe.norm.Lines(text) {
		score := fe.stems.MatchScore(line, rule.StemGroup)
		if score > bestScore {
			bestScore = score
			bestLine = line
		}
	}
	if bestScore < fe.policy.StemLineThreshold {
		return domain.ExtractedField{}, false
	}
	v, ok := fe.valueOfShape(bestLine, rule)
	if !ok {
		return domain.ExtractedField{}, false
	}
	return domain.ExtractedField{
		Value:        v,
		Confidence:   fe.policy.FieldConfidence(domain.MethodStemFallback),
		Method:       domain.MethodStemFallback,
		SemanticType: rule.Field,
	}, true
}

// tryLabelFallback looks for a generic "<label>: <value>" line using the
// rule's human label.
func (fe *FieldExtractor) tryLabelFallback(text string, rule pattern.FieldRule) (domain.ExtractedField, bool) {
	if rule.Label == "" {
		return domain.ExtractedField{}, false
	}
	label := fe.norm.Normalize(rule.Label)
	for _, line := range fe.norm.Lines(text) {
		normLine := fe.norm.Normalize(line)
		idx := strings.Index(normLine, label)
		if idx < 0 {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 || colon == len(line)-1 {
			continue
		}
		v, ok := fe.valueOfShape(line[colon+1:], rule)
		if !ok {
			continue
		}
		return domain.ExtractedField{
			Value:        v,
			Confidence:   fe.policy.FieldConfidence(domain.MethodLabelFallback),
			Method:       domain.MethodLabelFallback,
			SemanticType: rule.Field,
		}, true
	}
	return domain.ExtractedField{}, false
}

// valueOfShape extracts a value of the field's expected shape from a line
// fragment and applies the rule's post-processing and validation.
func (fe *FieldExtractor) valueOfShape(fragment string, rule pattern.FieldRule) (string, bool) {
	var v string
	switch rule.Field {
	case domain.FieldAmount:
		v = amountShapeRe.FindString(fragment)
	case domain.FieldDueDate, domain.FieldBillDate:
		v = dateShapeRe.FindString(fragment)
	case domain.FieldVendor:
		v = strings.TrimSpace(fragment)
	default:
		v = identShapeRe.FindString(fragment)
	}
	if v == "" {
		return "", false
	}
	if rule.PostProcess != nil {
		v = rule.PostProcess(v)
	}
	if !rule.ValidValue(v) {
		return "", false
	}
	return v, true
}
