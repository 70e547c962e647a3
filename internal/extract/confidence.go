package extract

import "billscan/internal/domain"

// ConfidencePolicy defines every confidence constant in one place so the
// scoring semantics are testable in isolation instead of scattered through
// the extraction code.
type ConfidencePolicy struct {
	// Per-field confidence by extraction method.
	FieldMethod map[domain.ExtractionMethod]float64
	// Strategy base confidences.
	StemFusionBase float64
	PatternBase    float64
	RegexBase      float64
	// Additive bonuses.
	OptionalFieldBonus float64
	TrustedBonus       float64
	// Hard cap on any candidate confidence.
	Cap float64
	// Minimum aggregate stem score before the stem-fusion strategy
	// treats text as a bill at all.
	StemGate float64
	// Per-line stem score needed to accept a stem-fallback hypothesis.
	StemLineThreshold float64
	// PDF extraction short-circuits the strategy cascade at this level.
	PDFEarlyExit float64
}

// DefaultPolicy returns the production scoring policy. Method confidences
// are strictly ordered: exact/company > stem > label.
func DefaultPolicy() ConfidencePolicy {
	return ConfidencePolicy{
		FieldMethod: map[domain.ExtractionMethod]float64{
			domain.MethodCompanySpecific: 0.95,
			domain.MethodExactPattern:    0.9,
			domain.MethodStemFallback:    0.6,
			domain.MethodLabelFallback:   0.4,
		},
		StemFusionBase:     0.7,
		PatternBase:        0.6,
		RegexBase:          0.4,
		OptionalFieldBonus: 0.05,
		TrustedBonus:       0.15,
		Cap:                0.95,
		StemGate:           0.3,
		StemLineThreshold:  0.5,
		PDFEarlyExit:       0.6,
	}
}

// FieldConfidence returns the confidence assigned to a field extracted by
// the given method.
func (p ConfidencePolicy) FieldConfidence(m domain.ExtractionMethod) float64 {
	return p.FieldMethod[m]
}

// CandidateConfidence computes a candidate's confidence from the strategy
// base, the optional fields found beyond the required amount, and the
// trusted-source bonus.
func (p ConfidencePolicy) CandidateConfidence(base float64, optionalFields int, trusted bool) float64 {
	c := base + float64(optionalFields)*p.OptionalFieldBonus
	if trusted {
		c += p.TrustedBonus
	}
	if c > p.Cap {
		c = p.Cap
	}
	return c
}

// ClampField enforces the invariant that no field confidence exceeds the
// confidence of the candidate it belongs to.
func ClampField(f domain.ExtractedField, candidateConfidence float64) domain.ExtractedField {
	if f.Confidence > candidateConfidence {
		f.Confidence = candidateConfidence
	}
	return f
}
