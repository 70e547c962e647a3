package extract

import (
	"fmt"

	"billscan/internal/domain"
)

// StemFusionStrategy fuses the full field-extraction cascade with stem
// scoring: the aggregate stem score over a pattern's required stems acts as
// the "is this text a bill at all" gate before any field work happens.
// Highest-priority strategy.
type StemFusionStrategy struct {
	fe     *FieldExtractor
	policy ConfidencePolicy
}

// NewStemFusionStrategy creates the stem/pattern-fusion strategy.
func NewStemFusionStrategy(fe *FieldExtractor, policy ConfidencePolicy) *StemFusionStrategy {
	return &StemFusionStrategy{fe: fe, policy: policy}
}

func (s *StemFusionStrategy) Name() string { return "stem_fusion" }

func (s *StemFusionStrategy) Extract(in domain.ExtractionInput, language domain.Language) (*domain.ExtractionResult, error) {
	text := in.Text()
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	// Bail out early when the text carries too little stem signal to be a
	// bill. Patterns without stem groups (non-stemmed languages) skip the
	// gate and rely on the cascade itself.
	gated := false
	for _, bp := range s.fe.Patterns(language) {
		if len(bp.RequiredStems) == 0 {
			gated = false
			break
		}
		if s.fe.StemScore(text, bp) >= s.policy.StemGate {
			gated = false
			break
		}
		gated = true
	}
	if gated {
		return nil, fmt.Errorf("%w: stem score below %.2f", domain.ErrNotABillDocument, s.policy.StemGate)
	}

	fields, err := s.fe.Extract(text, language)
	if err != nil {
		return nil, err
	}
	bill, err := buildCandidate(in, fields, language, s.policy.StemFusionBase, s.policy)
	if err != nil {
		return nil, err
	}
	return successResult(bill), nil
}
