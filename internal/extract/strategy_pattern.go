package extract

import "billscan/internal/domain"

// PatternStrategy is pure BillPattern matching without stem scoring: the
// exact-pattern and label tiers only. Second in priority.
type PatternStrategy struct {
	fe     *FieldExtractor
	policy ConfidencePolicy
}

// NewPatternStrategy creates the plain pattern strategy.
func NewPatternStrategy(fe *FieldExtractor, policy ConfidencePolicy) *PatternStrategy {
	return &PatternStrategy{fe: fe, policy: policy}
}

func (s *PatternStrategy) Name() string { return "pattern" }

func (s *PatternStrategy) Extract(in domain.ExtractionInput, language domain.Language) (*domain.ExtractionResult, error) {
	text := in.Text()
	if text == "" {
		return nil, domain.ErrEmptyInput
	}
	fields, err := s.fe.ExtractPatternOnly(text, language)
	if err != nil {
		return nil, err
	}
	bill, err := buildCandidate(in, fields, language, s.policy.PatternBase, s.policy)
	if err != nil {
		return nil, err
	}
	return successResult(bill), nil
}
