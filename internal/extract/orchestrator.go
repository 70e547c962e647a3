package extract

import (
	"context"
	"errors"
	"log"

	"billscan/internal/domain"
	"billscan/internal/lang"
	"billscan/internal/pattern"
	"billscan/internal/textnorm"
)

// Orchestrator runs the registered strategies in priority order over one
// input. The first successful strategy wins; the one exception is PDF
// input, which keeps trying for a higher-confidence result until a
// strategy crosses the early-exit threshold. Strategy failures are local:
// they select the next strategy rather than aborting.
type Orchestrator struct {
	detector   *lang.Detector
	strategies []Strategy
	policy     ConfidencePolicy
}

// NewOrchestrator wires an orchestrator over an explicit strategy list.
func NewOrchestrator(detector *lang.Detector, policy ConfidencePolicy, strategies ...Strategy) *Orchestrator {
	return &Orchestrator{detector: detector, strategies: strategies, policy: policy}
}

// NewDefaultOrchestrator constructs the whole extraction engine: normalizer,
// stem index, pattern registry, and the three strategies in their standard
// priority order. Everything is built once here; nothing is lazily
// initialized, so concurrent extractions share only read-only state.
func NewDefaultOrchestrator(policy ConfidencePolicy) *Orchestrator {
	norm := textnorm.New()
	stems := textnorm.NewStemIndex(norm)
	reg := pattern.NewRegistry()
	fe := NewFieldExtractor(norm, stems, reg, policy)
	return NewOrchestrator(
		lang.NewDetector(),
		policy,
		NewStemFusionStrategy(fe, policy),
		NewPatternStrategy(fe, policy),
		NewRegexHeuristicStrategy(norm, policy),
	)
}

// ExtractFromEmail runs the strategy cascade over an email body.
func (o *Orchestrator) ExtractFromEmail(ctx context.Context, email domain.EmailContext) (*domain.ExtractionResult, error) {
	return o.run(ctx, domain.ExtractionInput{Email: &email})
}

// ExtractFromDocument runs the strategy cascade over attachment text.
func (o *Orchestrator) ExtractFromDocument(ctx context.Context, doc domain.DocumentContext) (*domain.ExtractionResult, error) {
	return o.run(ctx, domain.ExtractionInput{Document: &doc})
}

func (o *Orchestrator) run(ctx context.Context, in domain.ExtractionInput) (*domain.ExtractionResult, error) {
	text := in.Text()
	if text == "" {
		return &domain.ExtractionResult{Success: false, Error: domain.ErrEmptyInput.Error()}, domain.ErrEmptyInput
	}

	language := in.LanguageHint()
	if language == "" {
		language = o.detector.Detect(text)
	}

	isPDF := in.SourceKind() == domain.SourcePDF
	var best *domain.ExtractionResult
	var bestErr error

	for _, s := range o.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.Extract(in, language)
		if err != nil {
			log.Printf("extract.Orchestrator: strategy %s failed: %v", s.Name(), err)
			// Keep the most specific failure for the final report; a
			// plain "not a bill" is the least informative of the set.
			if bestErr == nil || errors.Is(bestErr, domain.ErrNotABillDocument) {
				bestErr = err
			}
			continue
		}
		if !res.Success || len(res.Bills) == 0 {
			continue
		}

		if !isPDF {
			return res, nil
		}
		if res.Confidence >= o.policy.PDFEarlyExit {
			return res, nil
		}
		if best == nil || res.Confidence > best.Confidence {
			best = res
		}
	}

	if best != nil {
		return best, nil
	}
	if bestErr == nil {
		bestErr = domain.ErrNoMatchingStrategy
	}
	return &domain.ExtractionResult{Success: false, Error: bestErr.Error()}, domain.ErrNoMatchingStrategy
}
