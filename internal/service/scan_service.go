package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// ScanRequest is one scanning run: every email body and attachment text
// recovered for a batch of messages.
type ScanRequest struct {
	Emails    []domain.EmailContext    `json:"emails"`
	Documents []domain.DocumentContext `json:"documents"`
	// Persist stores the final bills and archives the raw source text.
	Persist bool `json:"persist"`
}

// InputFailure reports one input that produced no candidate.
type InputFailure struct {
	MessageID    string `json:"message_id,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
	Error        string `json:"error"`
}

// ScanResult is the outcome of one scanning run.
type ScanResult struct {
	RunID    uuid.UUID              `json:"run_id"`
	Bills    []domain.CandidateBill `json:"bills"`
	Failures []InputFailure         `json:"failures,omitempty"`
}

// ScanService drives the full pipeline: concurrent per-input extraction,
// then batch deduplication, then optional persistence and archival. The
// dedupe step runs strictly after every extraction has completed, since
// the merge engine needs the complete candidate set per message.
type ScanService struct {
	extractor port.Extractor
	deduper   port.Deduplicator
	bills     port.BillRepository
	storage   port.ObjectStorage
	cfg       *config.Config
}

// NewScanService creates a ScanService. bills and storage may be nil for
// offline (non-persisting) use.
func NewScanService(extractor port.Extractor, deduper port.Deduplicator, bills port.BillRepository, storage port.ObjectStorage, cfg *config.Config) *ScanService {
	return &ScanService{
		extractor: extractor,
		deduper:   deduper,
		bills:     bills,
		storage:   storage,
		cfg:       cfg,
	}
}

// Scan runs the pipeline over one request.
func (s *ScanService) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if len(req.Emails) == 0 && len(req.Documents) == 0 {
		return nil, domain.ErrEmptyInput
	}

	type job struct {
		in domain.ExtractionInput
	}
	jobs := make([]job, 0, len(req.Emails)+len(req.Documents))
	for i := range req.Emails {
		email := req.Emails[i]
		if !email.TrustedSource {
			email.TrustedSource = s.isTrustedSender(email.SenderAddress)
		}
		jobs = append(jobs, job{in: domain.ExtractionInput{Email: &email}})
	}
	for i := range req.Documents {
		doc := req.Documents[i]
		jobs = append(jobs, job{in: domain.ExtractionInput{Document: &doc}})
	}

	var (
		mu         sync.Mutex
		candidates = make([]domain.CandidateBill, 0, len(jobs))
		failures   []InputFailure
		wg         sync.WaitGroup
		sem        = make(chan struct{}, s.concurrency())
	)

	for _, j := range jobs {
		wg.Add(1)
		go func(in domain.ExtractionInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := s.extractOne(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, InputFailure{
					MessageID:    in.MessageID(),
					AttachmentID: attachmentID(in),
					Error:        err.Error(),
				})
				return
			}
			candidates = append(candidates, res.Bills...)
		}(j.in)
	}
	wg.Wait()

	final := s.deduper.Deduplicate(candidates)
	result := &ScanResult{RunID: uuid.New(), Bills: final, Failures: failures}

	if req.Persist && s.bills != nil {
		if err := s.bills.CreateBatch(ctx, result.RunID, final); err != nil {
			return nil, fmt.Errorf("storing bills: %w", err)
		}
		s.archive(ctx, result.RunID, req)
	}

	log.Printf("service.ScanService: run %s extracted %d candidates, emitted %d bills, %d failures",
		result.RunID, len(candidates), len(final), len(failures))
	return result, nil
}

// ExtractEmail exposes single-input email extraction.
func (s *ScanService) ExtractEmail(ctx context.Context, email domain.EmailContext) (*domain.ExtractionResult, error) {
	if !email.TrustedSource {
		email.TrustedSource = s.isTrustedSender(email.SenderAddress)
	}
	return s.extractor.ExtractFromEmail(ctx, email)
}

// ExtractDocument exposes single-input document extraction.
func (s *ScanService) ExtractDocument(ctx context.Context, doc domain.DocumentContext) (*domain.ExtractionResult, error) {
	return s.extractor.ExtractFromDocument(ctx, doc)
}

// Deduplicate exposes the batch merge step on its own.
func (s *ScanService) Deduplicate(bills []domain.CandidateBill) []domain.CandidateBill {
	return s.deduper.Deduplicate(bills)
}

// ListBills returns a page of stored bills with the total count.
func (s *ScanService) ListBills(ctx context.Context, offset, limit int) ([]domain.CandidateBill, int, error) {
	return s.bills.List(ctx, offset, limit)
}

// GetBill returns one stored bill.
func (s *ScanService) GetBill(ctx context.Context, id uuid.UUID) (*domain.CandidateBill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *ScanService) extractOne(ctx context.Context, in domain.ExtractionInput) (*domain.ExtractionResult, error) {
	if in.Email != nil {
		return s.extractor.ExtractFromEmail(ctx, *in.Email)
	}
	return s.extractor.ExtractFromDocument(ctx, *in.Document)
}

// archive stores raw source texts next to the structured bills. Archive
// failures are logged, never fatal: the scan result is already complete.
func (s *ScanService) archive(ctx context.Context, runID uuid.UUID, req ScanRequest) {
	if s.storage == nil || s.cfg.S3.Bucket == "" {
		return
	}
	for i := range req.Emails {
		key := fmt.Sprintf("runs/%s/email/%s.txt", runID, req.Emails[i].MessageID)
		s.upload(ctx, key, req.Emails[i].BodyText)
	}
	for i := range req.Documents {
		key := fmt.Sprintf("runs/%s/attachment/%s.txt", runID, req.Documents[i].AttachmentID)
		s.upload(ctx, key, req.Documents[i].RawText)
	}
}

func (s *ScanService) upload(ctx context.Context, key, body string) {
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        strings.NewReader(body),
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		log.Printf("service.ScanService: %v: %v", domain.ErrArchiveFailed, err)
	}
}

func (s *ScanService) isTrustedSender(sender string) bool {
	sender = strings.ToLower(strings.TrimSpace(sender))
	if sender == "" {
		return false
	}
	for _, t := range s.cfg.Scan.TrustedSenders {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if sender == t || strings.HasSuffix(sender, "@"+t) {
			return true
		}
	}
	return false
}

func (s *ScanService) concurrency() int {
	if s.cfg == nil || s.cfg.Scan.Concurrency < 1 {
		return 1
	}
	return s.cfg.Scan.Concurrency
}

func attachmentID(in domain.ExtractionInput) string {
	if in.Document != nil {
		return in.Document.AttachmentID
	}
	return ""
}
