package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailContext describes one email body handed to the extraction engine.
// The transport encoding is already decoded by the email collaborator.
type EmailContext struct {
	MessageID     string    `json:"message_id"`
	SenderAddress string    `json:"sender_address"`
	Subject       string    `json:"subject"`
	BodyText      string    `json:"body_text"`
	ReceivedAt    time.Time `json:"received_at"`
	LanguageHint  Language  `json:"language_hint,omitempty"`
	TrustedSource bool      `json:"trusted_source"`
}

// DocumentContext describes one attachment whose text has already been
// extracted by the PDF collaborator.
type DocumentContext struct {
	RawText      string   `json:"raw_text"`
	MessageID    string   `json:"message_id,omitempty"`
	AttachmentID string   `json:"attachment_id,omitempty"`
	FileName     string   `json:"file_name"`
	LanguageHint Language `json:"language_hint,omitempty"`
}

// ExtractionInput is the union of the two context kinds. Exactly one of
// Email or Document is set per extraction attempt.
type ExtractionInput struct {
	Email    *EmailContext
	Document *DocumentContext
}

// Text returns the raw text to extract from.
func (in ExtractionInput) Text() string {
	if in.Email != nil {
		return in.Email.Subject + "\n" + in.Email.BodyText
	}
	if in.Document != nil {
		return in.Document.RawText
	}
	return ""
}

// MessageID returns the originating message ID, if any.
func (in ExtractionInput) MessageID() string {
	if in.Email != nil {
		return in.Email.MessageID
	}
	if in.Document != nil {
		return in.Document.MessageID
	}
	return ""
}

// LanguageHint returns the caller-supplied language hint, if any.
func (in ExtractionInput) LanguageHint() Language {
	if in.Email != nil {
		return in.Email.LanguageHint
	}
	if in.Document != nil {
		return in.Document.LanguageHint
	}
	return ""
}

// Trusted reports whether the input comes from a trusted sender, which
// exempts it from the bill-keyword gate and grants a confidence bonus.
func (in ExtractionInput) Trusted() bool {
	return in.Email != nil && in.Email.TrustedSource
}

// SourceKind returns the source kind a candidate built from this input carries.
func (in ExtractionInput) SourceKind() SourceKind {
	if in.Document != nil {
		return SourcePDF
	}
	return SourceEmail
}

// Sender returns the sender address for email inputs.
func (in ExtractionInput) Sender() string {
	if in.Email != nil {
		return in.Email.SenderAddress
	}
	return ""
}

// ExtractedField is one field value produced by the field extractor,
// tagged with how it was found and how much it is trusted.
type ExtractedField struct {
	Value        string           `json:"value"`
	Confidence   float64          `json:"confidence"`
	Method       ExtractionMethod `json:"method"`
	SemanticType FieldName        `json:"semantic_type,omitempty"`
}

// BillSource records where a candidate bill came from.
type BillSource struct {
	Kind         SourceKind `json:"kind"`
	MessageID    string     `json:"message_id,omitempty"`
	AttachmentID string     `json:"attachment_id,omitempty"`
}

// CandidateBill is one extraction attempt's structured output. It is
// immutable once produced; the merge engine builds new values rather than
// mutating inputs. A candidate always has Amount > 0 and a non-empty
// Currency, or the extraction is reported as failed instead.
type CandidateBill struct {
	ID            uuid.UUID         `json:"id"`
	Vendor        string            `json:"vendor,omitempty"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	BillDate      *time.Time        `json:"bill_date,omitempty"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	AccountNumber string            `json:"account_number,omitempty"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	Category      string            `json:"category,omitempty"`
	Source        BillSource        `json:"source"`
	Method        ExtractionMethod  `json:"extraction_method"`
	Language      Language          `json:"language"`
	Confidence    float64           `json:"confidence"`
	Extras        map[string]string `json:"extras,omitempty"`
}

// ExtractionResult is the outcome of one extraction attempt (one strategy
// run, or the orchestrator's final answer).
type ExtractionResult struct {
	Success    bool            `json:"success"`
	Bills      []CandidateBill `json:"candidate_bills,omitempty"`
	Confidence float64         `json:"confidence,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// FieldMapping declares that a source field name is semantically equivalent
// to a target field name across sources. Consumed read-only from the
// field-mapping collaborator.
type FieldMapping struct {
	SourceFieldName string `json:"source_field_name"`
	TargetFieldName string `json:"target_field_name"`
	DataType        string `json:"data_type"`
}
