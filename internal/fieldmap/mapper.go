// Package fieldmap consumes the external field-mapping table and answers
// which extra-field keys are semantically equivalent across sources. The
// mappings are read-only; this package never creates or mutates them.
package fieldmap

import (
	"strings"

	"billscan/internal/domain"
)

// Mapper canonicalizes field names using the collaborator-supplied
// source→target pairs.
type Mapper struct {
	toTarget map[string]string
}

// New builds a Mapper from collaborator mappings.
func New(mappings []domain.FieldMapping) *Mapper {
	m := &Mapper{toTarget: make(map[string]string, len(mappings))}
	for _, fm := range mappings {
		src := strings.ToLower(strings.TrimSpace(fm.SourceFieldName))
		dst := strings.ToLower(strings.TrimSpace(fm.TargetFieldName))
		if src != "" && dst != "" {
			m.toTarget[src] = dst
		}
	}
	return m
}

// Default returns a Mapper preloaded with the aliases that recur across
// email and PDF sources regardless of collaborator configuration.
func Default() *Mapper {
	return New([]domain.FieldMapping{
		{SourceFieldName: "issuer_name", TargetFieldName: "vendor", DataType: "string"},
		{SourceFieldName: "merchant_name", TargetFieldName: "vendor", DataType: "string"},
		{SourceFieldName: "provider", TargetFieldName: "vendor", DataType: "string"},
		{SourceFieldName: "total", TargetFieldName: "amount", DataType: "number"},
		{SourceFieldName: "total_due", TargetFieldName: "amount", DataType: "number"},
		{SourceFieldName: "payment_deadline", TargetFieldName: "due_date", DataType: "date"},
		{SourceFieldName: "reference_number", TargetFieldName: "invoice_number", DataType: "string"},
		{SourceFieldName: "customer_id", TargetFieldName: "account_number", DataType: "string"},
	})
}

// Canonical returns the target name for a source field name, or the
// lowercased name itself when no mapping exists.
func (m *Mapper) Canonical(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if dst, ok := m.toTarget[key]; ok {
		return dst
	}
	return key
}
