package fieldmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billscan/internal/domain"
	"billscan/internal/fieldmap"
)

func TestCanonical_DefaultAliases(t *testing.T) {
	m := fieldmap.Default()
	assert.Equal(t, "vendor", m.Canonical("issuer_name"))
	assert.Equal(t, "vendor", m.Canonical("merchant_name"))
	assert.Equal(t, "amount", m.Canonical("total_due"))
	assert.Equal(t, "due_date", m.Canonical("payment_deadline"))
	assert.Equal(t, "invoice_number", m.Canonical("reference_number"))
}

func TestCanonical_CaseAndSpaceInsensitive(t *testing.T) {
	m := fieldmap.Default()
	assert.Equal(t, "vendor", m.Canonical("  Issuer_Name "))
}

func TestCanonical_UnmappedPassesThroughLowercased(t *testing.T) {
	m := fieldmap.Default()
	assert.Equal(t, "meter_reading", m.Canonical("Meter_Reading"))
}

func TestNew_SkipsEmptyPairs(t *testing.T) {
	m := fieldmap.New([]domain.FieldMapping{
		{SourceFieldName: "", TargetFieldName: "vendor"},
		{SourceFieldName: "biller", TargetFieldName: ""},
		{SourceFieldName: "biller_name", TargetFieldName: "vendor"},
	})
	assert.Equal(t, "vendor", m.Canonical("biller_name"))
	assert.Equal(t, "biller", m.Canonical("biller"))
}
