package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/pattern"
)

func TestForLanguage_KnownLanguages(t *testing.T) {
	reg := pattern.NewRegistry()

	hu := reg.ForLanguage(domain.LangHungarian)
	require.Len(t, hu, 1)
	assert.Equal(t, "hu-generic", hu[0].ID)

	de := reg.ForLanguage(domain.LangGerman)
	require.Len(t, de, 1)
	assert.Equal(t, "de-generic", de[0].ID)
}

func TestForLanguage_UnknownFallsBackToDefault(t *testing.T) {
	reg := pattern.NewRegistry()
	ps := reg.ForLanguage(domain.Language("fr"))
	require.Len(t, ps, 1)
	assert.Equal(t, "en-generic", ps[0].ID)
}

func TestMatchCompany(t *testing.T) {
	reg := pattern.NewRegistry()

	c, ok := reg.MatchCompany("E.ON Energia Zrt. éves elszámoló számla")
	require.True(t, ok)
	assert.Equal(t, "hu-eon", c.ID)

	c, ok = reg.MatchCompany("Magyar Telekom Nyrt. havi számla")
	require.True(t, ok)
	assert.Equal(t, "hu-telekom", c.ID)

	_, ok = reg.MatchCompany("some unrelated text")
	assert.False(t, ok)
}

func TestFieldOrder_AmountFirst(t *testing.T) {
	reg := pattern.NewRegistry()
	for _, lang := range domain.SupportedLanguages {
		for _, bp := range reg.ForLanguage(lang) {
			order := bp.FieldOrder()
			require.NotEmpty(t, order, "pattern %s", bp.ID)
			assert.Equal(t, domain.FieldAmount, order[0].Field, "pattern %s", bp.ID)
		}
	}
}

func TestValidValue_MinLen(t *testing.T) {
	rule := pattern.FieldRule{Field: domain.FieldInvoiceNumber, MinLen: 4}
	assert.True(t, rule.ValidValue("ABC-123"))
	assert.False(t, rule.ValidValue("AB"))
	assert.False(t, rule.ValidValue("   "))
}

func TestValidValue_RejectsGarbageAccountValues(t *testing.T) {
	rule := pattern.FieldRule{Field: domain.FieldAccountNumber, MinLen: 3}
	assert.False(t, rule.ValidValue("szám"))
	assert.False(t, rule.ValidValue("number"))
	assert.False(t, rule.ValidValue("N/A"))
	assert.True(t, rule.ValidValue("555666"))
}
