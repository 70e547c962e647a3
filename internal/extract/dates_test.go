package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/extract"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_ISOShapes(t *testing.T) {
	for _, raw := range []string{"2026.09.15", "2026-09-15", "2026/09/15"} {
		got, err := extract.ParseDate(raw, domain.LangEnglish)
		require.NoError(t, err, raw)
		assert.Equal(t, date(2026, time.September, 15), got, raw)
	}
}

func TestParseDate_HungarianSpacedDots(t *testing.T) {
	got, err := extract.ParseDate("2026. 09. 15.", domain.LangHungarian)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.September, 15), got)
}

func TestParseDate_GermanDayFirst(t *testing.T) {
	got, err := extract.ParseDate("15.09.2026", domain.LangGerman)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.September, 15), got)
}

func TestParseDate_EnglishMonthFirst(t *testing.T) {
	got, err := extract.ParseDate("09/15/2026", domain.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.September, 15), got)
}

func TestParseDate_EnglishWrittenMonth(t *testing.T) {
	got, err := extract.ParseDate("Sep 15, 2026", domain.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.September, 15), got)
}

func TestParseDate_CrossLanguageLastResort(t *testing.T) {
	// A German-shaped date inside text detected as English still parses.
	got, err := extract.ParseDate("15.09.2026", domain.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.September, 15), got)
}

func TestParseDate_Unparsable(t *testing.T) {
	_, err := extract.ParseDate("next tuesday", domain.LangEnglish)
	assert.ErrorIs(t, err, domain.ErrUnparsableDate)

	_, err = extract.ParseDate("", domain.LangEnglish)
	assert.ErrorIs(t, err, domain.ErrUnparsableDate)
}

func TestWithinDays(t *testing.T) {
	a := date(2026, time.September, 15)
	assert.True(t, extract.WithinDays(a, date(2026, time.September, 22), 7))
	assert.True(t, extract.WithinDays(date(2026, time.September, 22), a, 7))
	assert.False(t, extract.WithinDays(a, date(2026, time.September, 23), 7))
	assert.True(t, extract.WithinDays(a, a, 0))
}
