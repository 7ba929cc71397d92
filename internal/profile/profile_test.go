package profile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/profile"
)

func TestDecode(t *testing.T) {
	doc := `
last_name: Mustermann
first_name: Erika
tax_number: 21/815/08150
fiscal_year_start: 2025-01-01
fiscal_year_end: 2025-12-31
profession: Softwareentwicklung
small_business: true
`

	p, err := profile.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Mustermann", p.LastName)
	assert.Equal(t, "21/815/08150", p.TaxNumber)
	assert.True(t, p.SmallBusiness)
	assert.Empty(t, p.SpouseTaxID)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), p.FiscalYearEnd)
}

func TestDecode_InvertedFiscalYear(t *testing.T) {
	doc := "fiscal_year_start: 2025-12-31\nfiscal_year_end: 2025-01-01\n"

	_, err := profile.Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ends before it starts")
}

func TestCalendarYear(t *testing.T) {
	p := profile.CalendarYear(2024)

	assert.Equal(t, 2024, p.FiscalYearStart.Year())
	assert.Equal(t, time.December, p.FiscalYearEnd.Month())
	assert.Equal(t, 31, p.FiscalYearEnd.Day())
}
