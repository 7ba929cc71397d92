package elster

import (
	"maps"
	"slices"

	"github.com/MrJamesThe3rd/euer/internal/euer"
	"github.com/MrJamesThe3rd/euer/internal/profile"
)

// Lines filled from calculated totals.
const (
	FieldVATOwed       = "140"
	FieldVATPaid       = "185"
	FieldTotalIncome   = "159"
	FieldTotalExpenses = "199"
	FieldProfit        = "219"

	FieldVATDue     = "300"
	FieldVATCredit  = "301"
	FieldVATBalance = "302"
)

type calculatedField struct {
	number string
	label  string
	typ    FieldType
	value  func(c euer.Calculation) float64
}

var vatFields = []calculatedField{
	{FieldVATOwed, "Vereinnahmte Umsatzsteuer", FieldTax, func(c euer.Calculation) float64 { return c.VATOwed }},
	{FieldVATPaid, "Gezahlte Vorsteuerbeträge", FieldTax, func(c euer.Calculation) float64 { return c.VATPaid }},
	{FieldVATDue, "USt-Soll", FieldTax, func(c euer.Calculation) float64 { return c.VATOwed }},
	{FieldVATCredit, "Vorsteuer-Haben", FieldTax, func(c euer.Calculation) float64 { return c.VATPaid }},
	{FieldVATBalance, "USt-Saldo", FieldTax, func(c euer.Calculation) float64 { return c.VATBalance }},
}

var totalFields = []calculatedField{
	{FieldTotalIncome, "Summe Betriebseinnahmen", FieldTotal, func(c euer.Calculation) float64 { return c.TotalIncome }},
	{FieldTotalExpenses, "Summe Betriebsausgaben", FieldTotal, func(c euer.Calculation) float64 { return c.TotalExpenses }},
	{FieldProfit, "Gewinn/Verlust", FieldTotal, func(c euer.Calculation) float64 { return c.Profit }},
}

// Populate fills the form from a calculation, sorted by field number.
// VAT lines are left out entirely for flat-rate businesses. The personal
// block is only filled when p is not nil.
func Populate(calc euer.Calculation, flatRate bool, p *profile.Profile) []FieldValue {
	var fields []FieldValue

	if p != nil {
		fields = append(fields, personalValues(p)...)
	}

	fields = append(fields, mappedValues(calc.Income, FieldIncome)...)
	fields = append(fields, mappedValues(calc.Expenses, FieldExpense)...)

	if !flatRate {
		fields = append(fields, calculatedValues(calc, vatFields)...)
	}

	fields = append(fields, calculatedValues(calc, totalFields)...)

	sortFields(fields)

	return fields
}

func personalValues(p *profile.Profile) []FieldValue {
	fields := make([]FieldValue, 0, len(personalFields))

	for _, pf := range personalFields {
		v := pf.value(p)
		if pf.optional && v == "" {
			continue
		}

		fields = append(fields, FieldValue{
			Number:   pf.number,
			Value:    Text(v),
			Label:    pf.label,
			Type:     FieldPersonal,
			Required: pf.required,
			Source:   SourceUserData,
		})
	}

	return fields
}

// mappedValues sums category amounts per form line in key order so the
// float sums are reproducible.
func mappedValues(sums map[string]float64, typ FieldType) []FieldValue {
	byNumber := make(map[string]*FieldValue)

	var order []string

	for _, key := range slices.Sorted(maps.Keys(sums)) {
		amount := sums[key]
		if amount == 0 {
			continue
		}

		m, ok := LookupFieldMapping(key)
		if !ok {
			continue
		}

		f, ok := byNumber[m.Number]
		if !ok {
			f = &FieldValue{
				Number: m.Number,
				Label:  m.Label,
				Type:   typ,
				Source: SourceTransaction,
			}
			byNumber[m.Number] = f
			order = append(order, m.Number)
		}

		f.Value.Amount += amount
	}

	fields := make([]FieldValue, 0, len(order))
	for _, n := range order {
		fields = append(fields, *byNumber[n])
	}

	return fields
}

func calculatedValues(calc euer.Calculation, defs []calculatedField) []FieldValue {
	fields := make([]FieldValue, 0, len(defs))

	for _, d := range defs {
		fields = append(fields, FieldValue{
			Number: d.number,
			Value:  Amount(d.value(calc)),
			Label:  d.label,
			Type:   d.typ,
			Source: SourceCalculated,
		})
	}

	return fields
}
