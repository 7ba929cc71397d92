package export

import (
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/filing"
)

var printer = message.NewPrinter(language.German)

var sections = []struct {
	typ   elster.FieldType
	title string
}{
	{elster.FieldPersonal, "Allgemeine Angaben"},
	{elster.FieldIncome, "Betriebseinnahmen"},
	{elster.FieldExpense, "Betriebsausgaben"},
	{elster.FieldTax, "Umsatzsteuer"},
	{elster.FieldTotal, "Ergebnis"},
}

func renderText(w io.Writer, r *filing.Report) error {
	var sb strings.Builder

	mode := "Regelbesteuerung"
	if r.FlatRate {
		mode = "Kleinunternehmer"
	}

	sb.WriteString(printer.Sprintf("Anlage EÜR (%s, %s)\n\n", strings.ToUpper(string(r.Chart)), mode))

	for _, section := range sections {
		var lines []elster.FieldValue

		for _, f := range r.Fields {
			if f.Type == section.typ {
				lines = append(lines, f)
			}
		}

		if len(lines) == 0 {
			continue
		}

		sb.WriteString("\n" + section.title + "\n")

		for _, f := range lines {
			sb.WriteString(printer.Sprintf("  %4s  %-50s %16s\n", f.Number, f.Label, textValue(f.Value)))
		}
	}

	writeCategories(&sb, "Einnahmen nach Kategorie", r.Calculation.Income)
	writeCategories(&sb, "Ausgaben nach Kategorie", r.Calculation.Expenses)

	if len(r.Warnings) > 0 {
		sb.WriteString("\nHinweise\n")

		for _, warn := range r.Warnings {
			sb.WriteString("  * " + warn + "\n")
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func writeCategories(sb *strings.Builder, title string, sums map[string]float64) {
	if len(sums) == 0 {
		return
	}

	sb.WriteString("\n" + title + "\n")

	for _, key := range slices.Sorted(maps.Keys(sums)) {
		sb.WriteString(printer.Sprintf("  %-56s %16s\n", key, money(sums[key])))
	}
}

func textValue(v elster.Value) string {
	if v.IsText {
		return v.Text
	}

	return money(v.Amount)
}

func money(v float64) string {
	return printer.Sprintf("%.2f €", rounded(v))
}
