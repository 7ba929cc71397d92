package export

import (
	"io"
	"maps"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/euer/internal/filing"
)

const (
	sheetForm       = "Anlage EÜR"
	sheetCategories = "Kategorien"
)

// renderXLSX writes the form lines on the first sheet and the per-category
// sums on the second.
func renderXLSX(w io.Writer, r *filing.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetForm); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetCategories); err != nil {
		return err
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{{"Zeile", "Bezeichnung", "Wert", "Quelle"}}

	for _, fv := range r.Fields {
		var v any = rounded(fv.Value.Amount)
		if fv.Value.IsText {
			v = fv.Value.Text
		}

		rows = append(rows, []any{fv.Number, fv.Label, v, string(fv.Source)})
	}

	if err := writeSheet(f, sheetForm, rows, bold, money); err != nil {
		return err
	}

	rows = [][]any{{"Art", "Kategorie", "Betrag"}}

	for _, group := range []struct {
		name string
		sums map[string]float64
	}{
		{"Einnahme", r.Calculation.Income},
		{"Ausgabe", r.Calculation.Expenses},
		{"Privat", r.Calculation.Private},
	} {
		for _, key := range slices.Sorted(maps.Keys(group.sums)) {
			rows = append(rows, []any{group.name, key, rounded(group.sums[key])})
		}
	}

	if err := writeSheet(f, sheetCategories, rows, bold, money); err != nil {
		return err
	}

	return f.Write(w)
}

// writeSheet fills rows from A1 and formats column C as money.
func writeSheet(f *excelize.File, sheet string, rows [][]any, header, money int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(3, len(rows))
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", "D1", header); err != nil {
		return err
	}

	if len(rows) > 1 {
		if err := f.SetCellStyle(sheet, "C2", last, money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 50); err != nil {
		return err
	}

	return f.SetColWidth(sheet, "C", "C", 16)
}
