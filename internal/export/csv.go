package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/filing"
)

// renderCSV writes one row per form line in the German spreadsheet dialect:
// semicolon separated with decimal commas.
func renderCSV(w io.Writer, r *filing.Report) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Zeile", "Bezeichnung", "Wert", "Quelle"}); err != nil {
		return err
	}

	for _, f := range r.Fields {
		if err := cw.Write([]string{f.Number, f.Label, csvValue(f.Value), string(f.Source)}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func csvValue(v elster.Value) string {
	if v.IsText {
		return v.Text
	}

	return strings.Replace(round(v.Amount).StringFixed(2), ".", ",", 1)
}
