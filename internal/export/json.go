package export

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/filing"
)

type document struct {
	BatchID  uuid.UUID        `json:"batch_id"`
	Variant  category.Variant `json:"variant"`
	FlatRate bool             `json:"flat_rate"`
	Fields   []field          `json:"fields"`
	Totals   totals           `json:"totals"`
	Warnings []string         `json:"warnings,omitempty"`
}

type field struct {
	Number string        `json:"number"`
	Label  string        `json:"label"`
	Value  elster.Value  `json:"value"`
	Source elster.Source `json:"source"`
}

type totals struct {
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	Profit     float64 `json:"profit"`
	VATBalance float64 `json:"vat_balance"`
}

func renderJSON(w io.Writer, r *filing.Report) error {
	doc := document{
		BatchID:  r.BatchID,
		Variant:  r.Chart,
		FlatRate: r.FlatRate,
		Fields:   make([]field, 0, len(r.Fields)),
		Totals: totals{
			Income:     rounded(r.Calculation.TotalIncome),
			Expenses:   rounded(r.Calculation.TotalExpenses),
			Profit:     rounded(r.Calculation.Profit),
			VATBalance: rounded(r.Calculation.VATBalance),
		},
		Warnings: r.Warnings,
	}

	for _, f := range r.Fields {
		v := f.Value
		if !v.IsText {
			v = elster.Amount(rounded(v.Amount))
		}

		doc.Fields = append(doc.Fields, field{Number: f.Number, Label: f.Label, Value: v, Source: f.Source})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
