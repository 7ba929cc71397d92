package elster

const (
	anchorIncomeLabel  = "Betriebseinnahmen"
	anchorExpenseLabel = "Betriebsausgaben"
)

// Result is the verdict of Validate. Missing holds the labels of the
// lines that block the export.
type Result struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}

// Validate checks that every required personal line is filled and that at
// least one income and one expense line carry a value.
func Validate(fields []FieldValue) Result {
	var missing []string

	for _, pf := range personalFields {
		if !pf.required {
			continue
		}

		f, ok := Find(fields, pf.number)
		if !ok || f.Value.IsEmpty() {
			missing = append(missing, pf.label)
		}
	}

	if !hasValue(fields, FieldIncome) {
		missing = append(missing, anchorIncomeLabel)
	}

	if !hasValue(fields, FieldExpense) {
		missing = append(missing, anchorExpenseLabel)
	}

	return Result{Valid: len(missing) == 0, Missing: missing}
}

func hasValue(fields []FieldValue, typ FieldType) bool {
	for _, f := range fields {
		if f.Type == typ && !f.Value.IsEmpty() {
			return true
		}
	}

	return false
}
