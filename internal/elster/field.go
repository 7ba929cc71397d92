// Package elster maps EÜR sums onto the numbered lines of the Anlage EÜR
// and checks that a filing is complete.
package elster

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// FieldType groups form lines by what they report.
type FieldType string

const (
	FieldPersonal FieldType = "personal"
	FieldIncome   FieldType = "income"
	FieldExpense  FieldType = "expense"
	FieldTax      FieldType = "tax"
	FieldTotal    FieldType = "total"
)

// Source tells where a field value comes from.
type Source string

const (
	SourceTransaction Source = "transaction"
	SourceUserData    Source = "user_data"
	SourceCalculated  Source = "calculated"
)

// Value is either an amount or a text.
type Value struct {
	Amount float64
	Text   string
	IsText bool
}

func Amount(v float64) Value { return Value{Amount: v} }
func Text(s string) Value    { return Value{Text: s, IsText: true} }

// IsEmpty reports a blank text. Amounts are never empty.
func (v Value) IsEmpty() bool {
	return v.IsText && strings.TrimSpace(v.Text) == ""
}

func (v Value) String() string {
	if v.IsText {
		return v.Text
	}

	return strconv.FormatFloat(v.Amount, 'f', 2, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}

	return json.Marshal(v.Amount)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*v = Amount(f)

	return nil
}

// FieldValue is one filled line of the form.
type FieldValue struct {
	Number   string    `json:"number"`
	Value    Value     `json:"value"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Source   Source    `json:"source"`
}

// Find returns the field with the given number.
func Find(fields []FieldValue, number string) (FieldValue, bool) {
	for _, f := range fields {
		if f.Number == number {
			return f, true
		}
	}

	return FieldValue{}, false
}

// fieldNumber parses a field number; malformed numbers sort last.
func fieldNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return int(^uint(0) >> 1)
	}

	return n
}

func sortFields(fields []FieldValue) {
	slices.SortStableFunc(fields, func(a, b FieldValue) int {
		return fieldNumber(a.Number) - fieldNumber(b.Number)
	})
}
