package bankcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer("EUR", "", "€", "", " ", "", "\u00a0", "", "+", "")

// parseAmount parses "1.234,56" (decimal comma) or "1,234.56" into a float.
func parseAmount(s string, decimalComma bool) (float64, error) {
	clean := amountNoise.Replace(s)

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(2).InexactFloat64(), nil
}
