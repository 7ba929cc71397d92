package bankcsv

// Profile describes the column layout of one bank's CSV export.
// Each column lists the header names it is known under; the first
// present one is used.
type Profile struct {
	Name         string
	Bank         string
	Comma        rune
	DateLayout   string
	DecimalComma bool

	DateCols         []string
	CounterpartyCols []string
	PurposeCols      []string // optional
	AmountCols       []string
}

// profiles is the ordered list of formats tried during auto-detection.
var profiles = []Profile{
	{
		Name:             "kontist",
		Bank:             "kontist",
		Comma:            ';',
		DateLayout:       "02.01.2006",
		DecimalComma:     true,
		DateCols:         []string{"Buchungsdatum", "Buchungstag", "Datum"},
		CounterpartyCols: []string{"Empfänger/Auftraggeber", "Empfänger", "Auftraggeber", "Name"},
		PurposeCols:      []string{"Verwendungszweck", "Buchungstext"},
		AmountCols:       []string{"Betrag (EUR)", "Betrag"},
	},
	{
		Name:             "n26",
		Bank:             "n26",
		Comma:            ',',
		DateLayout:       "2006-01-02",
		DateCols:         []string{"Booking Date", "Date"},
		CounterpartyCols: []string{"Partner Name", "Payee"},
		PurposeCols:      []string{"Payment Reference", "Payment reference"},
		AmountCols:       []string{"Amount (EUR)"},
	},
	{
		Name:             "n26-de",
		Bank:             "n26",
		Comma:            ',',
		DateLayout:       "2006-01-02",
		DateCols:         []string{"Buchungsdatum", "Datum"},
		CounterpartyCols: []string{"Name Zahlungsbeteiligter", "Empfänger"},
		PurposeCols:      []string{"Verwendungszweck"},
		AmountCols:       []string{"Betrag (EUR)"},
	},
}

// Profiles returns the profiles of a bank, or all when bank is empty.
func Profiles(bank string) []Profile {
	var out []Profile

	for _, p := range profiles {
		if bank == "" || p.Bank == bank {
			out = append(out, p)
		}
	}

	return out
}

// Banks lists the supported banks in detection order.
func Banks() []string {
	var out []string

	for _, p := range profiles {
		if len(out) == 0 || out[len(out)-1] != p.Bank {
			out = append(out, p.Bank)
		}
	}

	return out
}
