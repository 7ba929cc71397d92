package elster

import (
	"slices"

	"github.com/MrJamesThe3rd/euer/internal/category"
)

// FieldMapping routes a category to a line of the Anlage EÜR.
type FieldMapping struct {
	Number string
	Label  string
}

const (
	labelTaxableIncome = "Umsatzsteuerpflichtige Betriebseinnahmen"
	labelOtherExpenses = "Übrige unbeschränkt abzugsfähige Betriebsausgaben"
	labelVehicle       = "Kraftfahrzeugkosten und andere Fahrtkosten"
	labelTravel        = "Übernachtungs- und Reisenebenkosten"
	labelTaxFree       = "Umsatzsteuerfreie, nicht umsatzsteuerbare Betriebseinnahmen"
	labelPersonnel     = "Ausgaben für eigenes Personal"
	labelGoodsPurchase = "Waren, Rohstoffe und Hilfsstoffe"
)

// fieldMappings follows the line items of the form. Many operating costs
// share line 183; categories missing here are not reported on the form.
var fieldMappings = map[string]FieldMapping{
	category.ServiceIncome:     {"112", labelTaxableIncome},
	category.ReducedRateIncome: {"112", labelTaxableIncome},
	category.GoodsIncome:       {"112", labelTaxableIncome},
	category.PrepaymentIncome:  {"112", labelTaxableIncome},
	category.RefundIncome:      {"112", labelTaxableIncome},
	category.OtherIncome:       {"112", labelTaxableIncome},

	category.TaxFreeIncome:       {"103", labelTaxFree},
	category.InterestIncome:      {"103", labelTaxFree},
	category.SmallBusinessIncome: {"111", "Betriebseinnahmen als umsatzsteuerlicher Kleinunternehmer"},
	category.AssetSaleIncome:     {"104", "Veräußerung oder Entnahme von Anlagevermögen"},
	category.VATRefund:           {"141", "Vom Finanzamt erstattete und ggf. verrechnete Umsatzsteuer"},

	category.GoodsPurchase:        {"100", labelGoodsPurchase},
	category.GoodsPurchaseReduced: {"100", labelGoodsPurchase},
	category.Subcontractor:        {"110", "Bezogene Fremdleistungen"},
	category.Wages:                {"120", labelPersonnel},
	category.SocialSecurity:       {"120", labelPersonnel},
	category.Depreciation:         {"130", "AfA auf bewegliche Wirtschaftsgüter"},
	category.LowValueAssets:       {"132", "Aufwendungen für geringwertige Wirtschaftsgüter"},

	category.VehicleFuel:      {"145", labelVehicle},
	category.VehicleRepairs:   {"145", labelVehicle},
	category.VehicleInsurance: {"145", labelVehicle},
	category.VehicleTax:       {"145", labelVehicle},
	category.VehicleLeasing:   {"145", labelVehicle},

	category.PublicTransport:     {"221", labelTravel},
	category.TravelAccommodation: {"221", labelTravel},
	category.TravelMeals:         {"171", "Verpflegungsmehraufwendungen"},
	category.Entertainment:       {"175", "Bewirtungsaufwendungen"},
	category.Gifts:               {"165", "Geschenke"},
	category.InterestExpense:     {"232", "Schuldzinsen"},
	category.TradeTax:            {"217", "Gewerbesteuer"},
	category.OtherTax:            {"229", "Steuern, Gebühren und Abgaben"},
	category.VATPayment:          {"186", "An das Finanzamt gezahlte Umsatzsteuer"},

	category.Rent:               {"183", labelOtherExpenses},
	category.Utilities:          {"183", labelOtherExpenses},
	category.Insurance:          {"183", labelOtherExpenses},
	category.Memberships:        {"183", labelOtherExpenses},
	category.Subscriptions:      {"183", labelOtherExpenses},
	category.Software:           {"183", labelOtherExpenses},
	category.OfficeSupplies:     {"183", labelOtherExpenses},
	category.Phone:              {"183", labelOtherExpenses},
	category.Internet:           {"183", labelOtherExpenses},
	category.Postage:            {"183", labelOtherExpenses},
	category.WebsiteMaintenance: {"183", labelOtherExpenses},
	category.OnlineAdvertising:  {"183", labelOtherExpenses},
	category.PrintAdvertising:   {"183", labelOtherExpenses},
	category.BankFees:           {"183", labelOtherExpenses},
	category.LegalAdvice:        {"183", labelOtherExpenses},
	category.Accounting:         {"183", labelOtherExpenses},
	category.Training:           {"183", labelOtherExpenses},
	category.Repairs:            {"183", labelOtherExpenses},
	category.OtherExpense:       {"183", labelOtherExpenses},
}

// LookupFieldMapping returns the form line a category is reported on.
func LookupFieldMapping(key string) (FieldMapping, bool) {
	m, ok := fieldMappings[key]
	return m, ok
}

// CategoriesFor lists the category keys reported on the given line, sorted.
func CategoriesFor(number string) []string {
	var keys []string

	for key, m := range fieldMappings {
		if m.Number == number {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	return keys
}
