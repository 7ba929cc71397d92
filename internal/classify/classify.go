// Package classify suggests a chart of accounts category for a bank
// transaction from its counterparty, purpose text and amount.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

const (
	officeSuppliesLimit = 50.0
	lowValueAssetFloor  = 250.0
	lowValueAssetCeil   = 952.0
)

// terms matches a normalized text by substring or, for short terms that
// would hit inside unrelated words, by whole word.
type terms struct {
	substrings []string
	words      []string
}

func (t terms) match(text string, words map[string]bool) bool {
	for _, s := range t.substrings {
		if strings.Contains(text, s) {
			return true
		}
	}

	for _, w := range t.words {
		if words[w] {
			return true
		}
	}

	return false
}

var invoicePattern = regexp.MustCompile(`\b(re|rg|rech|inv)[ .:-]*(nr[ .:]*)?\d{2,}`)

var (
	refundTerms     = terms{substrings: []string{"erstattung", "gutschrift", "refund", "rueckzahlung", "storno"}}
	invoiceTerms    = terms{substrings: []string{"rechnung", "invoice", "faktura"}}
	prepaymentTerms = terms{substrings: []string{"anzahlung", "vorauszahlung", "abschlag", "vorkasse"}}
	goodsTerms      = terms{
		substrings: []string{"verkauf", "produkt", "artikel", "bestellung", "shop", "ebay"},
		words:      []string{"ware", "waren"},
	}

	privateTerms = terms{
		substrings: []string{"privat", "kaufland", "rossmann", "netflix", "spotify", "zalando", "lieferando"},
		words:      []string{"rewe", "edeka", "lidl", "aldi", "penny", "netto"},
	}
	bankTerms = terms{
		substrings: []string{"paypal", "kontofuehrung", "kontogebuehr", "bankgebuehr", "kontist"},
		words:      []string{"bank", "n26", "wise", "stripe", "sumup", "klarna"},
	}
	taxAuthorityTerms = terms{substrings: []string{"finanzamt", "finanzkasse", "stadtkasse", "gemeindekasse"}}
	incomeTaxTerms    = terms{
		substrings: []string{"einkommen", "solidaritaet", "kirchensteuer"},
		words:      []string{"est", "soli"},
	}
	tradeTaxTerms = terms{substrings: []string{"gewerbesteuer"}, words: []string{"gewst"}}
	softwareTerms = terms{
		substrings: []string{
			"software", "lizenz", "license", "licence", "saas", "adobe",
			"microsoft", "github", "jetbrains", "atlassian", "dropbox",
		},
	}
	fuelTerms = terms{
		substrings: []string{"tankstelle", "tanken", "kraftstoff", "benzin", "diesel", "kfz", "werkstatt", "totalenergies"},
		words:      []string{"aral", "shell", "esso", "jet", "agip", "avia"},
	}
	phoneTerms = terms{
		substrings: []string{"telekom", "vodafone", "telefonica", "1&1", "1und1", "congstar", "freenet"},
		words:      []string{"o2"},
	}
	internetTerms  = terms{substrings: []string{"internet"}}
	websiteTerms   = terms{substrings: []string{"website", "webseite", "wartung"}}
	adPlatformTerm = terms{
		substrings: []string{"google ads", "adwords", "facebook", "meta platforms", "linkedin", "instagram", "tiktok"},
	}
	advertisingTerms = terms{
		substrings: []string{"werbung", "anzeige", "flyer", "marketing", "visitenkarte", "druckerei", "plakat"},
	}
	officeTerms = terms{
		substrings: []string{"buero", "office", "papier", "toner", "druckerpatrone", "schreibwaren", "ordner"},
	}
)

// Classifier assigns category keys by ordered keyword rules. The first
// matching rule wins. It holds no state and is safe for concurrent use.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify returns a category key for every transaction, falling back to
// service income for money in and other expenses for money out.
func (c *Classifier) Classify(tx transaction.Transaction) string {
	if tx.Amount > 0 {
		return classifyIncome(normalize(tx.Purpose))
	}

	return classifyExpense(normalize(tx.Counterparty+" "+tx.Purpose), math.Abs(tx.Amount))
}

func classifyIncome(text string) string {
	words := wordSet(text)

	switch {
	case refundTerms.match(text, words):
		return category.RefundIncome
	case invoicePattern.MatchString(text), invoiceTerms.match(text, words):
		return category.ServiceIncome
	case prepaymentTerms.match(text, words):
		return category.PrepaymentIncome
	case goodsTerms.match(text, words):
		return category.GoodsIncome
	}

	return category.ServiceIncome
}

func classifyExpense(text string, amount float64) string {
	words := wordSet(text)

	switch {
	case privateTerms.match(text, words):
		return category.PrivateWithdrawal
	case bankTerms.match(text, words):
		return category.BankFees
	case isTax(text, words):
		return classifyTax(text, words)
	case softwareTerms.match(text, words):
		return category.Software
	case fuelTerms.match(text, words):
		return category.VehicleFuel
	case phoneTerms.match(text, words):
		return category.Phone
	case internetTerms.match(text, words):
		return category.Internet
	case websiteTerms.match(text, words):
		return category.WebsiteMaintenance
	case adPlatformTerm.match(text, words):
		return category.OnlineAdvertising
	case advertisingTerms.match(text, words):
		return category.PrintAdvertising
	case amount < officeSuppliesLimit && officeTerms.match(text, words):
		return category.OfficeSupplies
	case amount > lowValueAssetFloor && amount <= lowValueAssetCeil:
		return category.LowValueAssets
	}

	return category.OtherExpense
}

// isTax reports a payment to a tax authority or mentioning tax.
// Tax advisor fees are not taxes.
func isTax(text string, words map[string]bool) bool {
	if taxAuthorityTerms.match(text, words) {
		return true
	}

	return strings.Contains(strings.ReplaceAll(text, "steuerberat", ""), "steuer")
}

// classifyTax separates personal income tax, which is a private
// withdrawal and never deductible, from trade tax and other taxes.
func classifyTax(text string, words map[string]bool) string {
	switch {
	case incomeTaxTerms.match(text, words):
		return category.PrivateWithdrawal
	case tradeTaxTerms.match(text, words):
		return category.TradeTax
	}

	return category.OtherTax
}

var umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

func normalize(s string) string {
	s = umlauts.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)

	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		words[w] = true
	}

	return words
}
