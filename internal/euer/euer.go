// Package euer aggregates categorized transactions into the sums of an
// Einnahmen-Überschuss-Rechnung.
package euer

import (
	"math"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

// CategoryLookup resolves a category key. *category.Table satisfies it.
type CategoryLookup interface {
	Lookup(key string) (category.Info, bool)
}

// Calculation is a snapshot of one aggregation run. Income and expense
// maps hold net amounts per category key, the private map gross amounts.
type Calculation struct {
	Income   map[string]float64 `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
	Private  map[string]float64 `json:"private"`

	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`

	VATOwed    float64 `json:"vat_owed"`
	VATPaid    float64 `json:"vat_paid"`
	VATBalance float64 `json:"vat_balance"`

	PrivateWithdrawals float64 `json:"private_withdrawals"`
	PrivateDeposits    float64 `json:"private_deposits"`
}

// Split divides a gross amount into net and VAT. Flat-rate businesses and
// zero rated categories keep the gross amount as net.
// net+vat equals gross exactly.
func Split(gross, rate float64, flatRate bool) (net, vat float64) {
	if flatRate || rate == 0 {
		return gross, 0
	}

	net = gross / (1 + rate/100)

	return net, gross - net
}

// Resolve returns the effective category key of tx: the assignment if
// present, else the classifier suggestion.
func Resolve(tx transaction.Transaction, assignments map[int]string) string {
	if key, ok := assignments[tx.ID]; ok && key != "" {
		return key
	}

	return tx.Category
}

// Aggregate computes the EÜR sums. Transactions whose effective category
// is empty or unknown to lookup are skipped.
func Aggregate(txs []transaction.Transaction, assignments map[int]string, flatRate bool, lookup CategoryLookup) Calculation {
	calc := Calculation{
		Income:   make(map[string]float64),
		Expenses: make(map[string]float64),
		Private:  make(map[string]float64),
	}

	for _, tx := range txs {
		key := Resolve(tx, assignments)
		if key == "" {
			continue
		}

		info, ok := lookup.Lookup(key)
		if !ok {
			continue
		}

		gross := math.Abs(tx.Amount)

		switch info.Type {
		case category.TypeIncome:
			net, vat := Split(gross, info.VATRate, flatRate)
			calc.Income[key] += net
			calc.TotalIncome += net

			if !flatRate {
				calc.VATOwed += vat
			}
		case category.TypeExpense:
			net, vat := Split(gross, info.VATRate, flatRate)
			calc.Expenses[key] += net
			calc.TotalExpenses += net

			if !flatRate {
				calc.VATPaid += vat
			}
		case category.TypePrivate:
			calc.Private[key] += gross

			switch key {
			case category.PrivateWithdrawal:
				calc.PrivateWithdrawals += gross
			case category.PrivateDeposit:
				calc.PrivateDeposits += gross
			}
		}
	}

	calc.Profit = calc.TotalIncome - calc.TotalExpenses
	calc.VATBalance = calc.VATOwed - calc.VATPaid

	return calc
}
