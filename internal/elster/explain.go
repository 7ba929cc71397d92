package elster

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/euer"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotReported  = errors.New("field not reported")
)

// Contribution is one transaction's share of a form line. Amount is what
// it adds to the line; it is negative for expenses on the profit and VAT
// balance lines.
type Contribution struct {
	TransactionID int       `json:"transaction_id"`
	Date          time.Time `json:"date"`
	Counterparty  string    `json:"counterparty"`
	Purpose       string    `json:"purpose"`
	Category      string    `json:"category"`
	Gross         float64   `json:"gross"`
	Net           float64   `json:"net"`
	VAT           float64   `json:"vat"`
	Amount        float64   `json:"amount"`
}

// Subtotal is the share of one category.
type Subtotal struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// Breakdown explains how a form line's value came about.
type Breakdown struct {
	Number        string         `json:"number"`
	Label         string         `json:"label"`
	Value         float64        `json:"value"`
	Subtotals     []Subtotal     `json:"subtotals"`
	Contributions []Contribution `json:"contributions"`
}

// share picks the amount a categorized transaction adds to a line.
// ok is false when it does not touch the line.
type share func(info category.Info, key string, net, vat float64) (float64, bool)

// Explain recomputes which transactions and categories make up a line.
// Personal lines and unknown numbers yield ErrUnknownField; VAT lines of
// a flat-rate business yield ErrNotReported.
func Explain(number string, txs []transaction.Transaction, assignments map[int]string, flatRate bool, lookup euer.CategoryLookup) (Breakdown, error) {
	label, fn, err := shareFor(number, flatRate)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{Number: number, Label: label}
	subtotals := make(map[string]*Subtotal)

	for _, tx := range txs {
		key := euer.Resolve(tx, assignments)
		if key == "" {
			continue
		}

		info, ok := lookup.Lookup(key)
		if !ok || info.Type == category.TypePrivate {
			continue
		}

		gross := abs(tx.Amount)
		net, vat := euer.Split(gross, info.VATRate, flatRate)

		amount, ok := fn(info, key, net, vat)
		if !ok {
			continue
		}

		b.Value += amount
		b.Contributions = append(b.Contributions, Contribution{
			TransactionID: tx.ID,
			Date:          tx.Date,
			Counterparty:  tx.Counterparty,
			Purpose:       tx.Purpose,
			Category:      key,
			Gross:         gross,
			Net:           net,
			VAT:           vat,
			Amount:        amount,
		})

		st, ok := subtotals[key]
		if !ok {
			st = &Subtotal{Category: key, Name: info.Name}
			subtotals[key] = st
		}

		st.Amount += amount
	}

	for _, st := range subtotals {
		b.Subtotals = append(b.Subtotals, *st)
	}

	slices.SortFunc(b.Subtotals, func(x, y Subtotal) int {
		if c := cmp.Compare(abs(y.Amount), abs(x.Amount)); c != 0 {
			return c
		}

		return cmp.Compare(x.Category, y.Category)
	})

	return b, nil
}

func shareFor(number string, flatRate bool) (string, share, error) {
	if f, ok := findCalculated(vatFields, number); ok {
		if flatRate {
			return "", nil, fmt.Errorf("field %s in flat-rate mode: %w", number, ErrNotReported)
		}

		switch number {
		case FieldVATOwed, FieldVATDue:
			return f.label, typed(category.TypeIncome, vatShare), nil
		case FieldVATPaid, FieldVATCredit:
			return f.label, typed(category.TypeExpense, vatShare), nil
		default:
			return f.label, func(info category.Info, _ string, _, vat float64) (float64, bool) {
				return signed(info, vat), true
			}, nil
		}
	}

	if f, ok := findCalculated(totalFields, number); ok {
		switch number {
		case FieldTotalIncome:
			return f.label, typed(category.TypeIncome, netShare), nil
		case FieldTotalExpenses:
			return f.label, typed(category.TypeExpense, netShare), nil
		default:
			return f.label, func(info category.Info, _ string, net, _ float64) (float64, bool) {
				return signed(info, net), true
			}, nil
		}
	}

	keys := CategoriesFor(number)
	if len(keys) == 0 {
		return "", nil, fmt.Errorf("field %s: %w", number, ErrUnknownField)
	}

	m, _ := LookupFieldMapping(keys[0])

	return m.Label, func(_ category.Info, key string, net, _ float64) (float64, bool) {
		return net, slices.Contains(keys, key)
	}, nil
}

func netShare(net, _ float64) float64 { return net }
func vatShare(_, vat float64) float64 { return vat }

func typed(typ category.Type, pick func(net, vat float64) float64) share {
	return func(info category.Info, _ string, net, vat float64) (float64, bool) {
		if info.Type != typ {
			return 0, false
		}

		return pick(net, vat), true
	}
}

// signed counts income positive and expenses negative.
func signed(info category.Info, v float64) float64 {
	if info.Type == category.TypeExpense {
		return -v
	}

	return v
}

func findCalculated(defs []calculatedField, number string) (calculatedField, bool) {
	for _, d := range defs {
		if d.number == number {
			return d, true
		}
	}

	return calculatedField{}, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
