package elster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

const eps = 1e-9

func skr03(t *testing.T) *category.Table {
	t.Helper()

	tbl, err := category.NewEmbeddedSource().Load(t.Context(), category.SKR03)
	require.NoError(t, err)

	return tbl
}

func fullProfile() *profile.Profile {
	return &profile.Profile{
		LastName:        "Mustermann",
		FirstName:       "Erika",
		Street:          "Heidestraße",
		HouseNumber:     "17",
		PostalCode:      "51147",
		City:            "Köln",
		TaxNumber:       "21/815/08150",
		TaxID:           "12345678901",
		FiscalYearStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FiscalYearEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Profession:      "Softwareentwicklung",
		SmallBusiness:   false,
		Commercial:      true,
	}
}

type transactionFixture struct {
	amount float64
	key    string
}

type fixtures []transactionFixture

func (f fixtures) txs() []transaction.Transaction {
	out := make([]transaction.Transaction, len(f))
	for i, fx := range f {
		out[i] = transaction.Transaction{ID: i, Amount: fx.amount, Category: fx.key, Counterparty: "cp"}
	}

	return out
}
