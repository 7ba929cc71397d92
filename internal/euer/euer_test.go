package euer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/euer"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

const eps = 1e-9

func table(t *testing.T) *category.Table {
	t.Helper()

	tbl, err := category.NewTable(category.SKR03, "test", []category.Info{
		{Key: "service_income", Type: category.TypeIncome, Code: "8400", VATRate: 19},
		{Key: "reduced_rate_income", Type: category.TypeIncome, Code: "8300", VATRate: 7},
		{Key: "tax_free_income", Type: category.TypeIncome, Code: "8120", VATRate: 0},
		{Key: "software", Type: category.TypeExpense, Code: "4964", VATRate: 19},
		{Key: "insurance", Type: category.TypeExpense, Code: "4360", VATRate: 0},
		{Key: "private_withdrawal", Type: category.TypePrivate, Code: "1800"},
		{Key: "private_deposit", Type: category.TypePrivate, Code: "1890"},
	})
	require.NoError(t, err)

	return tbl
}

func tx(id int, amount float64, key string) transaction.Transaction {
	return transaction.Transaction{ID: id, Amount: amount, Category: key}
}

func TestAggregate_Scenarios(t *testing.T) {
	type testCase struct {
		name     string
		txs      []transaction.Transaction
		flatRate bool
		verify   func(t *testing.T, c euer.Calculation)
	}

	tests := []testCase{
		{
			name: "IncomeWithVAT",
			txs:  []transaction.Transaction{tx(0, 119, "service_income")},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.InDelta(t, 100.0, c.TotalIncome, eps)
				assert.InDelta(t, 19.0, c.VATOwed, eps)
				assert.InDelta(t, 100.0, c.Income["service_income"], eps)
			},
		},
		{
			name:     "IncomeFlatRate",
			txs:      []transaction.Transaction{tx(0, 119, "service_income")},
			flatRate: true,
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Equal(t, 119.0, c.TotalIncome)
				assert.Zero(t, c.VATOwed)
			},
		},
		{
			name: "IncomeAndExpense",
			txs: []transaction.Transaction{
				tx(0, 119, "service_income"),
				tx(1, -59.5, "software"),
			},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.InDelta(t, 50.0, c.TotalExpenses, eps)
				assert.InDelta(t, 9.5, c.VATPaid, eps)
				assert.InDelta(t, 50.0, c.Profit, eps)
				assert.InDelta(t, 9.5, c.VATBalance, eps)
			},
		},
		{
			name: "PrivateWithdrawal",
			txs:  []transaction.Transaction{tx(0, -500, "private_withdrawal")},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Equal(t, 500.0, c.PrivateWithdrawals)
				assert.Equal(t, 500.0, c.Private["private_withdrawal"])
				assert.Zero(t, c.TotalIncome)
				assert.Zero(t, c.TotalExpenses)
				assert.Empty(t, c.Income)
				assert.Empty(t, c.Expenses)
			},
		},
		{
			name: "PrivateDeposit",
			txs:  []transaction.Transaction{tx(0, 250, "private_deposit")},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Equal(t, 250.0, c.PrivateDeposits)
				assert.Zero(t, c.PrivateWithdrawals)
			},
		},
		{
			name: "Empty",
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Zero(t, c.TotalIncome)
				assert.Zero(t, c.TotalExpenses)
				assert.Zero(t, c.Profit)
				assert.Zero(t, c.VATOwed)
				assert.Zero(t, c.VATPaid)
				assert.Zero(t, c.VATBalance)
				assert.Zero(t, c.PrivateWithdrawals)
				assert.Zero(t, c.PrivateDeposits)
			},
		},
		{
			name: "SkipsUnresolvable",
			txs: []transaction.Transaction{
				tx(0, 100, ""),
				tx(1, 100, "no_such_key"),
				tx(2, 0, "service_income"),
			},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Zero(t, c.TotalIncome)
				assert.Zero(t, c.VATOwed)
			},
		},
		{
			name: "ZeroRate",
			txs: []transaction.Transaction{
				tx(0, 300, "tax_free_income"),
				tx(1, -80, "insurance"),
			},
			verify: func(t *testing.T, c euer.Calculation) {
				assert.Equal(t, 300.0, c.TotalIncome)
				assert.Equal(t, 80.0, c.TotalExpenses)
				assert.Zero(t, c.VATOwed)
				assert.Zero(t, c.VATPaid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := euer.Aggregate(tt.txs, nil, tt.flatRate, table(t))
			assert.Equal(t, got.TotalIncome-got.TotalExpenses, got.Profit)
			assert.Equal(t, got.VATOwed-got.VATPaid, got.VATBalance)
			tt.verify(t, got)
		})
	}
}

func TestAggregate_AssignmentOverridesSuggestion(t *testing.T) {
	txs := []transaction.Transaction{tx(0, 107, "service_income")}

	got := euer.Aggregate(txs, map[int]string{0: "reduced_rate_income"}, false, table(t))

	assert.InDelta(t, 100.0, got.Income["reduced_rate_income"], eps)
	assert.NotContains(t, got.Income, "service_income")
	assert.InDelta(t, 7.0, got.VATOwed, eps)
}

func TestAggregate_AssignmentCanCategorizeUnclassified(t *testing.T) {
	txs := []transaction.Transaction{tx(0, -59.5, "")}

	got := euer.Aggregate(txs, map[int]string{0: "software"}, false, table(t))
	assert.InDelta(t, 50.0, got.TotalExpenses, eps)
}

func TestAggregate_Idempotent(t *testing.T) {
	txs := []transaction.Transaction{
		tx(0, 1234.56, "service_income"),
		tx(1, -99.99, "software"),
		tx(2, -40, "private_withdrawal"),
	}

	first := euer.Aggregate(txs, map[int]string{1: "software"}, false, table(t))
	second := euer.Aggregate(txs, map[int]string{1: "software"}, false, table(t))

	assert.Equal(t, first, second)
}

func TestAggregate_SignIndependent(t *testing.T) {
	pos := euer.Aggregate([]transaction.Transaction{tx(0, 119, "software")}, nil, false, table(t))
	neg := euer.Aggregate([]transaction.Transaction{tx(0, -119, "software")}, nil, false, table(t))

	assert.Equal(t, pos, neg)
}

func TestAggregate_FlatRateInvariant(t *testing.T) {
	txs := []transaction.Transaction{
		tx(0, 119, "service_income"),
		tx(1, 107, "reduced_rate_income"),
		tx(2, -59.5, "software"),
	}

	got := euer.Aggregate(txs, nil, true, table(t))

	assert.Zero(t, got.VATOwed)
	assert.Zero(t, got.VATPaid)
	assert.Zero(t, got.VATBalance)
	assert.Equal(t, 119.0, got.Income["service_income"])
	assert.Equal(t, 107.0, got.Income["reduced_rate_income"])
	assert.Equal(t, 59.5, got.Expenses["software"])
}

func TestSplit(t *testing.T) {
	type testCase struct {
		name  string
		gross float64
		rate  float64
	}

	tests := []testCase{
		{name: "Standard", gross: 119, rate: 19},
		{name: "Reduced", gross: 107, rate: 7},
		{name: "Odd", gross: 0.01, rate: 19},
		{name: "Large", gross: 987654.32, rate: 19},
		{name: "Arbitrary", gross: 55.55, rate: 13.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, vat := euer.Split(tt.gross, tt.rate, false)

			assert.Equal(t, tt.gross, net+vat)
			assert.LessOrEqual(t, math.Abs(net*(1+tt.rate/100)-tt.gross), eps*math.Max(1, tt.gross))
		})
	}

	net, vat := euer.Split(119, 19, true)
	assert.Equal(t, 119.0, net)
	assert.Zero(t, vat)
}
