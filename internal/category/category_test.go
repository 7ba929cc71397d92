package category_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/category"
)

func TestNewTable(t *testing.T) {
	type testCase struct {
		name    string
		infos   []category.Info
		wantErr string
	}

	tests := []testCase{
		{
			name: "Valid",
			infos: []category.Info{
				{Key: "a", Name: "A", Type: category.TypeIncome, Code: "8400", VATRate: 19},
				{Key: "b", Name: "B", Type: category.TypePrivate, Code: "1800"},
			},
		},
		{
			name:    "MissingKey",
			infos:   []category.Info{{Name: "A", Type: category.TypeIncome}},
			wantErr: "missing key",
		},
		{
			name: "DuplicateKey",
			infos: []category.Info{
				{Key: "a", Type: category.TypeIncome},
				{Key: "a", Type: category.TypeExpense},
			},
			wantErr: "duplicate key",
		},
		{
			name:    "InvalidType",
			infos:   []category.Info{{Key: "a", Type: "asset"}},
			wantErr: "invalid type",
		},
		{
			name:    "NegativeRate",
			infos:   []category.Info{{Key: "a", Type: category.TypeExpense, VATRate: -7}},
			wantErr: "negative vat rate",
		},
		{
			name:    "PrivateWithVAT",
			infos:   []category.Info{{Key: "a", Type: category.TypePrivate, VATRate: 19}},
			wantErr: "private category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := category.NewTable(category.SKR03, "test", tt.infos)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.infos), table.Len())
		})
	}
}

func TestTable_LookupAndOrder(t *testing.T) {
	table, err := category.NewTable(category.SKR04, "test", []category.Info{
		{Key: "z_income", Type: category.TypeIncome, VATRate: 19},
		{Key: "a_expense", Type: category.TypeExpense, VATRate: 7},
		{Key: "m_income", Type: category.TypeIncome},
	})
	require.NoError(t, err)

	info, ok := table.Lookup("a_expense")
	require.True(t, ok)
	assert.Equal(t, 7.0, info.VATRate)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)

	keys := make([]string, 0)
	for _, i := range table.All() {
		keys = append(keys, i.Key)
	}

	assert.Equal(t, []string{"z_income", "a_expense", "m_income"}, keys)
	assert.Len(t, table.OfType(category.TypeIncome), 2)
}

func TestTable_NilLookup(t *testing.T) {
	var table *category.Table

	_, ok := table.Lookup(category.ServiceIncome)
	assert.False(t, ok)
}

func TestNormalizeVariant(t *testing.T) {
	assert.Equal(t, category.DefaultVariant, category.NormalizeVariant(""))
	assert.Equal(t, category.SKR04, category.NormalizeVariant(" SKR04 "))
}

func TestDecode_VariantMismatch(t *testing.T) {
	doc := "variant: skr04\nname: x\ncategories:\n  - {key: a, type: income}\n"

	_, err := category.Decode(strings.NewReader(doc), category.SKR03)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document describes skr04")
}

func TestDecode_NoCategories(t *testing.T) {
	_, err := category.Decode(strings.NewReader("variant: skr03\n"), category.SKR03)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no categories")
}
