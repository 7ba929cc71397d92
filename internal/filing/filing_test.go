package filing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/filing"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

func skr03(t *testing.T) *category.Table {
	t.Helper()

	tbl, err := category.NewEmbeddedSource().Load(context.Background(), category.SKR03)
	require.NoError(t, err)

	return tbl
}

func newService(t *testing.T, ctrl *gomock.Controller) (*filing.Service, *filing.MockBatches, *filing.MockCharts) {
	t.Helper()

	defs, err := elster.LoadDefinitions()
	require.NoError(t, err)

	batches := filing.NewMockBatches(ctrl)
	charts := filing.NewMockCharts(ctrl)

	return filing.NewService(batches, charts, defs), batches, charts
}

func testBatch() *transaction.Batch {
	p := profile.CalendarYear(2025)
	p.LastName = "Mustermann"
	p.FirstName = "Erika"
	p.TaxNumber = "21/815/08150"
	p.Profession = "Beratung"

	return &transaction.Batch{
		ID:      uuid.New(),
		Variant: category.SKR03,
		Profile: &p,
		Transactions: []transaction.Transaction{
			{ID: 0, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 119, Category: "service_income"},
			{ID: 1, Amount: -59.5, Category: "software"},
			{ID: 2, Amount: -30, Category: ""},
			{ID: 3, Amount: -500, Category: "private_withdrawal"},
		},
		Overrides: map[int]string{},
	}
}

func TestService_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, batches, charts := newService(t, ctrl)
	b := testBatch()

	batches.EXPECT().Get(gomock.Any(), b.ID).Return(b, nil)
	charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(skr03(t), nil)

	r, err := svc.Build(context.Background(), b.ID)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, r.Calculation.TotalIncome, 1e-9)
	assert.InDelta(t, 50.0, r.Calculation.TotalExpenses, 1e-9)
	assert.Equal(t, 500.0, r.Calculation.PrivateWithdrawals)
	assert.True(t, r.Validation.Valid, r.Validation.Missing)
	assert.Equal(t, []int{2}, r.Unresolved)
	assert.Len(t, r.Warnings, 1)
	assert.Equal(t, category.SKR03, r.Chart)
}

func TestService_BuildFallbackChart(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, batches, charts := newService(t, ctrl)
	b := testBatch()
	b.Variant = category.SKR49
	b.Overrides[2] = "bank_fees"

	batches.EXPECT().Get(gomock.Any(), b.ID).Return(b, nil)
	charts.EXPECT().Table(gomock.Any(), category.SKR49).Return(skr03(t), nil)

	r, err := svc.Build(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Empty(t, r.Unresolved)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "skr49")
}

func TestService_BuildNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, batches, _ := newService(t, ctrl)
	id := uuid.New()

	batches.EXPECT().Get(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

	_, err := svc.Build(context.Background(), id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_ComputeRecomputesOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, charts := newService(t, ctrl)
	b := testBatch()

	charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(skr03(t), nil).Times(2)

	before, err := svc.Compute(context.Background(), b)
	require.NoError(t, err)

	b.FlatRate = true

	after, err := svc.Compute(context.Background(), b)
	require.NoError(t, err)

	assert.NotZero(t, before.Calculation.VATOwed)
	assert.Zero(t, after.Calculation.VATOwed)
	assert.Equal(t, 119.0, after.Calculation.TotalIncome)

	_, ok := elster.Find(after.Fields, elster.FieldVATOwed)
	assert.False(t, ok)
}

func TestService_Breakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, batches, charts := newService(t, ctrl)
	b := testBatch()

	batches.EXPECT().Get(gomock.Any(), b.ID).Return(b, nil).Times(2)
	charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(skr03(t), nil).Times(2)

	bd, err := svc.Breakdown(context.Background(), b.ID, "112")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, bd.Value, 1e-9)
	require.Len(t, bd.Contributions, 1)
	assert.Equal(t, 0, bd.Contributions[0].TransactionID)

	_, err = svc.Breakdown(context.Background(), b.ID, "10")
	assert.ErrorIs(t, err, elster.ErrUnknownField)
}
