package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
	"github.com/MrJamesThe3rd/euer/internal/transaction/store"
)

func testTable(t *testing.T) *category.Table {
	t.Helper()

	table, err := category.NewTable(category.SKR03, "test", []category.Info{
		{Key: "service_income", Name: "Erlöse 19%", Type: category.TypeIncome, Code: "8400", VATRate: 19},
		{Key: "software", Name: "Software", Type: category.TypeExpense, Code: "4964", VATRate: 19},
		{Key: "other_expense", Name: "Sonstige", Type: category.TypeExpense, Code: "4900", VATRate: 19},
	})
	require.NoError(t, err)

	return table
}

type mocks struct {
	repo       *transaction.MockRepository
	classifier *transaction.MockClassifier
	charts     *transaction.MockCharts
	learner    *transaction.MockLearner
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:       transaction.NewMockRepository(ctrl),
		classifier: transaction.NewMockClassifier(ctrl),
		charts:     transaction.NewMockCharts(ctrl),
		learner:    transaction.NewMockLearner(ctrl),
	}
}

func (m mocks) service() *transaction.Service {
	return transaction.NewService(m.repo, m.classifier, m.charts, m.learner)
}

func TestService_Import(t *testing.T) {
	type testCase struct {
		name          string
		txs           []transaction.Transaction
		setupMock     func(t *testing.T, m mocks)
		wantErr       bool
		wantOverrides map[int]string
		wantCategory  []string
	}

	tests := []testCase{
		{
			name: "ClassifiesAndAppliesLearned",
			txs: []transaction.Transaction{
				{ID: 0, Counterparty: "ACME GmbH", Amount: 119},
				{ID: 1, Counterparty: "JetBrains", Amount: -59.5},
				{ID: 2, Counterparty: "", Amount: -10},
			},
			setupMock: func(t *testing.T, m mocks) {
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.classifier.EXPECT().Classify(gomock.Any()).DoAndReturn(func(tx transaction.Transaction) string {
					if tx.Amount > 0 {
						return "service_income"
					}

					return "other_expense"
				}).Times(3)
				m.learner.EXPECT().Suggest(gomock.Any(), "ACME GmbH").Return("", nil)
				m.learner.EXPECT().Suggest(gomock.Any(), "JetBrains").Return("software", nil)
				m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOverrides: map[int]string{1: "software"},
			wantCategory:  []string{"service_income", "other_expense", "other_expense"},
		},
		{
			name: "IgnoresUnknownLearnedKey",
			txs: []transaction.Transaction{
				{ID: 0, Counterparty: "Shop", Amount: -20},
			},
			setupMock: func(t *testing.T, m mocks) {
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.classifier.EXPECT().Classify(gomock.Any()).Return("other_expense")
				m.learner.EXPECT().Suggest(gomock.Any(), "Shop").Return("no_such_key", nil)
				m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOverrides: map[int]string{},
			wantCategory:  []string{"other_expense"},
		},
		{
			name: "LearnerErrorIsNotFatal",
			txs: []transaction.Transaction{
				{ID: 0, Counterparty: "Shop", Amount: -20},
			},
			setupMock: func(t *testing.T, m mocks) {
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.classifier.EXPECT().Classify(gomock.Any()).Return("other_expense")
				m.learner.EXPECT().Suggest(gomock.Any(), "Shop").Return("", errors.New("boom"))
				m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOverrides: map[int]string{},
			wantCategory:  []string{"other_expense"},
		},
		{
			name: "RepoError",
			txs:  []transaction.Transaction{{ID: 0, Amount: 5}},
			setupMock: func(t *testing.T, m mocks) {
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.classifier.EXPECT().Classify(gomock.Any()).Return("service_income")
				m.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(errors.New("full"))
			},
			wantErr: true,
		},
		{
			name: "ChartError",
			txs:  []transaction.Transaction{{ID: 0, Amount: 5}},
			setupMock: func(_ *testing.T, m mocks) {
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(nil, category.ErrUnknownVariant)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(t, m)

			got, err := m.service().Import(context.Background(), transaction.ImportParams{
				Bank:         "kontist",
				Transactions: tt.txs,
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, category.SKR03, got.Variant)
			assert.Equal(t, tt.wantOverrides, got.Overrides)

			categories := make([]string, len(got.Transactions))
			for i, tx := range got.Transactions {
				categories[i] = tx.Category
			}

			assert.Equal(t, tt.wantCategory, categories)
		})
	}
}

func TestService_Assign(t *testing.T) {
	batchID := uuid.New()

	batch := func() *transaction.Batch {
		return &transaction.Batch{
			ID:      batchID,
			Variant: category.SKR03,
			Transactions: []transaction.Transaction{
				{ID: 0, Counterparty: "JetBrains", Amount: -59.5, Category: "other_expense"},
				{ID: 1, Amount: -3, Category: "other_expense"},
			},
		}
	}

	type testCase struct {
		name      string
		txID      int
		key       string
		setupMock func(t *testing.T, m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "AssignsAndLearns",
			txID: 0,
			key:  "software",
			setupMock: func(t *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch(), nil)
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *transaction.Batch) error {
						assert.Equal(t, "software", b.Overrides[0])
						assert.NotNil(t, b.UpdatedAt)
						return nil
					})
				m.learner.EXPECT().Learn(gomock.Any(), "JetBrains", "software").Return(nil)
			},
		},
		{
			name: "NoCounterpartyNoLearning",
			txID: 1,
			key:  "software",
			setupMock: func(t *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch(), nil)
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
				m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "UnknownCategory",
			txID: 0,
			key:  "bogus",
			setupMock: func(t *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch(), nil)
				m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)
			},
			wantErr: category.ErrUnknownCategory,
		},
		{
			name: "UnknownTransaction",
			txID: 9,
			key:  "software",
			setupMock: func(_ *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), batchID).Return(batch(), nil)
			},
			wantErr: transaction.ErrNotFound,
		},
		{
			name: "UnknownBatch",
			txID: 0,
			key:  "software",
			setupMock: func(_ *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), batchID).Return(nil, transaction.ErrNotFound)
			},
			wantErr: transaction.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(t, m)

			got, err := m.service().Assign(context.Background(), batchID, tt.txID, tt.key)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.key, got.Overrides[tt.txID])
		})
	}
}

func TestService_ClearCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	id := uuid.New()

	m.repo.EXPECT().GetBatch(gomock.Any(), id).Return(&transaction.Batch{
		ID:           id,
		Transactions: []transaction.Transaction{{ID: 0, Category: "other_expense"}},
		Overrides:    map[int]string{0: "software"},
	}, nil)
	m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).Return(nil)

	got, err := m.service().ClearCategory(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Empty(t, got.Overrides)
	assert.Equal(t, "other_expense", got.EffectiveCategory(got.Transactions[0]))
}

func TestService_UpdateSettings(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		params    transaction.SettingsParams
		setupMock func(t *testing.T, m mocks)
		verify    func(t *testing.T, b *transaction.Batch)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "FlatRateAndProfile",
			params: transaction.SettingsParams{
				FlatRate: new(true),
				Profile:  &profile.Profile{LastName: "Mustermann"},
			},
			setupMock: func(_ *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), id).Return(&transaction.Batch{ID: id, Variant: category.SKR03}, nil)
				m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, b *transaction.Batch) {
				assert.True(t, b.FlatRate)
				require.NotNil(t, b.Profile)
				assert.Equal(t, "Mustermann", b.Profile.LastName)
			},
		},
		{
			name:   "Variant",
			params: transaction.SettingsParams{Variant: new(category.SKR04)},
			setupMock: func(t *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), id).Return(&transaction.Batch{ID: id, Variant: category.SKR03}, nil)
				m.charts.EXPECT().Table(gomock.Any(), category.SKR04).Return(testTable(t), nil)
				m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, b *transaction.Batch) {
				assert.Equal(t, category.SKR04, b.Variant)
			},
		},
		{
			name:   "ClearProfile",
			params: transaction.SettingsParams{ClearProfile: true},
			setupMock: func(_ *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), id).Return(&transaction.Batch{ID: id, Profile: &profile.Profile{}}, nil)
				m.repo.EXPECT().UpdateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, b *transaction.Batch) {
				assert.Nil(t, b.Profile)
			},
		},
		{
			name:   "VariantUnavailable",
			params: transaction.SettingsParams{Variant: new(category.Variant("skr99"))},
			setupMock: func(_ *testing.T, m mocks) {
				m.repo.EXPECT().GetBatch(gomock.Any(), id).Return(&transaction.Batch{ID: id}, nil)
				m.charts.EXPECT().Table(gomock.Any(), category.Variant("skr99")).Return(nil, category.ErrUnknownVariant)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(t, m)

			got, err := m.service().UpdateSettings(context.Background(), id, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestBatch_EffectiveCategory(t *testing.T) {
	b := &transaction.Batch{
		Transactions: []transaction.Transaction{
			{ID: 0, Category: "service_income"},
			{ID: 1, Category: ""},
		},
		Overrides: map[int]string{1: "goods_income"},
	}

	assert.Equal(t, "service_income", b.EffectiveCategory(b.Transactions[0]))
	assert.Equal(t, "goods_income", b.EffectiveCategory(b.Transactions[1]))

	c := b.Clone()
	c.Overrides[0] = "refund_income"
	c.Transactions[0].Category = "x"

	assert.NotContains(t, b.Overrides, 0)
	assert.Equal(t, "service_income", b.Transactions[0].Category)
}

func TestService_Unresolved(t *testing.T) {
	type testCase struct {
		name      string
		overrides map[int]string
		want      []int
	}

	tests := []testCase{
		{name: "UnknownSuggestion", want: []int{1, 2}},
		{name: "OverrideResolves", overrides: map[int]string{1: "software"}, want: []int{2}},
		{name: "OverrideToUnknownKey", overrides: map[int]string{0: "retired_key"}, want: []int{0, 1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(testTable(t), nil)

			b := &transaction.Batch{
				Variant: category.SKR03,
				Transactions: []transaction.Transaction{
					{ID: 0, Amount: 100, Category: "service_income"},
					{ID: 1, Amount: -20, Category: "retired_key"},
					{ID: 2, Amount: -5, Category: ""},
				},
				Overrides: tc.overrides,
			}

			got, err := m.service().Unresolved(t.Context(), b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// slowStore widens the window between reading and writing a batch.
type slowStore struct {
	*store.Store
}

func (s slowStore) GetBatch(ctx context.Context, id uuid.UUID) (*transaction.Batch, error) {
	time.Sleep(time.Millisecond)
	return s.Store.GetBatch(ctx, id)
}

func TestService_ConcurrentAssign(t *testing.T) {
	const n = 200

	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	table := testTable(t)
	m.charts.EXPECT().Table(gomock.Any(), category.SKR03).Return(table, nil).AnyTimes()
	m.classifier.EXPECT().Classify(gomock.Any()).Return("other_expense").AnyTimes()

	svc := transaction.NewService(slowStore{store.New()}, m.classifier, m.charts, nil)

	txs := make([]transaction.Transaction, n)
	for i := range txs {
		txs[i] = transaction.Transaction{ID: i, Amount: -10}
	}

	ctx := context.Background()

	b, err := svc.Import(ctx, transaction.ImportParams{Variant: category.SKR03, Transactions: txs})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			_, err := svc.Assign(ctx, b.ID, i, "software")
			assert.NoError(t, err)
		})
	}

	wg.Go(func() {
		_, err := svc.UpdateSettings(ctx, b.ID, transaction.SettingsParams{FlatRate: new(true)})
		assert.NoError(t, err)
	})

	wg.Wait()

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, got.Overrides, n)
	assert.True(t, got.FlatRate)
}
