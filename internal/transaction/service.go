package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
)

var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateBatch(ctx context.Context, b *Batch) error
	GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error)
	UpdateBatch(ctx context.Context, b *Batch) error
	ListBatches(ctx context.Context) ([]*Batch, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) error
}

// Classifier suggests a category key for a transaction.
type Classifier interface {
	Classify(tx Transaction) string
}

// Charts resolves the category table of a chart of accounts variant.
type Charts interface {
	Table(ctx context.Context, variant category.Variant) (*category.Table, error)
}

// Learner remembers manual category choices per counterparty.
type Learner interface {
	Suggest(ctx context.Context, counterparty string) (string, error)
	Learn(ctx context.Context, counterparty, categoryKey string) error
}

type Service struct {
	repo       Repository
	classifier Classifier
	charts     Charts
	learner    Learner

	mu    sync.Mutex
	locks map[uuid.UUID]*batchLock
}

// batchLock is held while a batch is read, changed and written back.
// refs counts holders and waiters; the entry is dropped at zero.
type batchLock struct {
	sync.Mutex
	refs int
}

// NewService wires the batch service. learner may be nil.
func NewService(repo Repository, classifier Classifier, charts Charts, learner Learner) *Service {
	return &Service{
		repo:       repo,
		classifier: classifier,
		charts:     charts,
		learner:    learner,
		locks:      make(map[uuid.UUID]*batchLock),
	}
}

// lock serializes changes to one batch so concurrent edits are applied
// one after the other instead of overwriting each other.
func (s *Service) lock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &batchLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

type ImportParams struct {
	Bank         string
	Variant      category.Variant
	FlatRate     bool
	Profile      *profile.Profile
	Transactions []Transaction
}

// Import classifies every transaction and stores them as a new batch.
// Learned counterparty choices that exist in the batch's chart become
// overrides.
func (s *Service) Import(ctx context.Context, params ImportParams) (*Batch, error) {
	if params.Variant == "" {
		params.Variant = category.DefaultVariant
	}

	table, err := s.charts.Table(ctx, params.Variant)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	b := &Batch{
		ID:           uuid.New(),
		Bank:         params.Bank,
		Variant:      params.Variant,
		FlatRate:     params.FlatRate,
		Profile:      params.Profile,
		Transactions: make([]Transaction, len(params.Transactions)),
		Overrides:    make(map[int]string),
		CreatedAt:    time.Now(),
	}

	for i, tx := range params.Transactions {
		tx.Category = s.classifier.Classify(tx)
		b.Transactions[i] = tx

		key := s.suggest(ctx, tx)
		if key == "" || key == tx.Category {
			continue
		}

		if _, ok := table.Lookup(key); ok {
			b.Overrides[tx.ID] = key
		}
	}

	if err := s.repo.CreateBatch(ctx, b); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	slog.Info("imported batch",
		"batch", b.ID, "bank", b.Bank, "transactions", len(b.Transactions), "learned", len(b.Overrides))

	return b, nil
}

func (s *Service) suggest(ctx context.Context, tx Transaction) string {
	if s.learner == nil || tx.Counterparty == "" {
		return ""
	}

	key, err := s.learner.Suggest(ctx, tx.Counterparty)
	if err != nil {
		slog.Warn("failed to look up learned category", "counterparty", tx.Counterparty, "error", err)
		return ""
	}

	return key
}

// Unresolved returns the IDs of transactions in b without a category of
// the batch's chart of accounts.
func (s *Service) Unresolved(ctx context.Context, b *Batch) ([]int, error) {
	table, err := s.charts.Table(ctx, b.Variant)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	return b.Unresolved(table), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Batch, error) {
	return s.repo.ListBatches(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.lock(id)()

	return s.repo.DeleteBatch(ctx, id)
}

// Assign overrides the category of one transaction. The key must exist in
// the batch's chart of accounts. The choice is remembered for the
// transaction's counterparty.
func (s *Service) Assign(ctx context.Context, batchID uuid.UUID, txID int, key string) (*Batch, error) {
	defer s.lock(batchID)()

	b, err := s.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	tx, ok := b.Find(txID)
	if !ok {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrNotFound)
	}

	table, err := s.charts.Table(ctx, b.Variant)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	if _, ok := table.Lookup(key); !ok {
		return nil, fmt.Errorf("%q: %w", key, category.ErrUnknownCategory)
	}

	if b.Overrides == nil {
		b.Overrides = make(map[int]string)
	}

	b.Overrides[txID] = key

	if err := s.update(ctx, b); err != nil {
		return nil, err
	}

	if s.learner != nil && tx.Counterparty != "" {
		if err := s.learner.Learn(ctx, tx.Counterparty, key); err != nil {
			slog.Error("failed to learn category", "counterparty", tx.Counterparty, "error", err)
		}
	}

	return b, nil
}

// ClearCategory drops the manual override of one transaction so the
// classifier suggestion applies again.
func (s *Service) ClearCategory(ctx context.Context, batchID uuid.UUID, txID int) (*Batch, error) {
	defer s.lock(batchID)()

	b, err := s.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if _, ok := b.Find(txID); !ok {
		return nil, fmt.Errorf("transaction %d: %w", txID, ErrNotFound)
	}

	delete(b.Overrides, txID)

	if err := s.update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// SettingsParams changes batch settings. Nil fields are left untouched.
type SettingsParams struct {
	Variant      *category.Variant
	FlatRate     *bool
	Profile      *profile.Profile
	ClearProfile bool
}

func (s *Service) UpdateSettings(ctx context.Context, batchID uuid.UUID, params SettingsParams) (*Batch, error) {
	defer s.lock(batchID)()

	b, err := s.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if params.Variant != nil {
		if _, err := s.charts.Table(ctx, *params.Variant); err != nil {
			return nil, fmt.Errorf("load chart: %w", err)
		}

		b.Variant = *params.Variant
	}

	if params.FlatRate != nil {
		b.FlatRate = *params.FlatRate
	}

	switch {
	case params.ClearProfile:
		b.Profile = nil
	case params.Profile != nil:
		b.Profile = params.Profile
	}

	if err := s.update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) update(ctx context.Context, b *Batch) error {
	b.UpdatedAt = new(time.Now())

	if err := s.repo.UpdateBatch(ctx, b); err != nil {
		return fmt.Errorf("update batch: %w", err)
	}

	return nil
}
