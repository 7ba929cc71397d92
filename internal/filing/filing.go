package filing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/euer"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

//go:generate mockgen -source=filing.go -destination=filing_mock.go -package=filing
type Batches interface {
	Get(ctx context.Context, id uuid.UUID) (*transaction.Batch, error)
}

type Charts interface {
	Table(ctx context.Context, variant category.Variant) (*category.Table, error)
}

// Report is everything needed to review and export one batch.
type Report struct {
	BatchID     uuid.UUID           `json:"batch_id"`
	Variant     category.Variant    `json:"variant"`
	Chart       category.Variant    `json:"chart"`
	FlatRate    bool                `json:"flat_rate"`
	Calculation euer.Calculation    `json:"calculation"`
	Fields      []elster.FieldValue `json:"fields"`
	Validation  elster.Result       `json:"validation"`
	Unresolved  []int               `json:"unresolved,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
}

type Service struct {
	batches Batches
	charts  Charts
	defs    []elster.Definition
}

func NewService(batches Batches, charts Charts, defs []elster.Definition) *Service {
	return &Service{batches: batches, charts: charts, defs: defs}
}

// Build recomputes the report of a stored batch.
func (s *Service) Build(ctx context.Context, batchID uuid.UUID) (*Report, error) {
	b, err := s.batches.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return s.Compute(ctx, b)
}

// Compute builds the report of a batch that need not be stored.
func (s *Service) Compute(ctx context.Context, b *transaction.Batch) (*Report, error) {
	table, err := s.charts.Table(ctx, b.Variant)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	assignments := b.Assignments()
	calc := euer.Aggregate(b.Transactions, assignments, b.FlatRate, table)
	fields := elster.Populate(calc, b.FlatRate, b.Profile)

	r := &Report{
		BatchID:     b.ID,
		Variant:     b.Variant,
		Chart:       table.Variant,
		FlatRate:    b.FlatRate,
		Calculation: calc,
		Fields:      fields,
		Validation:  elster.Validate(fields),
		Unresolved:  b.Unresolved(table),
	}

	if table.Variant != b.Variant {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("chart of accounts %s unavailable, computed with %s", b.Variant, table.Variant))
	}

	if n := len(r.Unresolved); n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d transactions without a known category are left out", n))
	}

	if missing := elster.MissingAutoCalculated(s.defs, fields, b.FlatRate); len(missing) > 0 {
		slog.Warn("auto-calculated fields missing", "batch", b.ID, "fields", missing)
		r.Warnings = append(r.Warnings, "auto-calculated fields missing: "+strings.Join(missing, ", "))
	}

	return r, nil
}

// Breakdown explains one form line of a stored batch.
func (s *Service) Breakdown(ctx context.Context, batchID uuid.UUID, number string) (*elster.Breakdown, error) {
	b, err := s.batches.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	table, err := s.charts.Table(ctx, b.Variant)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	bd, err := elster.Explain(number, b.Transactions, b.Assignments(), b.FlatRate, table)
	if err != nil {
		return nil, err
	}

	return &bd, nil
}
