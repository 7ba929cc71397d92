package transaction

import (
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
)

// Transaction is one booking line of a bank export.
// Positive amounts are money in, negative amounts money out.
type Transaction struct {
	ID           int       `json:"id"`
	Date         time.Time `json:"date"`
	Counterparty string    `json:"counterparty"`
	Purpose      string    `json:"purpose"`
	Amount       float64   `json:"amount"`
	Category     string    `json:"category,omitempty"` // Classifier suggestion
}

// Batch is one imported bank export together with the settings the
// EÜR is computed with. Overrides hold manual category corrections
// keyed by transaction ID.
type Batch struct {
	ID           uuid.UUID
	Bank         string
	Variant      category.Variant
	FlatRate     bool
	Profile      *profile.Profile
	Transactions []Transaction
	Overrides    map[int]string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Assignments returns a copy of the manual overrides.
func (b *Batch) Assignments() map[int]string {
	out := make(map[int]string, len(b.Overrides))
	maps.Copy(out, b.Overrides)

	return out
}

// EffectiveCategory returns the override for tx if present, else the
// classifier suggestion.
func (b *Batch) EffectiveCategory(tx Transaction) string {
	if key, ok := b.Overrides[tx.ID]; ok && key != "" {
		return key
	}

	return tx.Category
}

// Unresolved returns the IDs of transactions whose effective category is
// missing from table. They are left out of the EÜR.
func (b *Batch) Unresolved(table *category.Table) []int {
	var ids []int

	for _, tx := range b.Transactions {
		if _, ok := table.Lookup(b.EffectiveCategory(tx)); !ok {
			ids = append(ids, tx.ID)
		}
	}

	return ids
}

// Find returns the transaction with the given ID.
func (b *Batch) Find(id int) (Transaction, bool) {
	for _, tx := range b.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}

	return Transaction{}, false
}

// Clone returns a deep copy that shares no mutable state with b.
func (b *Batch) Clone() *Batch {
	c := *b
	c.Transactions = append([]Transaction(nil), b.Transactions...)
	c.Overrides = b.Assignments()

	if b.Profile != nil {
		p := *b.Profile
		c.Profile = &p
	}

	if b.UpdatedAt != nil {
		c.UpdatedAt = new(*b.UpdatedAt)
	}

	return &c
}
