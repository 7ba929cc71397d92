package batch

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

type transactionResponse struct {
	ID           int       `json:"id"`
	Date         time.Time `json:"date"`
	Counterparty string    `json:"counterparty"`
	Purpose      string    `json:"purpose"`
	Amount       float64   `json:"amount"`
	Suggested    string    `json:"suggested"`
	Override     string    `json:"override,omitempty"`
	Category     string    `json:"category"`
}

type batchResponse struct {
	ID           uuid.UUID             `json:"id"`
	Bank         string                `json:"bank"`
	Variant      category.Variant      `json:"variant"`
	FlatRate     bool                  `json:"flat_rate"`
	Profile      *profile.Profile      `json:"profile,omitempty"`
	Transactions []transactionResponse `json:"transactions"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    *time.Time            `json:"updated_at,omitempty"`
}

type batchSummaryResponse struct {
	ID           uuid.UUID        `json:"id"`
	Bank         string           `json:"bank"`
	Variant      category.Variant `json:"variant"`
	FlatRate     bool             `json:"flat_rate"`
	Transactions int              `json:"transactions"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toResponse(b *transaction.Batch) batchResponse {
	resp := batchResponse{
		ID:           b.ID,
		Bank:         b.Bank,
		Variant:      b.Variant,
		FlatRate:     b.FlatRate,
		Profile:      b.Profile,
		Transactions: make([]transactionResponse, len(b.Transactions)),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	for i, tx := range b.Transactions {
		resp.Transactions[i] = transactionResponse{
			ID:           tx.ID,
			Date:         tx.Date,
			Counterparty: tx.Counterparty,
			Purpose:      tx.Purpose,
			Amount:       tx.Amount,
			Suggested:    tx.Category,
			Override:     b.Overrides[tx.ID],
			Category:     b.EffectiveCategory(tx),
		}
	}

	return resp
}

func toSummaryList(batches []*transaction.Batch) []batchSummaryResponse {
	resp := make([]batchSummaryResponse, len(batches))
	for i, b := range batches {
		resp[i] = batchSummaryResponse{
			ID:           b.ID,
			Bank:         b.Bank,
			Variant:      b.Variant,
			FlatRate:     b.FlatRate,
			Transactions: len(b.Transactions),
			CreatedAt:    b.CreatedAt,
		}
	}

	return resp
}
