// Package sink is the persistence boundary of the pipeline. What happens to
// categorized transactions after ingestion is a collaborator's concern; this
// package defines the contract and ships a CSV implementation.
package sink

import (
	"context"

	"finflow/statement-ingest/internal/models"
)

// Sink receives the pipeline's final output.
type Sink interface {
	Save(ctx context.Context, txs []models.CategorizedTransaction) error
}

// Discard is a Sink that drops everything. Useful for callers that only
// want the returned slice.
type Discard struct{}

func (Discard) Save(context.Context, []models.CategorizedTransaction) error { return nil }
