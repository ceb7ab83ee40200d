// Package categorizer assigns a category to every mapped transaction by
// sending batches to a generative text model. Categorization is best-effort
// by contract: a failed batch degrades to the fallback category instead of
// failing the ingestion.
package categorizer

import "context"

// BatchItem is the subset of a transaction the model needs for
// categorization. The correlation id is ephemeral and never leaves this
// package; it only re-associates model output with its input.
type BatchItem struct {
	CorrelationID string `json:"correlationId"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

// ModelClient is the external generative-model dependency. Implementations
// send one batch as a single request and return the model's proposed
// categories keyed by correlation id. The returned map may be missing ids or
// contain unknown category strings; the categorizer handles both.
type ModelClient interface {
	CategorizeBatch(ctx context.Context, items []BatchItem) (map[string]string, error)
}
