package categorizer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finflow/statement-ingest/internal/logging"
	"finflow/statement-ingest/internal/models"
)

const (
	// DefaultBatchSize is how many transactions go into one model request.
	DefaultBatchSize = 100

	// DefaultTimeout bounds one batch call. An unbounded hang here would
	// block the whole upload.
	DefaultTimeout = 30 * time.Second
)

// Categorizer batches transactions through a ModelClient and merges the
// results back by correlation id. It is stateless across calls.
type Categorizer struct {
	client    ModelClient
	batchSize int
	timeout   time.Duration
	logger    logging.Logger
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithBatchSize overrides the default batch size.
func WithBatchSize(n int) Option {
	return func(c *Categorizer) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithTimeout overrides the per-batch call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Categorizer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Categorizer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Categorizer. A nil client is allowed and simply tags
// everything with the fallback category, which keeps ingestion working when
// AI categorization is disabled.
func New(client ModelClient, opts ...Option) *Categorizer {
	c := &Categorizer{
		client:    client,
		batchSize: DefaultBatchSize,
		timeout:   DefaultTimeout,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// correlated pairs a transaction with its ephemeral batch id.
type correlated struct {
	tx models.Transaction
	id string
}

// Categorize assigns a category to every transaction. The output has the
// same length and order as the input, for every possible model behavior:
// results are reassembled by correlation id, never by trusting the order the
// model returned. This method never fails; batch errors degrade to
// models.CategoryOther for that batch only.
func (c *Categorizer) Categorize(ctx context.Context, txs []models.Transaction) []models.CategorizedTransaction {
	if len(txs) == 0 {
		return []models.CategorizedTransaction{}
	}

	items := make([]correlated, len(txs))
	for i, tx := range txs {
		items[i] = correlated{tx: tx, id: uuid.NewString()}
	}

	out := make([]models.CategorizedTransaction, 0, len(txs))
	for start := 0; start < len(items); start += c.batchSize {
		end := start + c.batchSize
		if end > len(items) {
			end = len(items)
		}
		out = append(out, c.categorizeBatch(ctx, start/c.batchSize, items[start:end])...)
	}
	return out
}

// categorizeBatch sends one batch and merges the proposals back in input
// order. Any failure tags the whole batch with the fallback category;
// failures are isolated per batch.
func (c *Categorizer) categorizeBatch(ctx context.Context, batchNo int, batch []correlated) []models.CategorizedTransaction {
	proposals := c.propose(ctx, batchNo, batch)

	out := make([]models.CategorizedTransaction, len(batch))
	for i, item := range batch {
		category := models.CategoryOther
		if raw, ok := proposals[item.id]; ok {
			if parsed, known := models.ParseCategory(raw); known {
				category = parsed
			} else {
				c.logger.Debug("model returned unknown category, using fallback",
					logging.Field{Key: logging.FieldCategory, Value: raw})
			}
		}
		out[i] = models.CategorizedTransaction{Transaction: item.tx, Category: category}
	}
	return out
}

func (c *Categorizer) propose(ctx context.Context, batchNo int, batch []correlated) map[string]string {
	if c.client == nil {
		return nil
	}

	items := make([]BatchItem, len(batch))
	for i, it := range batch {
		items[i] = BatchItem{
			CorrelationID: it.id,
			Description:   it.tx.Description,
			Amount:        it.tx.Amount.StringFixed(2),
			Currency:      it.tx.Currency,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	proposals, err := c.client.CategorizeBatch(callCtx, items)
	if err != nil {
		c.logger.WithError(err).Warn("batch categorization failed, falling back",
			logging.Field{Key: logging.FieldBatch, Value: batchNo},
			logging.Field{Key: logging.FieldBatchSize, Value: len(batch)})
		return nil
	}
	return proposals
}
