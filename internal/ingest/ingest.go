// Package ingest composes the statement pipeline: decode the uploaded file,
// map every record through the bank's variant, enforce the account currency,
// categorize, and hand the result to the persistence sink.
package ingest

import (
	"context"

	"finflow/statement-ingest/internal/categorizer"
	"finflow/statement-ingest/internal/ingesterror"
	"finflow/statement-ingest/internal/logging"
	"finflow/statement-ingest/internal/mapper"
	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/sink"
	"finflow/statement-ingest/internal/tabular"
)

// ParseFunc decodes raw bytes into records. tabular.Parse in production.
type ParseFunc func(data []byte, contentType string) ([]tabular.Record, error)

// MapperFactory resolves a bank to its mapper. mapper.New in production.
type MapperFactory func(bank models.Bank) (mapper.Mapper, error)

// Categorizer is the batched categorization stage.
type Categorizer interface {
	Categorize(ctx context.Context, txs []models.Transaction) []models.CategorizedTransaction
}

// Pipeline holds the pipeline's collaborators. It carries no state across
// calls; every Ingest invocation is independent.
type Pipeline struct {
	parse      ParseFunc
	newMapper  MapperFactory
	categorize Categorizer
	sink       sink.Sink
	logger     logging.Logger
}

// Options configures optional Pipeline collaborators.
type Options struct {
	Parse     ParseFunc
	NewMapper MapperFactory
	Sink      sink.Sink
	Logger    logging.Logger
}

// New creates a Pipeline around the given categorizer. Zero-value Options
// fields fall back to the production collaborators and a discarding sink.
func New(cat Categorizer, opts Options) *Pipeline {
	p := &Pipeline{
		parse:      tabular.Parse,
		newMapper:  mapper.New,
		categorize: cat,
		sink:       sink.Discard{},
		logger:     logging.NewNop(),
	}
	if opts.Parse != nil {
		p.parse = opts.Parse
	}
	if opts.NewMapper != nil {
		p.newMapper = opts.NewMapper
	}
	if opts.Sink != nil {
		p.sink = opts.Sink
	}
	if opts.Logger != nil {
		p.logger = opts.Logger
	}
	if p.categorize == nil {
		p.categorize = categorizer.New(nil)
	}
	return p
}

// Ingest runs the full pipeline over one uploaded statement. Mapping is
// all-or-nothing: the first invalid record rejects the entire upload, so a
// statement is never partially committed. accountCurrency is the currency
// of the target account; every mapped transaction must match it.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, contentType string, bank models.Bank, accountCurrency string) ([]models.CategorizedTransaction, error) {
	m, err := p.newMapper(bank)
	if err != nil {
		return nil, err
	}

	records, err := p.parse(data, contentType)
	if err != nil {
		return nil, err
	}

	p.logger.Info("parsed statement",
		logging.Field{Key: logging.FieldBank, Value: string(bank)},
		logging.Field{Key: logging.FieldContentType, Value: contentType},
		logging.Field{Key: logging.FieldRows, Value: len(records)})

	txs := make([]models.Transaction, 0, len(records))
	for _, rec := range records {
		tx, err := m.Map(rec)
		if err != nil {
			return nil, err
		}
		if tx.Currency != accountCurrency {
			return nil, &ingesterror.CurrencyMismatchError{
				Account: accountCurrency,
				File:    tx.Currency,
			}
		}
		txs = append(txs, tx)
	}

	categorized := p.categorize.Categorize(ctx, txs)

	if err := p.sink.Save(ctx, categorized); err != nil {
		return nil, err
	}

	p.logger.Info("statement ingested",
		logging.Field{Key: logging.FieldBank, Value: string(bank)},
		logging.Field{Key: logging.FieldCount, Value: len(categorized)})

	return categorized, nil
}
