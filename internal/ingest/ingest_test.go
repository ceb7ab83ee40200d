package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/statement-ingest/internal/categorizer"
	"finflow/statement-ingest/internal/ingesterror"
	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/tabular"
)

// stubModelClient answers every item with a fixed category.
type stubModelClient struct {
	category string
	calls    int
}

func (s *stubModelClient) CategorizeBatch(_ context.Context, items []categorizer.BatchItem) (map[string]string, error) {
	s.calls++
	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.CorrelationID] = s.category
	}
	return out, nil
}

// captureSink records what the pipeline hands to persistence.
type captureSink struct {
	saved []models.CategorizedTransaction
}

func (c *captureSink) Save(_ context.Context, txs []models.CategorizedTransaction) error {
	c.saved = append(c.saved, txs...)
	return nil
}

const abnCSV = `transactiondate,valuedate,mutationcode,amount,description
20230101,20230102,EUR,50.00,Coffee   shop
20230101,20230102,EUR,50.00,Coffee   shop
`

func TestIngestABNAmroEndToEnd(t *testing.T) {
	client := &stubModelClient{category: "GROCERIES"}
	capture := &captureSink{}
	p := New(categorizer.New(client), Options{Sink: capture})

	txs, err := p.Ingest(context.Background(), []byte(abnCSV), tabular.ContentTypeCSV, models.BankABNAmro, "EUR")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	for _, tx := range txs {
		assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), tx.StartedAt)
		assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), tx.CompletedAt)
		assert.Equal(t, "50.00", tx.Amount.StringFixed(2))
		assert.Equal(t, "EUR", tx.Currency)
		assert.Equal(t, "Coffee shop", tx.Description)
		assert.Equal(t, models.CategoryGroceries, tx.Category)
	}

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, txs, capture.saved, "sink receives the pipeline output")
}

func TestIngestUnsupportedBank(t *testing.T) {
	p := New(nil, Options{})

	_, err := p.Ingest(context.Background(), []byte(abnCSV), tabular.ContentTypeCSV, models.Bank("MONZO"), "EUR")
	require.Error(t, err)
	var bankErr *ingesterror.UnsupportedBankError
	assert.ErrorAs(t, err, &bankErr)
}

func TestIngestUnsupportedContentType(t *testing.T) {
	p := New(nil, Options{})

	_, err := p.Ingest(context.Background(), []byte(abnCSV), "application/json", models.BankABNAmro, "EUR")
	require.Error(t, err)
	var typeErr *ingesterror.UnsupportedFileTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestIngestRejectsWholeUploadOnMappingFailure(t *testing.T) {
	// Second row has an impossible date; nothing is committed.
	badCSV := `transactiondate,valuedate,mutationcode,amount,description
20230101,20230102,EUR,50.00,ok row
20230230,20230102,EUR,10.00,bad row
`
	capture := &captureSink{}
	p := New(nil, Options{Sink: capture})

	_, err := p.Ingest(context.Background(), []byte(badCSV), tabular.ContentTypeCSV, models.BankABNAmro, "EUR")
	require.Error(t, err)
	var recErr *ingesterror.UnprocessableRecordError
	assert.ErrorAs(t, err, &recErr)
	assert.Empty(t, capture.saved, "no partial commit")
}

func TestIngestCurrencyMismatch(t *testing.T) {
	p := New(nil, Options{})

	_, err := p.Ingest(context.Background(), []byte(abnCSV), tabular.ContentTypeCSV, models.BankABNAmro, "USD")
	require.Error(t, err)
	var curErr *ingesterror.CurrencyMismatchError
	require.ErrorAs(t, err, &curErr)
	assert.Equal(t, "USD", curErr.Account)
	assert.Equal(t, "EUR", curErr.File)
}

func TestIngestEmptyStatement(t *testing.T) {
	client := &stubModelClient{category: "GROCERIES"}
	p := New(categorizer.New(client), Options{})

	txs, err := p.Ingest(context.Background(),
		[]byte("transactiondate,valuedate,mutationcode,amount,description\n"),
		tabular.ContentTypeCSV, models.BankABNAmro, "EUR")
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Zero(t, client.calls, "no model call for an empty statement")
}

func TestIngestCategorizationOutageStillIngests(t *testing.T) {
	// A nil model client behaves like a categorization outage: everything
	// arrives tagged OTHER, the upload itself succeeds.
	p := New(categorizer.New(nil), Options{})

	txs, err := p.Ingest(context.Background(), []byte(abnCSV), tabular.ContentTypeCSV, models.BankABNAmro, "EUR")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, models.CategoryOther, tx.Category)
	}
}
