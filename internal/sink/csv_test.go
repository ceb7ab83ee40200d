package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/statement-ingest/internal/models"
)

func sampleTransactions() []models.CategorizedTransaction {
	tx := models.Transaction{
		StartedAt:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		Description: "Coffee shop",
		Amount:      decimal.RequireFromString("50.00"),
		Currency:    "EUR",
	}
	return []models.CategorizedTransaction{
		{Transaction: tx, Category: models.CategoryGroceries},
		{Transaction: tx, Category: models.CategoryOther},
	}
}

func TestCSVSinkSave(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVSink(&buf, 0)

	require.NoError(t, s.Save(context.Background(), sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "StartedAt,CompletedAt,Description,Amount,Currency,Category", lines[0])
	assert.Equal(t, "2023-01-01T00:00:00Z,2023-01-02T00:00:00Z,Coffee shop,50.00,EUR,GROCERIES", lines[1])
	assert.Contains(t, lines[2], "OTHER")
}

func TestCSVSinkCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVSink(&buf, ';')

	require.NoError(t, s.Save(context.Background(), sampleTransactions()))
	assert.Contains(t, buf.String(), "StartedAt;CompletedAt")
}

func TestCSVSinkEmptyInputWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVSink(&buf, 0)

	require.NoError(t, s.Save(context.Background(), nil))
	assert.Equal(t, "StartedAt,CompletedAt,Description,Amount,Currency,Category\n", buf.String())
}

func TestDiscardSink(t *testing.T) {
	assert.NoError(t, Discard{}.Save(context.Background(), sampleTransactions()))
}
