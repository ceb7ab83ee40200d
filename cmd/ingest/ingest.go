// Package ingest implements the ingest subcommand: run the full pipeline
// over a statement file and write the categorized result as CSV.
package ingest

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"finflow/statement-ingest/cmd/root"
	"finflow/statement-ingest/internal/categorizer"
	"finflow/statement-ingest/internal/ingest"
	"finflow/statement-ingest/internal/logging"
	"finflow/statement-ingest/internal/models"
	"finflow/statement-ingest/internal/sink"
	"finflow/statement-ingest/internal/store"
	"finflow/statement-ingest/internal/tabular"
)

var (
	inputFile   string
	outputFile  string
	contentType string
	bankName    string
	currency    string
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse, map and categorize a bank statement file",
	Long: `Parse a statement export, normalize it through the bank's mapping
rules, categorize every transaction and write the result to a CSV file.`,
	Run: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)
	cfg := root.Cfg

	bank, err := models.ParseBank(bankName)
	if err != nil {
		root.Log.Fatalf("Unsupported bank %q: must be one of ABN_AMRO, REVOLUT", bankName)
	}

	data, err := os.ReadFile(inputFile)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	var client categorizer.ModelClient
	if cfg.AI.Enabled {
		vocab, err := store.NewCategoryStore(cfg.Categories.File).LoadCategories()
		if err != nil {
			root.Log.Fatalf("Error loading categories: %v", err)
		}
		gemini, err := categorizer.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, vocab, log)
		if err != nil {
			root.Log.Fatalf("Error creating Gemini client: %v", err)
		}
		defer func() {
			if err := gemini.Close(); err != nil {
				root.Log.Warnf("Failed to close Gemini client: %v", err)
			}
		}()
		client = gemini
	} else {
		root.Log.Info("AI categorization disabled, all transactions will be tagged OTHER")
	}

	cat := categorizer.New(client,
		categorizer.WithBatchSize(cfg.AI.BatchSize),
		categorizer.WithTimeout(time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
		categorizer.WithLogger(log),
	)

	out, err := os.Create(outputFile)
	if err != nil {
		root.Log.Fatalf("Error creating output file: %v", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			root.Log.Warnf("Failed to close output file: %v", err)
		}
	}()

	pipeline := ingest.New(cat, ingest.Options{
		Sink:   sink.NewCSVSink(out, rune(cfg.CSV.Delimiter[0])),
		Logger: log,
	})

	txs, err := pipeline.Ingest(cmd.Context(), data, contentType, bank, currency)
	if err != nil {
		root.Log.Fatalf("Ingestion failed: %v", err)
	}
	root.Log.Infof("Ingested %d transactions into %s", len(txs), outputFile)
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input statement file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (required)")
	Cmd.Flags().StringVarP(&contentType, "type", "t", tabular.ContentTypeCSV, "Declared content type of the input file")
	Cmd.Flags().StringVarP(&bankName, "bank", "b", "", "Bank identifier: ABN_AMRO or REVOLUT (required)")
	Cmd.Flags().StringVarP(&currency, "currency", "c", "", "Account currency the statement must match (required)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
	_ = Cmd.MarkFlagRequired("bank")
	_ = Cmd.MarkFlagRequired("currency")
}
