package main

import (
	"fmt"
	"os"

	"finflow/statement-ingest/cmd/categories"
	"finflow/statement-ingest/cmd/ingest"
	"finflow/statement-ingest/cmd/root"
)

func init() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
