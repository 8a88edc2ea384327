package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Nitingarg01/Major-project-sub001/internal/catalog"
	"github.com/Nitingarg01/Major-project-sub001/internal/questions"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "interviewctl",
	Short:         "Inspect catalogs and replay interview sessions offline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newBuilder wires the round catalog to the embedded question bank.
func newBuilder() (*catalog.Builder, *questions.BankProvider, error) {
	bank, err := questions.NewBankProvider()
	if err != nil {
		return nil, nil, fmt.Errorf("load question bank: %w", err)
	}
	builder, err := catalog.NewBuilder(bank)
	if err != nil {
		return nil, nil, fmt.Errorf("load round table: %w", err)
	}
	return builder, bank, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
