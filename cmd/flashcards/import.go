package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/flashcards/internal/service/practice"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Import flashcards from a question,answer CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			inputs, err := parseFlashcardsCSV(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			app, err := bootstrap(cmd, opts, os.Stderr, nil)
			if err != nil {
				return err
			}
			defer app.cleanup()

			result, err := app.practiceService.ImportFlashcards(cmd.Context(), inputs)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			return printImportResult(cmd.OutOrStdout(), result)
		},
	}
}

// parseFlashcardsCSV reads question,answer records. A first record reading
// "question,answer" is treated as a header. Fields are kept verbatim.
func parseFlashcardsCSV(r io.Reader) ([]practice.FlashcardInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var inputs []practice.FlashcardInput
	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return inputs, nil
		}
		if err != nil {
			return nil, err
		}

		if first && isHeader(record) {
			continue
		}
		inputs = append(inputs, practice.FlashcardInput{Question: record[0], Answer: record[1]})
	}
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), "question") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "answer")
}

func printImportResult(out io.Writer, result *practice.ImportResult) error {
	if _, err := fmt.Fprintf(out, "Imported %d flashcards, skipped %d\n",
		len(result.Created), len(result.Skipped)); err != nil {
		return err
	}
	for _, question := range result.Skipped {
		if _, err := fmt.Fprintf(out, "  skipped existing question %q\n", question); err != nil {
			return err
		}
	}
	return nil
}
