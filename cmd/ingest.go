package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dataset.csv>",
	Short: "Import a tweet dataset export",
	Long: `Reads a CSV export of club tweets, cleans and samples it, and stores
the rows for classification. Re-running with the same file is safe: rows that
were already imported are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	result, err := app.ingest.IngestCSV(cmd.Context(), file)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"read %d rows, rejected %d, sampled %d, inserted %d (%d duplicates)\n",
		result.RowsRead, result.RowsRejected, result.RowsSampled, result.Inserted, result.Duplicates)

	return nil
}
