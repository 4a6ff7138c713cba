package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var classifyOnce bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify the unclassified tweet backlog",
	Long: `Runs classification batches until every stored tweet has a sentiment
label. With --once only a single batch is processed.`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&classifyOnce, "once", false, "process a single batch and exit")
}

func runClassify(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	// Always start from the top of the backlog
	app.classifier.ResetPagination()

	var total, fallback int

	for {
		result, err := app.classifier.ClassifyBatch(cmd.Context(), cfg.Classifier.BatchSize)
		if err != nil {
			return err
		}

		total += result.SuccessCount
		fallback += result.FallbackCount

		if classifyOnce || !result.HasMore {
			break
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "classified %d tweets (%d via lexicon fallback)\n", total, fallback)

	return nil
}
