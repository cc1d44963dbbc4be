// Package train handles bulk import of corrected statements into the learning store
package train

import (
	"fjacquet/stmt-categorizer/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the train command
var Cmd = &cobra.Command{
	Use:   "train",
	Short: "Train the learning engine from a corrected statement",
	Long: `Train the learning engine from a statement whose category column was
corrected by hand.

The file needs a header row with a narration column and a category column.
Every row whose category differs from what the rules produce is stored as a
learning example.

Example:
  stmt-categorizer train -i corrected.xlsx`,
	Run: trainFunc,
}

func trainFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	if root.SharedFlags.Input == "" {
		logger.Fatal("Input file must be specified")
		return
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	summary, err := appContainer.GetTrainer().TrainFile(cmd.Context(), root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error training from file: %v", err)
		return
	}

	root.Log.Infof("Training completed: %d rows processed, %d new examples, %d examples in total",
		summary.Processed, summary.NewExamples, summary.TotalExamples)
}
