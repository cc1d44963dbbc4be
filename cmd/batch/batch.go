// Package batch handles batch processing of statements
package batch

import (
	"fjacquet/stmt-categorizer/cmd/root"
	"fjacquet/stmt-categorizer/internal/batch"

	"github.com/spf13/cobra"
)

var engine string

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statements from a directory",
	Long: `Batch process statements from an input directory and write them to another directory.

Every xlsx, xls and csv file of the input directory is categorized
independently. A statement that cannot be read is reported and skipped.

Example:
  stmt-categorizer batch -i statements/ -o categorized/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&engine, "engine", "e", "", "Categorization engine: rules or learning (default from config)")
}

func batchFunc(cmd *cobra.Command, args []string) {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output

	logger := root.GetLogrusAdapter()
	if inputDir == "" || outputDir == "" {
		logger.Fatal("Input and output directories must be specified")
		return
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	c, err := appContainer.GetCategorizer(engine)
	if err != nil {
		logger.Fatalf("Error selecting engine: %v", err)
		return
	}

	runner := batch.NewRunner(appContainer.GetProcessor(), appContainer.GetConfig().CSV.QuoteAll, logger)
	summary, err := runner.Run(cmd.Context(), inputDir, outputDir, c)
	if err != nil {
		logger.Fatalf("Error during batch processing: %v", err)
		return
	}

	root.Log.Infof("Batch processing completed. %d statements categorized, %d failed.", summary.Succeeded, summary.Failed)
}
