// Package categorize handles the statement categorization command
package categorize

import (
	"fjacquet/stmt-categorizer/cmd/common"
	"fjacquet/stmt-categorizer/cmd/root"

	"github.com/spf13/cobra"
)

var (
	engine    string
	statsFile string
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize transactions of a bank statement",
	Long: `Categorize every transaction of a bank statement spreadsheet.

The statement table is located automatically, a category column is appended
and the result is written as CSV (or xlsx when the output ends in .xlsx).

Example:
  stmt-categorizer categorize -i april.xlsx -o april.csv --engine learning --stats stats.json`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&engine, "engine", "e", "", "Categorization engine: rules or learning (default from config)")
	Cmd.Flags().StringVar(&statsFile, "stats", "", "Write the statistics report to this file (.json or .yaml)")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

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

	run, err := common.NewPipeline(appContainer).ProcessStatement(cmd.Context(), c,
		root.SharedFlags.Input, root.SharedFlags.Output, statsFile)
	if err != nil {
		logger.Fatalf("Error categorizing statement: %v", err)
		return
	}

	root.Log.Infof("Categorized %d transactions with the %s engine", run.Result.Stats.TotalTransactions, c.Engine())
}
