// Package history lists and exports the learning examples
package history

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"fjacquet/stmt-categorizer/cmd/root"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/store"

	"github.com/spf13/cobra"
)

var (
	exportFile string
	limit      int
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List the learning examples",
	Long: `List the learning examples, most recent first, followed by the model
accuracy and training maturity.

Example:
  stmt-categorizer history --limit 20
  stmt-categorizer history --export history.csv`,
	Run: historyFunc,
}

func init() {
	Cmd.Flags().StringVar(&exportFile, "export", "", "Export every example to this CSV file instead of listing")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many examples (0 shows all)")
}

// PrintHistory writes the newest examples of s as a table, then the
// store summary.
func PrintHistory(w io.Writer, s *store.LearningStore, limit int) error {
	examples := s.Snapshot()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tNARRATION\tAMOUNT\tPREDICTED\tCORRECT\tSOURCE")

	shown := 0
	for i := len(examples) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		printExample(tw, examples[i])
		shown++
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d examples, accuracy %d%%, %s\n", s.Len(), s.Accuracy(), s.Maturity())
	return err
}

func printExample(w io.Writer, ex models.LearningExample) {
	ts := ""
	if !ex.Timestamp.IsZero() {
		ts = ex.Timestamp.Format(time.DateTime)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		ts, ex.Narration, ex.Amount.String(), ex.OriginalCategory, ex.CorrectCategory, ex.Source)
}

// ExportHistory writes every example of s to path as CSV.
func ExportHistory(path string, s *store.LearningStore) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return s.ExportCSV(f)
}

func historyFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}
	s := appContainer.GetLearningStore()

	if exportFile != "" {
		if err := ExportHistory(exportFile, s); err != nil {
			logger.Fatalf("Error exporting history: %v", err)
			return
		}
		root.Log.Infof("Exported %d learning examples to %s", s.Len(), exportFile)
		return
	}

	if err := PrintHistory(cmd.OutOrStdout(), s, limit); err != nil {
		logger.Fatalf("Error printing history: %v", err)
	}
}
