// Package correct records a single categorization correction
package correct

import (
	"context"
	"fmt"

	"fjacquet/stmt-categorizer/cmd/root"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/trainer"

	"github.com/spf13/cobra"
)

var (
	narration string
	amount    string
	category  string
)

// Cmd represents the correct command
var Cmd = &cobra.Command{
	Use:   "correct",
	Short: "Record the right category for a transaction",
	Long: `Record the right category for a transaction so the learning engine
picks it up on the next run.

Example:
  stmt-categorizer correct --narration "UPI-ACME STORES" --amount 1499 --category Shopping`,
	Run: correctFunc,
}

func init() {
	Cmd.Flags().StringVarP(&narration, "narration", "n", "", "Transaction narration (required)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount (required)")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Correct category (required)")
	_ = Cmd.MarkFlagRequired("narration")
	_ = Cmd.MarkFlagRequired("amount")
	_ = Cmd.MarkFlagRequired("category")
}

// Record parses the raw amount the way statement cells are parsed and
// stores the correction. The sign of the amount is ignored.
func Record(ctx context.Context, t *trainer.Trainer, narration, rawAmount, category string) (models.LearningExample, error) {
	value := models.ParseAmount(rawAmount).Abs()
	if value.IsZero() {
		return models.LearningExample{}, fmt.Errorf("invalid amount %q", rawAmount)
	}
	return t.Correct(ctx, narration, value, models.Category(category))
}

func correctFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	ex, err := Record(cmd.Context(), appContainer.GetTrainer(), narration, amount, category)
	if err != nil {
		logger.Fatalf("Error recording correction: %v", err)
		return
	}

	root.Log.Infof("Recorded %q as %s (was %s)", ex.Narration, ex.CorrectCategory, ex.OriginalCategory)
}
