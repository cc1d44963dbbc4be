// Package explain shows how an engine decides the category of one transaction
package explain

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/stmt-categorizer/cmd/root"
	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	narration string
	amount    string
	engine    string
)

// Cmd represents the explain command
var Cmd = &cobra.Command{
	Use:   "explain",
	Short: "Show how a transaction gets its category",
	Long: `Run every strategy of an engine on one transaction and print the
outcome of each, the errors met and the category the engine settles on.

Example:
  stmt-categorizer explain --narration "UPI-SWIGGY" --amount 450 --engine learning`,
	Run: explainFunc,
}

func init() {
	Cmd.Flags().StringVarP(&narration, "narration", "n", "", "Transaction narration (required)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount (required)")
	Cmd.Flags().StringVarP(&engine, "engine", "e", "", "Categorization engine: rules or learning (default from config)")
	_ = Cmd.MarkFlagRequired("narration")
	_ = Cmd.MarkFlagRequired("amount")
}

// Explain writes the strategy trace of c for one transaction to w.
func Explain(ctx context.Context, w io.Writer, c *categorizer.Categorizer, narration string, amount decimal.Decimal) error {
	results := c.Explain(ctx, narration, amount)

	if _, err := fmt.Fprintf(w, "engine: %s\nstrategies: %s\n", c.Engine(), results.Summary()); err != nil {
		return err
	}
	if c.Engine() == categorizer.EngineRules {
		if _, err := fmt.Fprintf(w, "rule: %s\n", categorizer.MatchRule(narration, amount)); err != nil {
			return err
		}
	}
	for _, e := range results.GetErrors() {
		if _, err := fmt.Fprintf(w, "error: %v\n", e); err != nil {
			return err
		}
	}

	category, ok := results.GetBestResult()
	if !ok {
		category = models.CategoryOtherExpenses
	}
	_, err := fmt.Fprintf(w, "category: %s\n", category)
	return err
}

func explainFunc(cmd *cobra.Command, args []string) {
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

	value := models.ParseAmount(amount).Abs()
	if err := Explain(cmd.Context(), os.Stdout, c, narration, value); err != nil {
		logger.Fatalf("Error writing explanation: %v", err)
	}
}
