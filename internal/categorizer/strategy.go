package categorizer

import (
	"context"

	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Input is what a strategy sees of a transaction: the narration and the
// magnitude of the side being categorized.
type Input struct {
	Description string
	Amount      decimal.Decimal
}

// CategorizationStrategy defines one way of categorizing a transaction.
type CategorizationStrategy interface {
	// Categorize returns the category and whether the strategy reached a
	// decision. A strategy that does not find a category defers to the next
	// one in the chain.
	Categorize(ctx context.Context, in Input) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// RuleStrategy evaluates the rule cascade. It always finds a category.
type RuleStrategy struct{}

// Name implements CategorizationStrategy.
func (RuleStrategy) Name() string { return "rules" }

// Categorize implements CategorizationStrategy.
func (RuleStrategy) Categorize(ctx context.Context, in Input) (models.Category, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.CategoryNone, false, err
	}
	return CategorizeByRules(in.Description, in.Amount), true, nil
}
