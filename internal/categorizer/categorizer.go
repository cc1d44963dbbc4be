// Package categorizer assigns categories to normalized transactions:
// 1. A first-match rule cascade over the narration and amount
// 2. Refund pairing of debits with the credits that reverse them
// 3. A learning engine that consults corrected examples before falling
// back to a weighted vote over the same rules
package categorizer

import (
	"context"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Engine names.
const (
	EngineRules    = "rules"
	EngineLearning = "learning"
)

// Categorizer runs a chain of strategies; the first one that finds a
// category decides.
type Categorizer struct {
	engine     string
	label      string
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer creates a categorizer over an explicit strategy chain.
func NewCategorizer(engine, label string, logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{
		engine:     engine,
		label:      label,
		strategies: strategies,
		logger:     logger,
	}
}

// NewRuleCategorizer returns the deterministic engine.
func NewRuleCategorizer(logger logging.Logger) *Categorizer {
	return NewCategorizer(EngineRules, models.HeaderTransactionCategory, logger, RuleStrategy{})
}

// NewLearningCategorizer returns the learning engine over the examples
// source holds at construction time.
func NewLearningCategorizer(source ExampleSource, logger logging.Logger) *Categorizer {
	var examples []models.LearningExample
	if source != nil {
		examples = source.Snapshot()
	}
	learned := NewLearnedStrategy(examples)
	c := NewCategorizer(EngineLearning, models.HeaderAICategory, logger, learned, WeightedStrategy{})
	c.logger.WithField(logging.FieldCount, learned.Size()).Debug("Learning categorizer ready")
	return c
}

// Engine returns the engine name.
func (c *Categorizer) Engine() string { return c.engine }

// HeaderLabel returns the header of the column this engine appends.
func (c *Categorizer) HeaderLabel() string { return c.label }

// Categorize returns the category for description and amount. When no
// strategy decides, the result is Other Expenses.
func (c *Categorizer) Categorize(ctx context.Context, description string, amount decimal.Decimal) (models.Category, error) {
	results, err := c.run(ctx, Input{Description: description, Amount: amount})
	if err != nil {
		return models.CategoryNone, err
	}
	if category, ok := results.GetBestResult(); ok {
		return category, nil
	}
	return models.CategoryOtherExpenses, nil
}

// Explain runs every strategy of the chain and reports each outcome.
func (c *Categorizer) Explain(ctx context.Context, description string, amount decimal.Decimal) StrategyResults {
	in := Input{Description: description, Amount: amount}
	var results StrategyResults
	for _, s := range c.strategies {
		category, found, err := s.Categorize(ctx, in)
		results.Results = append(results.Results, StrategyResult{
			Strategy: s.Name(), Category: category, Found: found, Error: err,
		})
	}
	return results
}

func (c *Categorizer) run(ctx context.Context, in Input) (StrategyResults, error) {
	var results StrategyResults
	for _, s := range c.strategies {
		category, found, err := s.Categorize(ctx, in)
		results.Results = append(results.Results, StrategyResult{
			Strategy: s.Name(), Category: category, Found: found, Error: err,
		})
		if err != nil {
			return results, err
		}
		if found {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldNarration, Value: in.Description},
				logging.Field{Key: logging.FieldCategory, Value: string(category)},
				logging.Field{Key: "strategy", Value: s.Name()},
			).Debug("Transaction categorized")
			break
		}
	}
	return results, nil
}
