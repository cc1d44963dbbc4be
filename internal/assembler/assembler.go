// Package assembler turns categorized transactions back into a statement:
// the original rows with one category column appended, plus statistics.
package assembler

import (
	"context"
	"fmt"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Categorizer is the engine consulted for rows without an override.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (models.Category, error)
	HeaderLabel() string
	Engine() string
}

// Result is a categorized statement.
type Result struct {
	Engine     string
	Grid       models.CellGrid
	Categories map[int]models.Category // emitted category by source row
	Stats      *models.Statistics
}

// Assembler builds Results.
type Assembler struct {
	logger logging.Logger
}

// NewAssembler creates an assembler. A nil logger falls back to the default
// adapter.
func NewAssembler(logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Assembler{logger: logger}
}

// Emit returns the category written for tx. An override always wins. A
// debit is categorized on its withdrawal. A credit is categorized on its
// deposit and only keeps the result when the category is whitelisted for
// deposits; otherwise it gets the empty category.
func Emit(ctx context.Context, c Categorizer, tx models.Transaction) (models.Category, error) {
	if tx.OverrideCategory != models.CategoryNone {
		return tx.OverrideCategory, nil
	}
	if tx.IsDebit() {
		return c.Categorize(ctx, tx.Description, tx.Withdrawal)
	}
	category, err := c.Categorize(ctx, tx.Description, tx.Deposit)
	if err != nil {
		return models.CategoryNone, err
	}
	if !category.IsDepositWhitelisted() {
		return models.CategoryNone, nil
	}
	return category, nil
}

// Assemble categorizes txs and re-emits every row of grid. Each row is
// padded to the grid width and gets one extra cell: the engine's label on
// the header row, the emitted category on transaction rows and an empty
// cell everywhere else.
func (a *Assembler) Assemble(ctx context.Context, c Categorizer, grid models.CellGrid, schema models.Schema, txs []models.Transaction) (*Result, error) {
	label := c.HeaderLabel()
	headers := append(append([]string(nil), schema.HeaderCells()...), label)

	res := &Result{
		Engine:     c.Engine(),
		Categories: make(map[int]models.Category, len(txs)),
		Stats:      models.NewStatistics(headers),
	}

	for _, tx := range txs {
		category, err := Emit(ctx, c, tx)
		if err != nil {
			return nil, fmt.Errorf("error categorizing row %d: %w", tx.SourceRow, err)
		}
		res.Categories[tx.SourceRow] = category

		// Refund-matched rows count on their side like any other row.
		if tx.IsDebit() {
			res.Stats.WithdrawalTransactions++
		} else if category != models.CategoryNone {
			res.Stats.DepositTransactions++
		}
		if category != models.CategoryNone {
			res.Stats.Record(category)
			res.Stats.Details = append(res.Stats.Details, tx.Detail(category))
		}
	}

	header := schema.HeaderRowIndex()
	width := grid.Width()
	res.Grid = make(models.CellGrid, len(grid))
	for i, row := range grid {
		out := make(models.Row, width+1)
		copy(out, row)
		switch category, ok := res.Categories[i]; {
		case i == header:
			out[width] = models.TextCell(label)
		case ok && category != models.CategoryNone:
			out[width] = models.TextCell(string(category))
		}
		if i > header && row.NonEmptyCount() > 0 {
			res.Stats.TotalTransactions++
		}
		res.Grid[i] = out
	}

	a.logger.WithFields(
		logging.F(logging.FieldEngine, res.Engine),
		logging.F(logging.FieldCount, len(txs)),
	).Debug("Statement assembled")
	return res, nil
}
