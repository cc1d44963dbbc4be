package assembler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/normalizer"
	"fjacquet/stmt-categorizer/internal/schema"
	"fjacquet/stmt-categorizer/internal/sheetreader"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementGrid() models.CellGrid {
	return models.GridFromStrings([][]string{
		{"HDFC BANK Ltd. Statement of account"},
		{"Date", "Narration", "Chq./Ref.No.", "Value Dt", "Withdrawal Amt.", "Deposit Amt.", "Closing Balance"},
		{"01/04/24", "UPI-HDFC BANK LTD HOUSIN-123", "0001", "01/04/24", "50,000.00", "", "100000"},
		{"02/04/24", "ACH D- HDFC BANK LTD", "0002", "02/04/24", "86000", "", "14000"},
		{"03/04/24", "ACH D- HDFC BANK LTD", "0003", "03/04/24", "5000", "", "9000"},
		{"04/04/24", "ACH C-360 ONE INT DIV", "0004", "04/04/24", "", "1234.50", "10234.50"},
		{"05/04/24", "NEFT CR-PHONEPE LENDING SERVICES-APR", "0005", "05/04/24", "", "120000", "130234.50"},
		{"06/04/24", "UPI-BLINKIT-ORDER", "0006", "06/04/24", "499.00", "", "129735.50"},
		{"07/04/24", "UPI-BLINKIT REFUND-ORDER", "0007", "07/04/24", "", "499.00", "130234.50"},
		{"08/04/24", "IMPS-123-ANSHULAGARWAL-UTIB-99", "0008", "08/04/24", "", "25000", "155234.50"},
		{"09/04/24", "UPI-ZERODHA BROKING-1", "0009", "09/04/24", "10000", "", "145234.50"},
		{"10/04/24", "UPI-ZERODHA COIN-1", "0010", "10/04/24", "10000", "", "135234.50"},
		{"11/04/24", "UPI-FRIEND-PAYBACK", "0011", "11/04/24", "", "500", "135734.50"},
		{"", "", "", "", "", "", ""},
	})
}

func process(t *testing.T, c Categorizer, grid models.CellGrid) *Result {
	t.Helper()
	logger := logging.NewMockLogger()
	s, err := schema.NewInferer(logger).Infer(grid)
	require.NoError(t, err)
	txs := normalizer.NewNormalizer(logger).Normalize(grid, s)
	categorizer.NewRefundPairer(logger).Pair(txs)
	res, err := NewAssembler(logger).Assemble(context.Background(), c, grid, s, txs)
	require.NoError(t, err)
	return res
}

func TestAssemble_EndToEnd(t *testing.T) {
	grid := statementGrid()
	res := process(t, categorizer.NewRuleCategorizer(logging.NewMockLogger()), grid)

	expected := map[int]string{
		0:  "",
		1:  models.HeaderTransactionCategory,
		2:  "Loan EMI",
		3:  "Loan EMI",
		4:  "Other Expenses",
		5:  "Stock Dividend Income",
		6:  "Salary",
		7:  "Food Refund",
		8:  "Food Refund",
		9:  "Self Transfer From Axis",
		10: "Stock Market Transfer",
		11: "Mutual Fund SIP",
		12: "",
		13: "",
	}

	require.Len(t, res.Grid, len(grid))
	for i, row := range res.Grid {
		require.Len(t, row, 8, "row %d", i)
		assert.Equal(t, expected[i], row[7].AsText(), "row %d", i)
		for j, cell := range grid[i] {
			assert.Equal(t, cell, row[j], "row %d col %d", i, j)
		}
	}

	stats := res.Stats
	assert.Equal(t, 11, stats.TotalTransactions)
	assert.Equal(t, 6, stats.WithdrawalTransactions)
	assert.Equal(t, 4, stats.DepositTransactions)
	assert.Equal(t, map[models.Category]int{
		models.CategoryLoanEMI:              2,
		models.CategoryOtherExpenses:        1,
		models.CategoryStockDividendIncome:  1,
		models.CategorySalary:               1,
		models.CategoryFoodRefund:           2,
		models.CategorySelfTransferFromAxis: 1,
		models.CategoryStockMarketTransfer:  1,
		models.CategoryMutualFundSIP:        1,
	}, stats.CategoryStats)
	assert.Equal(t, "Transaction Category", stats.Headers[len(stats.Headers)-1])
	assert.Len(t, stats.Details, 10)
	assert.Equal(t, models.DetailTypeDeposit, stats.Details[3].Type)
	assert.True(t, stats.Details[3].Amount.Equal(decimal.RequireFromString("1234.5")))
}

func TestAssemble_RefundPairCountsBothSides(t *testing.T) {
	grid := models.GridFromStrings([][]string{
		{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt."},
		{"06/04/24", "UPI-BLINKIT-ORDER", "499.00", ""},
		{"07/04/24", "UPI-BLINKIT REFUND-ORDER", "", "499.00"},
	})
	res := process(t, categorizer.NewRuleCategorizer(logging.NewMockLogger()), grid)

	assert.Equal(t, "Food Refund", res.Grid[1][4].AsText())
	assert.Equal(t, "Food Refund", res.Grid[2][4].AsText())
	assert.Equal(t, 1, res.Stats.WithdrawalTransactions)
	assert.Equal(t, 1, res.Stats.DepositTransactions)
	assert.Equal(t, 2, res.Stats.CategoryStats[models.CategoryFoodRefund])
}

func TestAssemble_Idempotent(t *testing.T) {
	engine := categorizer.NewRuleCategorizer(logging.NewMockLogger())
	first := process(t, engine, statementGrid())
	second := process(t, engine, first.Grid)

	for i := range first.Grid {
		if i == 1 {
			continue
		}
		assert.Equal(t, first.Grid[i][7].AsText(), second.Grid[i][8].AsText(), "row %d", i)
	}
}

func TestAssemble_LearningLabel(t *testing.T) {
	res := process(t, categorizer.NewLearningCategorizer(nil, logging.NewMockLogger()), statementGrid())
	assert.Equal(t, models.HeaderAICategory, res.Grid[1][7].AsText())
	assert.Equal(t, categorizer.EngineLearning, res.Engine)
}

type failingCategorizer struct{}

func (failingCategorizer) Categorize(context.Context, string, decimal.Decimal) (models.Category, error) {
	return models.CategoryNone, errors.New("boom")
}
func (failingCategorizer) HeaderLabel() string { return "X" }
func (failingCategorizer) Engine() string      { return "failing" }

func TestAssemble_CategorizerError(t *testing.T) {
	grid := statementGrid()
	logger := logging.NewMockLogger()
	s, err := schema.NewInferer(logger).Infer(grid)
	require.NoError(t, err)
	txs := normalizer.NewNormalizer(logger).Normalize(grid, s)

	res, err := NewAssembler(logger).Assemble(context.Background(), failingCategorizer{}, grid, s, txs)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestEmit(t *testing.T) {
	engine := categorizer.NewRuleCategorizer(logging.NewMockLogger())
	date := models.TextCell("01/04/24")
	ctx := context.Background()

	override := models.NewTransaction(1, date, "UPI-SWIGGY", decimal.NewFromInt(10), decimal.Zero)
	override.OverrideCategory = models.CategoryFoodRefund
	c, err := Emit(ctx, engine, override)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFoodRefund, c)

	hidden := models.NewTransaction(2, date, "UPI-SWIGGY", decimal.Zero, decimal.NewFromInt(10))
	c, err = Emit(ctx, engine, hidden)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryNone, c)

	shown := models.NewTransaction(3, date, "AMAZON REFUND", decimal.Zero, decimal.NewFromInt(10))
	c, err = Emit(ctx, engine, shown)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryShopping, c)
}

func TestWriteCSV(t *testing.T) {
	grid := models.CellGrid{
		{models.TextCell("a"), models.TextCell(`b"c`)},
		{models.NumberCell(86000), models.EmptyCell(), models.TextCell("x,y")},
	}

	var quoted bytes.Buffer
	require.NoError(t, WriteCSV(&quoted, grid, true))
	assert.Equal(t, "\"a\",\"b\"\"c\"\n\"86000\",\"\",\"x,y\"", quoted.String())

	var plain bytes.Buffer
	require.NoError(t, WriteCSV(&plain, grid, false))
	assert.Equal(t, "a,\"b\"\"c\"\n86000,,\"x,y\"\n", plain.String())
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	grid := models.CellGrid{
		{models.TextCell("Date"), models.TextCell("Amount")},
		{models.TextCell("01/04/24"), models.NumberCell(1234.5)},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, grid))

	back, err := sheetreader.NewXLSXReader(logging.NewMockLogger()).Read(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "Date", back[0][0].AsText())
	assert.Equal(t, models.CellNumber, back[1][1].Kind)
	assert.Equal(t, 1234.5, back[1][1].Number)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	grid := models.GridFromStrings([][]string{{"a", "b"}})

	require.NoError(t, WriteFile(dir+"/out/result.csv", grid, true))
	assert.FileExists(t, dir+"/out/result.csv")

	require.NoError(t, WriteFile(dir+"/result.xlsx", grid, true))
	back, err := sheetreader.ReadFile(context.Background(), dir+"/result.xlsx", logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, "b", back[0][1].AsText())
}
