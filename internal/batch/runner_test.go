package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-categorizer/internal/assembler"
	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/parsererror"
	"fjacquet/stmt-categorizer/internal/processor"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodStatement = `Date,Narration,Withdrawal Amt.,Deposit Amt.
01/04/24,UPI-SWIGGY-ORDER,450,
03/04/24,NEFT CR-PHONEPE LENDING SERVICES,,120000
`

const duplicatedStatement = `Date,Narration,Withdrawal Amt.,Deposit Amt.
05/04/24,UPI-ZEPTO-ORDER,120,
05/04/24,upi-zepto-order,120,
06/04/24,UPI-ZEPTO-ORDER,120,
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestRunner_FindStatements(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.csv":       goodStatement,
		"a.xlsx":      "",
		"c.XLS":       "",
		"notes.txt":   "ignored",
		".hidden.csv": goodStatement,
		"~$a.xlsx":    "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0750))

	r := NewRunner(nil, false, logging.NewMockLogger())
	files, err := r.FindStatements(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "c.XLS"),
	}, files)

	_, err = r.FindStatements(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunner_GenerateOutputFilename(t *testing.T) {
	r := NewRunner(nil, false, logging.NewMockLogger())
	tests := []struct {
		input string
		want  string
	}{
		{"/in/april.csv", "april_categorized.csv"},
		{"/in/april.xlsx", "april_categorized.xlsx"},
		{"/in/april.XLSX", "april_categorized.xlsx"},
		{"/in/april.xls", "april_categorized.csv"},
		{"may.2024.csv", "may.2024_categorized.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, r.GenerateOutputFilename(tt.input))
		})
	}
}

func TestRunner_Run(t *testing.T) {
	input := writeFiles(t, map[string]string{
		"april.csv":  goodStatement,
		"broken.csv": "just,some,text\n",
	})
	output := filepath.Join(t.TempDir(), "out")
	logger := logging.NewMockLogger()

	r := NewRunner(processor.NewProcessor(logger), false, logger)
	summary, err := r.Run(context.Background(), input, output, categorizer.NewRuleCategorizer(logger))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 2)

	good := summary.Results[0]
	require.NoError(t, good.Err)
	assert.Equal(t, filepath.Join(output, "april_categorized.csv"), good.OutputFile)
	data, err := os.ReadFile(good.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Transaction Category")
	assert.Contains(t, string(data), "Food")
	assert.Contains(t, string(data), "Salary")

	bad := summary.Results[1]
	var noHeader *parsererror.NoHeaderError
	assert.True(t, errors.As(bad.Err, &noHeader))
	assert.Empty(t, bad.OutputFile)
	assert.True(t, logger.HasEntry("ERROR", "Failed to process statement"))
	assert.True(t, logger.HasEntry("INFO", "Batch categorization completed"))
}

func TestRunner_Run_QuoteAll(t *testing.T) {
	input := writeFiles(t, map[string]string{"april.csv": goodStatement})
	output := t.TempDir()
	logger := logging.NewMockLogger()

	r := NewRunner(processor.NewProcessor(logger), true, logger)
	summary, err := r.Run(context.Background(), input, output, categorizer.NewRuleCategorizer(logger))
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded)

	data, err := os.ReadFile(summary.Results[0].OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Date","Narration"`)
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	input := writeFiles(t, map[string]string{"april.csv": goodStatement})
	logger := logging.NewMockLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(processor.NewProcessor(logger), false, logger)
	summary, err := r.Run(ctx, input, t.TempDir(), categorizer.NewRuleCategorizer(logger))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Results)
}

type failingProcessor struct{ err error }

func (f failingProcessor) ProcessStatement(context.Context, string, assembler.Categorizer) (*processor.Run, error) {
	return nil, f.err
}

func TestRunner_Run_ProcessorFailureIsIsolated(t *testing.T) {
	input := writeFiles(t, map[string]string{"a.csv": goodStatement, "b.csv": goodStatement})
	logger := logging.NewMockLogger()

	r := NewRunner(failingProcessor{err: errors.New("boom")}, false, logger)
	summary, err := r.Run(context.Background(), input, t.TempDir(), categorizer.NewRuleCategorizer(logger))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
}

func TestRunner_DetectsDuplicates(t *testing.T) {
	input := writeFiles(t, map[string]string{"dup.csv": duplicatedStatement})
	logger := logging.NewMockLogger()

	r := NewRunner(processor.NewProcessor(logger), false, logger)
	summary, err := r.Run(context.Background(), input, t.TempDir(), categorizer.NewRuleCategorizer(logger))
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, 1, summary.Results[0].Duplicates)
	assert.True(t, logger.HasEntry("WARN", "Potential duplicate transaction"))
}

func TestArePotentialDuplicates(t *testing.T) {
	base := models.TransactionDetail{
		Date:      "05/04/24",
		Narration: "UPI-ZEPTO",
		Amount:    decimal.NewFromInt(120),
		Type:      models.DetailTypeWithdrawal,
	}
	other := base
	assert.True(t, arePotentialDuplicates(base, other))

	other.Type = models.DetailTypeDeposit
	assert.False(t, arePotentialDuplicates(base, other))

	other = base
	other.Amount = decimal.NewFromInt(121)
	assert.False(t, arePotentialDuplicates(base, other))

	noDate := base
	noDate.Date = ""
	assert.False(t, arePotentialDuplicates(noDate, noDate))
}
