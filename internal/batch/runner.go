// Package batch categorizes every statement found in a directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/stmt-categorizer/internal/assembler"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/processor"
	"fjacquet/stmt-categorizer/internal/sheetreader"
)

// OutputSuffix is appended to the base name of every categorized statement.
const OutputSuffix = "_categorized"

// StatementProcessor categorizes one statement file.
type StatementProcessor interface {
	ProcessStatement(ctx context.Context, path string, engine assembler.Categorizer) (*processor.Run, error)
}

// FileResult is the outcome for one statement of a batch.
type FileResult struct {
	InputFile  string
	OutputFile string
	Run        *processor.Run
	Duplicates int
	Err        error
}

// Summary aggregates the results of a batch.
type Summary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
}

// Runner processes statement files one by one. A failing statement is
// logged and skipped; the others are still written.
type Runner struct {
	processor StatementProcessor
	quoteAll  bool
	logger    logging.Logger
}

// NewRunner creates a Runner. quoteAll selects the fully quoted CSV export.
func NewRunner(p StatementProcessor, quoteAll bool, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{processor: p, quoteAll: quoteAll, logger: logger}
}

// FindStatements lists the readable statements directly inside dir, sorted
// by name. Hidden files and spreadsheet lock files are skipped.
func (r *Runner) FindStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if _, err := sheetreader.FormatFromPath(name); err != nil {
			r.logger.Debug("Skipping unsupported file", logging.F(logging.FieldFile, name))
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// GenerateOutputFilename names the categorized copy of input. Workbooks stay
// workbooks; everything else is written as CSV.
func (r *Runner) GenerateOutputFilename(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if strings.EqualFold(ext, ".xlsx") {
		return stem + OutputSuffix + ".xlsx"
	}
	return stem + OutputSuffix + ".csv"
}

// Run categorizes every statement of inputDir with engine and writes the
// results into outputDir, which is created if needed.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string, engine assembler.Categorizer) (*Summary, error) {
	files, err := r.FindStatements(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	r.logger.Info("Starting batch categorization",
		logging.F(logging.FieldInputFile, inputDir),
		logging.F(logging.FieldOutputFile, outputDir),
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldEngine, engine.Engine()))

	summary := &Summary{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res := r.processFile(ctx, file, outputDir, engine)
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}

	r.logger.Info("Batch categorization completed",
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed))
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, file, outputDir string, engine assembler.Categorizer) FileResult {
	res := FileResult{InputFile: file}

	run, err := r.processor.ProcessStatement(ctx, file, engine)
	if err != nil {
		r.logger.WithError(err).Error("Failed to process statement",
			logging.F(logging.FieldFile, filepath.Base(file)))
		res.Err = err
		return res
	}
	res.Run = run
	res.Duplicates = r.detectAndLogDuplicates(run.Result.Stats.Details, file)

	res.OutputFile = filepath.Join(outputDir, r.GenerateOutputFilename(file))
	if err := assembler.WriteFile(res.OutputFile, run.Result.Grid, r.quoteAll); err != nil {
		r.logger.WithError(err).Error("Failed to write categorized statement",
			logging.F(logging.FieldOutputFile, res.OutputFile))
		res.Err = err
		return res
	}

	r.logger.Debug("Statement written",
		logging.F(logging.FieldFile, filepath.Base(file)),
		logging.F(logging.FieldOutputFile, res.OutputFile))
	return res
}

// detectAndLogDuplicates warns about rows that look like the same
// transaction listed twice. Duplicates are kept in the output.
func (r *Runner) detectAndLogDuplicates(details []models.TransactionDetail, file string) int {
	duplicateCount := 0

	for i := 0; i < len(details)-1; i++ {
		for j := i + 1; j < len(details); j++ {
			if arePotentialDuplicates(details[i], details[j]) {
				duplicateCount++
				r.logger.Warn("Potential duplicate transaction",
					logging.F(logging.FieldFile, filepath.Base(file)),
					logging.F("date", details[i].Date),
					logging.F(logging.FieldAmount, details[i].Amount.String()),
					logging.F(logging.FieldNarration, details[i].Narration))
				break
			}
		}
	}

	if duplicateCount > 0 {
		r.logger.Warn("Found potential duplicate transactions",
			logging.F(logging.FieldCount, duplicateCount),
			logging.F(logging.FieldFile, filepath.Base(file)))
	}
	return duplicateCount
}

func arePotentialDuplicates(a, b models.TransactionDetail) bool {
	if a.Date == "" || a.Date != b.Date || a.Type != b.Type {
		return false
	}
	if !a.Amount.Equal(b.Amount) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a.Narration), strings.TrimSpace(b.Narration))
}
