// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/stmt-categorizer/internal/assembler"
	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/container"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/processor"
	"fjacquet/stmt-categorizer/internal/report"
	"fjacquet/stmt-categorizer/internal/store"
)

// StatementProcessor categorizes one statement file.
type StatementProcessor interface {
	ProcessStatement(ctx context.Context, path string, engine assembler.Categorizer) (*processor.Run, error)
}

// Pipeline bundles what a command needs to categorize a statement and
// write its results.
type Pipeline struct {
	Processor    StatementProcessor
	Reports      *report.ReportGenerator
	Learning     *store.LearningStore
	ReportFormat string
	QuoteAll     bool
	Logger       logging.Logger
}

// NewPipeline wires a Pipeline from the application container.
func NewPipeline(c *container.Container) *Pipeline {
	cfg := c.GetConfig()
	return &Pipeline{
		Processor:    c.GetProcessor(),
		Reports:      c.GetReportGenerator(),
		Learning:     c.GetLearningStore(),
		ReportFormat: cfg.Report.Format,
		QuoteAll:     cfg.CSV.QuoteAll,
		Logger:       c.GetLogger(),
	}
}

// DefaultOutputFile names the categorized copy of inputFile next to it.
func DefaultOutputFile(inputFile string) string {
	ext := filepath.Ext(inputFile)
	stem := strings.TrimSuffix(inputFile, ext)
	if strings.EqualFold(ext, ".xlsx") {
		return stem + "_categorized.xlsx"
	}
	return stem + "_categorized.csv"
}

// ProcessStatement categorizes inputFile with engine and writes the
// categorized grid to outputFile, or next to the input when outputFile is
// empty. A statistics report is written when statsFile is set.
func (p *Pipeline) ProcessStatement(ctx context.Context, engine assembler.Categorizer, inputFile, outputFile, statsFile string) (*processor.Run, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("input file must be specified")
	}
	if outputFile == "" {
		outputFile = DefaultOutputFile(inputFile)
	}

	run, err := p.Processor.ProcessStatement(ctx, inputFile, engine)
	if err != nil {
		return nil, err
	}

	if err := assembler.WriteFile(outputFile, run.Result.Grid, p.QuoteAll); err != nil {
		return nil, err
	}
	p.Logger.Info("Categorized statement written",
		logging.F(logging.FieldInputFile, inputFile),
		logging.F(logging.FieldOutputFile, outputFile))

	if statsFile != "" {
		rep := BuildReport(run, engine.Engine(), p.Learning)
		if err := p.Reports.WriteReport(rep, statsFile, report.FormatFromPath(statsFile, p.ReportFormat)); err != nil {
			return nil, err
		}
	}
	return run, nil
}

// BuildReport turns a run into a statistics report. The learning summary is
// attached for the learning engine only.
func BuildReport(run *processor.Run, engine string, learning *store.LearningStore) *report.StatsReport {
	rep := &report.StatsReport{
		RunID:       run.ID,
		Engine:      engine,
		InputFile:   run.InputFile,
		GeneratedAt: time.Now(),
		Statistics:  run.Result.Stats,
	}
	if engine == categorizer.EngineLearning && learning != nil {
		rep.Learning = &report.LearningSummary{
			Examples: learning.Len(),
			Accuracy: learning.Accuracy(),
			Maturity: learning.Maturity(),
		}
	}
	return rep
}
