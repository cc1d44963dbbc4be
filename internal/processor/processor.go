// Package processor runs a statement through the categorization pipeline:
// decode, infer the schema, normalize, pair refunds, categorize, assemble.
package processor

import (
	"context"
	"fmt"
	"time"

	"fjacquet/stmt-categorizer/internal/assembler"
	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/normalizer"
	"fjacquet/stmt-categorizer/internal/parsererror"
	"fjacquet/stmt-categorizer/internal/schema"
	"fjacquet/stmt-categorizer/internal/sheetreader"

	"github.com/google/uuid"
)

// Run is the outcome of one ProcessStatement call.
type Run struct {
	ID        string
	InputFile string
	Result    *assembler.Result
	Pairs     int
	Duration  time.Duration
}

// Processor wires the pipeline stages together.
type Processor struct {
	inferer    *schema.Inferer
	normalizer *normalizer.Normalizer
	pairer     *categorizer.RefundPairer
	assembler  *assembler.Assembler
	logger     logging.Logger
}

// NewProcessor creates a processor whose stages log through logger.
func NewProcessor(logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		inferer:    schema.NewInferer(logger),
		normalizer: normalizer.NewNormalizer(logger),
		pairer:     categorizer.NewRefundPairer(logger),
		assembler:  assembler.NewAssembler(logger),
		logger:     logger,
	}
}

// ProcessStatement reads the statement at path and categorizes it with
// engine. Errors carry the path; no partial result is returned.
func (p *Processor) ProcessStatement(ctx context.Context, path string, engine assembler.Categorizer) (*Run, error) {
	runID := uuid.New().String()
	log := p.logger.WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldEngine, engine.Engine()),
	)
	log.Info("Processing statement")

	grid, err := sheetreader.ReadFile(ctx, path, p.logger)
	if err != nil {
		log.WithError(err).Error("Failed to read statement")
		return nil, err
	}
	run, err := p.process(ctx, runID, grid, engine, log)
	if err != nil {
		log.WithError(err).Error("Failed to categorize statement")
		return nil, parsererror.WithPath(err, path)
	}
	run.InputFile = path
	return run, nil
}

// ProcessGrid categorizes an already decoded statement.
func (p *Processor) ProcessGrid(ctx context.Context, grid models.CellGrid, engine assembler.Categorizer) (*Run, error) {
	runID := uuid.New().String()
	return p.process(ctx, runID, grid, engine, p.logger.WithField(logging.FieldRunID, runID))
}

func (p *Processor) process(ctx context.Context, runID string, grid models.CellGrid, engine assembler.Categorizer, log logging.Logger) (*Run, error) {
	start := time.Now()

	s, err := p.inferer.Infer(grid)
	if err != nil {
		return nil, err
	}
	txs := p.normalizer.Normalize(grid, s)
	pairs := p.pairer.Pair(txs)

	result, err := p.assembler.Assemble(ctx, engine, grid, s, txs)
	if err != nil {
		return nil, fmt.Errorf("error assembling statement: %w", err)
	}

	run := &Run{ID: runID, Result: result, Pairs: pairs, Duration: time.Since(start)}
	log.Info("Statement categorized",
		logging.F(logging.FieldCount, len(txs)),
		logging.F("refund_pairs", pairs),
		logging.F(logging.FieldDuration, run.Duration.String()))
	result.Stats.LogSummary(log, engine.Engine())
	return run, nil
}
