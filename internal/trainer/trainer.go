// Package trainer feeds the learning store: from previously categorized
// statements in bulk, or one correction at a time.
package trainer

import (
	"context"
	"strings"
	"time"

	"fjacquet/stmt-categorizer/internal/assembler"
	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/normalizer"
	"fjacquet/stmt-categorizer/internal/parsererror"
	"fjacquet/stmt-categorizer/internal/schema"
	"fjacquet/stmt-categorizer/internal/sheetreader"
	"fjacquet/stmt-categorizer/internal/store"

	"github.com/shopspring/decimal"
)

// Trainer appends learning examples to a store.
type Trainer struct {
	store      *store.LearningStore
	inferer    *schema.Inferer
	normalizer *normalizer.Normalizer
	pairer     *categorizer.RefundPairer
	rules      *categorizer.Categorizer
	logger     logging.Logger
	now        func() time.Time
}

// NewTrainer creates a trainer writing to s.
func NewTrainer(s *store.LearningStore, logger logging.Logger) *Trainer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Trainer{
		store:      s,
		inferer:    schema.NewInferer(logger),
		normalizer: normalizer.NewNormalizer(logger),
		pairer:     categorizer.NewRefundPairer(logger),
		rules:      categorizer.NewRuleCategorizer(logger),
		logger:     logger,
		now:        time.Now,
	}
}

// TrainFile reads a categorized statement and trains on it.
func (t *Trainer) TrainFile(ctx context.Context, path string) (models.TrainingSummary, error) {
	grid, err := sheetreader.ReadFile(ctx, path, t.logger)
	if err != nil {
		return models.TrainingSummary{}, err
	}
	summary, err := t.Train(ctx, grid)
	if err != nil {
		return models.TrainingSummary{}, parsererror.WithPath(err, path)
	}
	t.logger.Info("Training file imported",
		logging.F(logging.FieldFile, path),
		logging.F("processed", summary.Processed),
		logging.F("new_examples", summary.NewExamples),
		logging.F("total_examples", summary.TotalExamples))
	return summary, nil
}

// Train compares the category column of grid with what the deterministic
// engine emits for each row and stores an example for every disagreement.
// Rows whose cell is not a known category are ignored and left out of
// Processed. The store is held exclusively for the whole import.
func (t *Trainer) Train(ctx context.Context, grid models.CellGrid) (models.TrainingSummary, error) {
	s, err := t.inferer.InferTraining(grid)
	if err != nil {
		return models.TrainingSummary{}, err
	}
	categoryIdx, _ := s.Column(models.RoleCategory)

	txs := t.normalizer.Normalize(grid, s)
	t.pairer.Pair(txs)

	processed := 0
	added, err := t.store.Ingest(func([]models.LearningExample) ([]models.LearningExample, error) {
		var examples []models.LearningExample
		for _, tx := range txs {
			labelled := models.Category(strings.TrimSpace(grid[tx.SourceRow].At(categoryIdx).AsText()))
			if !labelled.IsKnown() {
				continue
			}
			processed++
			predicted, err := assembler.Emit(ctx, t.rules, tx)
			if err != nil {
				return nil, err
			}
			if predicted == labelled {
				continue
			}
			examples = append(examples, t.example(tx.Description, tx.Magnitude(), predicted, labelled, models.SourceBulkImport))
			t.logger.Debug("Learned from training row",
				logging.F(logging.FieldRow, tx.SourceRow),
				logging.F(logging.FieldNarration, tx.Description),
				logging.F(logging.FieldCategory, string(labelled)))
		}
		return examples, nil
	})
	if err != nil {
		return models.TrainingSummary{}, err
	}

	return models.TrainingSummary{
		Processed:     processed,
		NewExamples:   added,
		TotalExamples: t.store.Len(),
	}, nil
}

// Correct records one user correction. The prediction stored with it is
// what the learning engine currently says for the narration and amount.
func (t *Trainer) Correct(ctx context.Context, narration string, amount decimal.Decimal, category models.Category) (models.LearningExample, error) {
	narration = strings.TrimSpace(narration)
	switch {
	case narration == "":
		return models.LearningExample{}, &parsererror.ValidationError{Reason: "narration is empty"}
	case !amount.IsPositive():
		return models.LearningExample{}, &parsererror.ValidationError{Reason: "amount must be positive"}
	case !category.IsKnown():
		return models.LearningExample{}, &parsererror.ValidationError{Reason: "unknown category " + string(category)}
	}

	predicted, err := categorizer.NewLearningCategorizer(t.store, t.logger).Categorize(ctx, narration, amount)
	if err != nil {
		return models.LearningExample{}, err
	}
	ex := t.example(narration, amount, predicted, category, models.SourceInteractive)
	t.store.Append(ex)

	t.logger.Info("Correction recorded",
		logging.F(logging.FieldNarration, narration),
		logging.F(logging.FieldCategory, string(category)),
		logging.F("predicted", string(predicted)))
	return ex, nil
}

func (t *Trainer) example(narration string, amount decimal.Decimal, predicted, correct models.Category, source models.LearningSource) models.LearningExample {
	return models.LearningExample{
		Narration:        narration,
		Amount:           amount,
		OriginalCategory: predicted,
		CorrectCategory:  correct,
		Timestamp:        t.now(),
		Features:         categorizer.ExtractFeatures(narration, amount),
		Source:           source,
	}
}
