// Package container provides dependency injection for the stmt-categorizer application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"strings"

	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/config"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/processor"
	"fjacquet/stmt-categorizer/internal/report"
	"fjacquet/stmt-categorizer/internal/store"
	"fjacquet/stmt-categorizer/internal/trainer"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.LearningStore
	processor *processor.Processor
	trainer   *trainer.Trainer
	reports   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies.
// A learning medium that cannot be opened is logged and replaced by an
// in-memory one, so categorization never fails because of persistence.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	medium, err := store.OpenMedium(cfg.Learning.Backend, cfg.Learning.Path)
	if err != nil {
		logger.WithError(err).Warn("Learning store unavailable, keeping examples in memory only",
			logging.F(logging.FieldBackend, cfg.Learning.Backend))
		medium = store.NewMemoryMedium()
	}
	key := cfg.Learning.Key
	if key == "" {
		key = config.DefaultLearningKey
	}
	learningStore := store.NewLearningStore(medium, key, logger)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldEngine, cfg.Engine),
		logging.F(logging.FieldBackend, medium.Name()),
		logging.F(logging.FieldCount, learningStore.Len()))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     learningStore,
		processor: processor.NewProcessor(logger),
		trainer:   trainer.NewTrainer(learningStore, logger),
		reports:   report.NewReportGenerator(logger),
	}, nil
}

// GetCategorizer returns the engine named engine, or the configured engine
// when engine is empty. The learning engine sees the store as it is now.
func (c *Container) GetCategorizer(engine string) (*categorizer.Categorizer, error) {
	if engine == "" {
		engine = c.config.Engine
	}
	switch strings.ToLower(engine) {
	case categorizer.EngineRules:
		return categorizer.NewRuleCategorizer(c.logger), nil
	case categorizer.EngineLearning:
		return categorizer.NewLearningCategorizer(c.store, c.logger), nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", engine)
	}
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLearningStore returns the learning store.
func (c *Container) GetLearningStore() *store.LearningStore {
	return c.store
}

// GetProcessor returns the statement processor.
func (c *Container) GetProcessor() *processor.Processor {
	return c.processor
}

// GetTrainer returns the trainer writing to the learning store.
func (c *Container) GetTrainer() *trainer.Trainer {
	return c.trainer
}

// GetReportGenerator returns the statistics report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close releases the learning store.
func (c *Container) Close() error {
	return c.store.Close()
}
