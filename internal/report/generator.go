// Package report renders the statistics of a categorized statement.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LearningSummary describes the learning store at report time.
type LearningSummary struct {
	Examples int    `json:"totalLearningData" yaml:"totalLearningData"`
	Accuracy int    `json:"accuracy" yaml:"accuracy"`
	Maturity string `json:"maturity" yaml:"maturity"`
}

// StatsReport is the document written next to a categorized statement.
type StatsReport struct {
	RunID       string             `json:"runId" yaml:"runId"`
	Engine      string             `json:"engine" yaml:"engine"`
	InputFile   string             `json:"inputFile,omitempty" yaml:"inputFile,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt" yaml:"generatedAt"`
	Statistics  *models.Statistics `json:"statistics" yaml:"statistics"`
	Learning    *LearningSummary   `json:"learning,omitempty" yaml:"learning,omitempty"`
}

// ReportGenerator provides functionality to generate statistics reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders report in the specified format (json or yaml).
func (g *ReportGenerator) GenerateReport(report *StatsReport, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot generate a nil report")
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML, "yml":
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// FormatFromPath picks the format from the extension of path, falling back
// to def.
func FormatFromPath(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return def
	}
}

// WriteReport renders report and writes it to path.
func (g *ReportGenerator) WriteReport(report *StatsReport, path, format string) error {
	data, err := g.GenerateReport(report, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.Info("Statistics report written",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, format))
	return nil
}

func (g *ReportGenerator) generateJSONReport(report *StatsReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *ReportGenerator) generateYAMLReport(report *StatsReport) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}
