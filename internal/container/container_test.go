package container

import (
	"context"
	"path/filepath"
	"testing"

	"fjacquet/stmt-categorizer/internal/categorizer"
	"fjacquet/stmt-categorizer/internal/config"
	"fjacquet/stmt-categorizer/internal/logging"
	"fjacquet/stmt-categorizer/internal/models"
	"fjacquet/stmt-categorizer/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend, path string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Engine = config.EngineRules
	cfg.Learning.Backend = backend
	cfg.Learning.Path = path
	cfg.Learning.Key = config.DefaultLearningKey
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "memory backend",
			config: testConfig(config.BackendMemory, ""),
		},
		{
			name:   "file backend",
			config: testConfig(config.BackendFile, t.TempDir()),
		},
		{
			name:   "sqlite backend",
			config: testConfig(config.BackendSQLite, t.TempDir()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := NewContainer(tt.config)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, container)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, container)
			defer func() { _ = container.Close() }()

			assert.NotNil(t, container.GetLogger())
			assert.Equal(t, tt.config, container.GetConfig())
			assert.NotNil(t, container.GetLearningStore())
			assert.NotNil(t, container.GetProcessor())
			assert.NotNil(t, container.GetTrainer())
			assert.NotNil(t, container.GetReportGenerator())
		})
	}
}

func TestNewContainer_UnknownBackendFallsBackToMemory(t *testing.T) {
	logger := logging.NewMockLogger()
	container, err := NewContainerWithLogger(testConfig("etcd", ""), logger)
	require.NoError(t, err)
	defer func() { _ = container.Close() }()

	assert.True(t, logger.HasEntry("WARN", "Learning store unavailable, keeping examples in memory only"))

	container.GetLearningStore().Append(models.LearningExample{
		Narration:       "SWIGGY ORDER",
		Amount:          decimal.NewFromInt(350),
		CorrectCategory: models.CategoryFoodAndDining,
	})
	assert.Equal(t, 1, container.GetLearningStore().Len())
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig(config.BackendMemory, ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger cannot be nil")
}

func TestContainer_GetCategorizer(t *testing.T) {
	container, err := NewContainerWithLogger(testConfig(config.BackendMemory, ""), logging.NewMockLogger())
	require.NoError(t, err)

	tests := []struct {
		engine string
		want   string
		label  string
	}{
		{"", categorizer.EngineRules, models.HeaderTransactionCategory},
		{"rules", categorizer.EngineRules, models.HeaderTransactionCategory},
		{"learning", categorizer.EngineLearning, models.HeaderAICategory},
		{"LEARNING", categorizer.EngineLearning, models.HeaderAICategory},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			c, err := container.GetCategorizer(tt.engine)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Engine())
			assert.Equal(t, tt.label, c.HeaderLabel())
		})
	}

	_, err = container.GetCategorizer("neural")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestContainer_LearningEngineSeesStoredCorrections(t *testing.T) {
	container, err := NewContainerWithLogger(testConfig(config.BackendMemory, ""), logging.NewMockLogger())
	require.NoError(t, err)

	container.GetLearningStore().Append(models.LearningExample{
		Narration:       "ACME WIDGETS PVT LTD",
		Amount:          decimal.NewFromInt(1234),
		CorrectCategory: models.CategoryShopping,
	})

	c, err := container.GetCategorizer(categorizer.EngineLearning)
	require.NoError(t, err)
	got, err := c.Categorize(context.Background(), "ACME WIDGETS PVT LTD", decimal.NewFromInt(-1234))
	require.NoError(t, err)
	assert.Equal(t, models.CategoryShopping, got)
}

func TestContainer_FileBackendPersistsAcrossContainers(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(config.BackendSQLite, dir)

	first, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	first.GetLearningStore().Append(models.LearningExample{
		Narration:       "NETFLIX SUBSCRIPTION",
		Amount:          decimal.NewFromInt(649),
		CorrectCategory: models.CategoryEntertainment,
	})
	require.NoError(t, first.Close())
	assert.FileExists(t, filepath.Join(dir, store.SQLiteFileName))

	second, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	assert.Equal(t, 1, second.GetLearningStore().Len())
}
