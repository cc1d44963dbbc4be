package root_test

import (
	"testing"

	"fjacquet/stmt-categorizer/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "stmt-categorizer", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "categorize bank statement spreadsheets")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"config", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCommand_InitializeBuildsContainer(t *testing.T) {
	t.Setenv("STMT_LEARNING_BACKEND", "memory")

	require.NoError(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))
	require.NotNil(t, root.GetContainer())
	assert.Equal(t, "memory", root.AppConfig.Learning.Backend)
	assert.NotNil(t, root.GetLogrusAdapter())

	root.Cmd.PersistentPostRun(root.Cmd, nil)
}
