package forget_test

import (
	"testing"

	"fjacquet/stmt-categorizer/cmd/forget"

	"github.com/stretchr/testify/assert"
)

func TestForgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "forget", forget.Cmd.Use)
	assert.Contains(t, forget.Cmd.Short, "learning example")
	assert.NotNil(t, forget.Cmd.Run)
}
