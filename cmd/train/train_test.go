package train_test

import (
	"testing"

	"fjacquet/stmt-categorizer/cmd/train"

	"github.com/stretchr/testify/assert"
)

func TestTrainCommand_Metadata(t *testing.T) {
	assert.Equal(t, "train", train.Cmd.Use)
	assert.Contains(t, train.Cmd.Short, "Train the learning engine")
	assert.Contains(t, train.Cmd.Long, "category column")
	assert.NotNil(t, train.Cmd.Run)
}
