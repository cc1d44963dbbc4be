// Package forget clears the learning store
package forget

import (
	"fjacquet/stmt-categorizer/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the forget command
var Cmd = &cobra.Command{
	Use:   "forget",
	Short: "Delete every learning example",
	Long: `Delete every learning example. The learning engine falls back to its
weighted rules until new corrections are recorded.`,
	Run: forgetFunc,
}

func forgetFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	s := appContainer.GetLearningStore()
	n := s.Len()
	s.Clear()
	root.Log.Infof("Removed %d learning examples", n)
}
