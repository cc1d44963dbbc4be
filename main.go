package main

import (
	"fmt"
	"os"

	"fjacquet/stmt-categorizer/cmd/batch"
	"fjacquet/stmt-categorizer/cmd/categorize"
	"fjacquet/stmt-categorizer/cmd/correct"
	"fjacquet/stmt-categorizer/cmd/explain"
	"fjacquet/stmt-categorizer/cmd/forget"
	"fjacquet/stmt-categorizer/cmd/history"
	"fjacquet/stmt-categorizer/cmd/root"
	"fjacquet/stmt-categorizer/cmd/train"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(train.Cmd)
	root.Cmd.AddCommand(correct.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(forget.Cmd)
	root.Cmd.AddCommand(explain.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
