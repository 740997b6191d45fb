package cmd

import (
	"fmt"

	"github.com/cwbudde/ember/internal/classrt"
	"github.com/cwbudde/ember/internal/evaluator"
	"github.com/cwbudde/ember/internal/runtime"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an Ember script file or inline expression",
	Long: `Execute an Ember program from a file or inline expression.

Examples:
  ember run script.ember
  ember run -e "1 + 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	ctx := evaluator.New(cfg.Logger())

	var res runtime.Result
	switch {
	case evalExpr != "":
		res = ctx.EvalString(evalExpr, nil)
	case len(args) == 1:
		res = ctx.EvalFile(args[0], nil)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}
	return reportResult(res)
}

// reportResult turns a failed Result into an error carrying the
// exception's class and message, so the CLI exits non-zero; on success it
// returns nil and the result value is not printed.
func reportResult(res runtime.Result) error {
	if !res.Failed() {
		return nil
	}
	return fmt.Errorf("%s: %s", res.Exception.Class.Name, classrt.ExceptionMessage(res.Exception))
}
