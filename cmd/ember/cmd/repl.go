package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/ember/internal/evaluator"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Ember session",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl evaluates one line at a time against a single persistent root
// scope, so declarations and imports made on one line are visible on the
// next.
func runRepl(_ *cobra.Command, _ []string) error {
	ctx := evaluator.New(cfg.Logger())
	scope := ctx.RootScope()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ember> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		res := ctx.EvalString(line, scope)
		if err := reportResult(res); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(res.Value.String())
	}
}
